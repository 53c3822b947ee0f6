// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package alarmclock

import (
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Document is a generic decoded view of one structured-output block. The
// clock emits YAML; keys are exposed as strings (integer keys, as used by
// EEPROM reads, appear in their decimal form). Accessors return an explicit
// missing-field error instead of zero values so callers never confuse an
// absent key with a default.
type Document struct {
	m map[string]interface{}
}

// ParseDocument decodes a captured structured-output block.
func ParseDocument(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to decode structured output: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("structured output is empty")
	}
	v, err := nodeValue(root.Content[0])
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("structured output is not a mapping (got %T)", v)
	}
	return &Document{m: m}, nil
}

// nodeValue converts a YAML node into plain Go values. Mapping keys are
// taken from the node's scalar text so non-string keys stay addressable.
func nodeValue(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		s := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, nil
	case yaml.ScalarNode:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode scalar %q: %w", n.Value, err)
		}
		return v, nil
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}

// Has reports whether the document contains key.
func (d *Document) Has(key string) bool {
	_, ok := d.m[key]
	return ok
}

// Keys returns all top-level keys in sorted order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.m))
	for k := range d.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Raw returns the underlying value tree (maps, slices and scalars).
func (d *Document) Raw() map[string]interface{} {
	return d.m
}

func (d *Document) get(key string) (interface{}, error) {
	v, ok := d.m[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	return v, nil
}

// Int extracts an integer value by key.
func (d *Document) Int(key string) (int, error) {
	v, err := d.get(key)
	if err != nil {
		return 0, err
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		return int(val), nil
	default:
		return 0, fmt.Errorf("field %q: expected integer, got %T", key, v)
	}
}

// Bool extracts a boolean value by key. The firmware prints flags as 0/1, so
// integers are accepted as well.
func (d *Document) Bool(key string) (bool, error) {
	v, err := d.get(key)
	if err != nil {
		return false, err
	}
	switch val := v.(type) {
	case bool:
		return val, nil
	case int:
		return val != 0, nil
	case int64:
		return val != 0, nil
	default:
		return false, fmt.Errorf("field %q: expected boolean, got %T", key, v)
	}
}

// Str extracts a string value by key.
func (d *Document) Str(key string) (string, error) {
	v, err := d.get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %T", key, v)
	}
	return s, nil
}

// Time extracts a timestamp value by key. YAML resolves the firmware's date
// format as a native timestamp, but quoted values come through as strings,
// so both are accepted.
func (d *Document) Time(key string) (time.Time, error) {
	v, err := d.get(key)
	if err != nil {
		return time.Time{}, err
	}
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		t, err := time.ParseInLocation("2006-1-2 15:4:5", val, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("field %q: malformed timestamp %q: %w", key, val, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("field %q: expected timestamp, got %T", key, v)
	}
}

// Map extracts a nested mapping by key as a Document.
func (d *Document) Map(key string) (*Document, error) {
	v, err := d.get(key)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("field %q: expected mapping, got %T", key, v)
	}
	return &Document{m: m}, nil
}

// IntList extracts a list of integers by key. The firmware prints an empty
// list as a null value; that sentinel is normalized to an empty slice.
func (d *Document) IntList(key string) ([]int, error) {
	v, err := d.get(key)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return []int{}, nil
	}
	seq, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("field %q: expected list, got %T", key, v)
	}
	out := make([]int, 0, len(seq))
	for i, item := range seq {
		switch val := item.(type) {
		case int:
			out = append(out, val)
		case int64:
			out = append(out, int(val))
		default:
			return nil, fmt.Errorf("field %q[%d]: expected integer, got %T", key, i, item)
		}
	}
	return out, nil
}
