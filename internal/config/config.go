// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

// Package config holds the bridge configuration file format.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Serial SerialConfig `yaml:"serial"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Device   string `yaml:"device"`
	Baudrate int    `yaml:"baudrate"`
}

// ---- MQTT ----

type MQTTConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Topic is the prefix under which the bridge lives. The state,
	// command and error topics are derived from it.
	Topic string `yaml:"topic"`
}

// StateTopic is where retained device state is published.
func (m MQTTConfig) StateTopic() string { return m.Topic + "/stat" }

// CommandTopic is the subscription root for inbound commands.
func (m MQTTConfig) CommandTopic() string { return m.Topic + "/cmnd" }

// ErrTopic is where command handling errors are published.
func (m MQTTConfig) ErrTopic() string { return m.Topic + "/err" }

// BrokerURL is the tcp:// address paho expects.
func (m MQTTConfig) BrokerURL() string {
	return fmt.Sprintf("tcp://%s:%d", m.Hostname, m.Port)
}

// Load reads and decodes a configuration file. The result still needs
// Validate and Normalize.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}
