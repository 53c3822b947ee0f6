// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package alarmclock

import (
	"reflect"
	"testing"
	"time"
)

// ============================================================
// Countdown Timer Tests
// ============================================================

const timerBlock = `---
timer:
  time left: 0:03:20
  running: 1
  ambient: 0
  lamp: 0
  buzzer: 13
...
`

func TestTimer_Get(t *testing.T) {
	fc := &fakeConn{replies: map[string]string{
		"tmr": okReply(timerBlock, ""),
	}}
	c := newTestClient(t, fc)

	info, err := c.Timer().Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if info.TimeLeft != 3*time.Minute+20*time.Second {
		t.Errorf("TimeLeft mismatch: %v", info.TimeLeft)
	}
	if !info.Running {
		t.Error("Expected timer running")
	}
	if info.Events != (Signalization{Ambient: 0, Lamp: false, Buzzer: 13}) {
		t.Errorf("Events mismatch: %+v", info.Events)
	}
}

func TestTimer_SetTime(t *testing.T) {
	fc := &fakeConn{replies: map[string]string{
		"tmr2:3:4": okReply("", ""),
	}}
	c := newTestClient(t, fc)

	d := 2*time.Hour + 3*time.Minute + 4*time.Second
	if err := c.Timer().SetTime(d); err != nil {
		t.Fatalf("SetTime failed: %v", err)
	}
	expected := []string{"tmr2:3:4"}
	if got := commandsAfterHandshake(fc); !reflect.DeepEqual(got, expected) {
		t.Errorf("Command mismatch: expected %v, got %v", expected, got)
	}
}

func TestTimer_SetTimeNegative(t *testing.T) {
	fc := &fakeConn{}
	c := newTestClient(t, fc)

	if err := c.Timer().SetTime(-time.Second); err == nil {
		t.Error("Expected error for negative duration")
	}
	if got := commandsAfterHandshake(fc); len(got) != 0 {
		t.Errorf("Expected no commands sent, got %v", got)
	}
}

func TestTimer_StartStop(t *testing.T) {
	fc := &fakeConn{replies: map[string]string{
		"tmr-start": okReply("", ""),
		"tmr-stop":  okReply("", ""),
	}}
	c := newTestClient(t, fc)

	timer := c.Timer()
	if err := timer.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := timer.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	expected := []string{"tmr-start", "tmr-stop"}
	if got := commandsAfterHandshake(fc); !reflect.DeepEqual(got, expected) {
		t.Errorf("Command mismatch: expected %v, got %v", expected, got)
	}
}

func TestTimer_SetEvents(t *testing.T) {
	fc := &fakeConn{replies: map[string]string{
		"tme240;1;13": okReply("", ""),
	}}
	c := newTestClient(t, fc)

	events := Signalization{Ambient: 240, Lamp: true, Buzzer: 13}
	if err := c.Timer().SetEvents(events); err != nil {
		t.Fatalf("SetEvents failed: %v", err)
	}
	expected := []string{"tme240;1;13"}
	if got := commandsAfterHandshake(fc); !reflect.DeepEqual(got, expected) {
		t.Errorf("Command mismatch: expected %v, got %v", expected, got)
	}
}

// ============================================================
// Duration Parsing Tests
// ============================================================

func TestParseClockDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
	}{
		{name: "zero", input: "0:00:00", expected: 0},
		{name: "seconds", input: "0:00:05", expected: 5 * time.Second},
		{name: "full", input: "1:02:03", expected: time.Hour + 2*time.Minute + 3*time.Second},
		{name: "long", input: "18:12:16", expected: 18*time.Hour + 12*time.Minute + 16*time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if err != nil {
				t.Fatalf("ParseDuration failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestParseClockDuration_Malformed(t *testing.T) {
	for _, input := range []string{"", "5:00", "a:b:c", "1:2:3:4"} {
		if _, err := ParseDuration(input); err == nil {
			t.Errorf("Expected error for %q", input)
		}
	}
}
