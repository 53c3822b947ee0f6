// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package alarmclock

import (
	"errors"
	"testing"
)

// ============================================================
// AlarmEnabled Tests
// ============================================================

func TestParseAlarmEnabled(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected AlarmEnabled
	}{
		{name: "off", input: "OFF", expected: AlarmOff},
		{name: "single", input: "SGL", expected: AlarmSingle},
		{name: "repeat", input: "RPT", expected: AlarmRepeat},
		{name: "skip", input: "SKP", expected: AlarmSkip},
		{name: "lowercase", input: "rpt", expected: AlarmRepeat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAlarmEnabled(tt.input)
			if err != nil {
				t.Fatalf("ParseAlarmEnabled failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestParseAlarmEnabled_Unknown(t *testing.T) {
	if _, err := ParseAlarmEnabled("MAYBE"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestAlarmEnabled_RoundTrip(t *testing.T) {
	for _, e := range []AlarmEnabled{AlarmOff, AlarmSingle, AlarmRepeat, AlarmSkip} {
		got, err := ParseAlarmEnabled(e.String())
		if err != nil {
			t.Fatalf("ParseAlarmEnabled(%v) failed: %v", e, err)
		}
		if got != e {
			t.Errorf("Round trip mismatch: expected %v, got %v", e, got)
		}
	}
}

// ============================================================
// Alarm Decoding Tests
// ============================================================

const alarmYAML = `enabled: RPT
dow: 0x2C
time: 7:30
snz:
  time: 5
  count: 3
sig:
  ambient: 240
  lamp: 1
  buzzer: 1
`

func TestAlarmFromDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(alarmYAML))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	alarm, err := AlarmFromDocument(doc)
	if err != nil {
		t.Fatalf("AlarmFromDocument failed: %v", err)
	}

	if alarm.Enabled != AlarmRepeat {
		t.Errorf("Enabled mismatch: got %v", alarm.Enabled)
	}
	if alarm.Days.Code() != 0x2C {
		t.Errorf("Days mismatch: got 0x%02X", alarm.Days.Code())
	}
	if alarm.Time != (TimeOfDay{Hours: 7, Minutes: 30}) {
		t.Errorf("Time mismatch: got %v", alarm.Time)
	}
	if alarm.Snooze != (Snooze{Time: 5, Count: 3}) {
		t.Errorf("Snooze mismatch: got %+v", alarm.Snooze)
	}
	if alarm.Signalization != (Signalization{Ambient: 240, Lamp: true, Buzzer: 1}) {
		t.Errorf("Signalization mismatch: got %+v", alarm.Signalization)
	}
}

func TestAlarmFromDocument_MissingField(t *testing.T) {
	doc, err := ParseDocument([]byte("enabled: RPT\ndow: 44\ntime: 7:30\n"))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if _, err := AlarmFromDocument(doc); !errors.Is(err, ErrMissingField) {
		t.Errorf("Expected ErrMissingField, got %v", err)
	}
}

func TestTimeOfDay_String(t *testing.T) {
	tod := TimeOfDay{Hours: 7, Minutes: 5}
	if got := tod.String(); got != "7:05" {
		t.Errorf("Expected 7:05, got %q", got)
	}
}

func TestParseTimeOfDay_Malformed(t *testing.T) {
	for _, input := range []string{"730", "7:three", ""} {
		if _, err := parseTimeOfDay(input); err == nil {
			t.Errorf("Expected error for %q", input)
		}
	}
}
