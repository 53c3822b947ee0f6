// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package bridge

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/luminos-hw/chime/pkg/alarmclock"
)

// ============================================================
// Alarm Payload Tests
// ============================================================

func testAlarm(t *testing.T) alarmclock.Alarm {
	t.Helper()
	days, err := alarmclock.DaysOfWeekFromNames("Tuesday", "Wednesday", "Friday")
	if err != nil {
		t.Fatalf("DaysOfWeekFromNames failed: %v", err)
	}
	return alarmclock.Alarm{
		Enabled:       alarmclock.AlarmRepeat,
		Days:          days,
		Time:          alarmclock.TimeOfDay{Hours: 7, Minutes: 30},
		Snooze:        alarmclock.Snooze{Time: 5, Count: 3},
		Signalization: alarmclock.Signalization{Ambient: 240, Lamp: true, Buzzer: 1},
	}
}

func TestMarshalAlarm(t *testing.T) {
	data, err := marshalAlarm(testAlarm(t))
	if err != nil {
		t.Fatalf("marshalAlarm failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded["enabled"] != "RPT" {
		t.Errorf("enabled mismatch: %v", decoded["enabled"])
	}
	days, ok := decoded["days_of_week"].([]interface{})
	if !ok || len(days) != 3 || days[0] != "Tuesday" {
		t.Errorf("days_of_week mismatch: %v", decoded["days_of_week"])
	}
}

func TestUnmarshalAlarmWrite_RoundTrip(t *testing.T) {
	alarm := testAlarm(t)
	payload, err := marshalAlarm(alarm)
	if err != nil {
		t.Fatalf("marshalAlarm failed: %v", err)
	}
	// splice in the index the write request needs
	req := "{\"index\": 2, " + string(payload[1:])

	index, got, err := unmarshalAlarmWrite([]byte(req))
	if err != nil {
		t.Fatalf("unmarshalAlarmWrite failed: %v", err)
	}
	if index != 2 {
		t.Errorf("index mismatch: %d", index)
	}
	if got != alarm {
		t.Errorf("alarm mismatch: expected %+v, got %+v", alarm, got)
	}
}

func TestUnmarshalAlarmWrite_MissingIndex(t *testing.T) {
	payload, err := marshalAlarm(testAlarm(t))
	if err != nil {
		t.Fatalf("marshalAlarm failed: %v", err)
	}
	if _, _, err := unmarshalAlarmWrite(payload); err == nil {
		t.Error("expected error for missing index")
	}
}

func TestUnmarshalAlarmWrite_BadDay(t *testing.T) {
	req := `{"index": 0, "enabled": "OFF", "days_of_week": ["Caturday"],
		"time": {"hours": 0, "minutes": 0},
		"snooze": {"time": 1, "count": 1},
		"signalization": {"ambient": 0, "lamp": false, "buzzer": 0}}`
	if _, _, err := unmarshalAlarmWrite([]byte(req)); err == nil {
		t.Error("expected error for unknown day name")
	}
}

// ============================================================
// Timer Payload Tests
// ============================================================

func TestMarshalTimer(t *testing.T) {
	info := alarmclock.TimerInfo{
		TimeLeft: 3*time.Minute + 20*time.Second,
		Running:  true,
		Events:   alarmclock.Signalization{Ambient: 0, Lamp: false, Buzzer: 13},
	}
	data, err := marshalTimer(info)
	if err != nil {
		t.Fatalf("marshalTimer failed: %v", err)
	}

	var decoded timerJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	expected := timerJSON{
		Time:    "0:03:20",
		Running: true,
		Events:  signalizationJSON{Ambient: 0, Lamp: false, Buzzer: 13},
	}
	if !reflect.DeepEqual(decoded, expected) {
		t.Errorf("timer payload mismatch: expected %+v, got %+v", expected, decoded)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{name: "zero", input: 0, expected: "0:00:00"},
		{name: "seconds", input: 5 * time.Second, expected: "0:00:05"},
		{name: "full", input: 18*time.Hour + 12*time.Minute + 16*time.Second, expected: "18:12:16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFormatDuration_ParseRoundTrip(t *testing.T) {
	d := 2*time.Hour + 3*time.Minute + 4*time.Second
	got, err := alarmclock.ParseDuration(formatDuration(d))
	if err != nil {
		t.Fatalf("ParseDuration failed: %v", err)
	}
	if got != d {
		t.Errorf("round trip mismatch: expected %v, got %v", d, got)
	}
}
