// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package alarmclock

import (
	"errors"
	"reflect"
	"testing"
)

// ============================================================
// DaysOfWeek Code Tests
// ============================================================

func TestNewDaysOfWeek_MasksReservedBit(t *testing.T) {
	tests := []struct {
		name     string
		code     byte
		expected byte
	}{
		{name: "zero", code: 0x00, expected: 0x00},
		{name: "reserved bit only", code: 0x01, expected: 0x00},
		{name: "reserved bit with days", code: 0x2D, expected: 0x2C},
		{name: "all bits", code: 0xFF, expected: 0xFE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDaysOfWeek(tt.code)
			if d.Code() != tt.expected {
				t.Errorf("Code mismatch: expected 0x%02X, got 0x%02X", tt.expected, d.Code())
			}
		})
	}
}

func TestDaysOfWeekFromNames(t *testing.T) {
	d, err := DaysOfWeekFromNames("Tuesday", "Wednesday", "Friday")
	if err != nil {
		t.Fatalf("DaysOfWeekFromNames failed: %v", err)
	}
	if d.Code() != 0x2C {
		t.Errorf("Code mismatch: expected 0x2C, got 0x%02X", d.Code())
	}
}

func TestDaysOfWeekFromNames_UnknownDay(t *testing.T) {
	_, err := DaysOfWeekFromNames("Tuesday", "Blursday")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestDaysOfWeekFromNumbers(t *testing.T) {
	d, err := DaysOfWeekFromNumbers(2, 3, 5)
	if err != nil {
		t.Fatalf("DaysOfWeekFromNumbers failed: %v", err)
	}
	if d.Code() != 0x2C {
		t.Errorf("Code mismatch: expected 0x2C, got 0x%02X", d.Code())
	}
}

func TestDaysOfWeekFromNumbers_OutOfRange(t *testing.T) {
	for _, day := range []int{0, 8, -1} {
		if _, err := DaysOfWeekFromNumbers(day); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Day %d: expected ErrInvalidArgument, got %v", day, err)
		}
	}
}

// ============================================================
// DaysOfWeek Accessor Tests
// ============================================================

func TestDaysOfWeek_DayAccessors(t *testing.T) {
	d := NewDaysOfWeek(0x2C)

	set, err := d.Day(2)
	if err != nil {
		t.Fatalf("Day(2) failed: %v", err)
	}
	if !set {
		t.Error("Expected Tuesday to be set")
	}

	set, err = d.DayName("Monday")
	if err != nil {
		t.Fatalf("DayName failed: %v", err)
	}
	if set {
		t.Error("Expected Monday to be unset")
	}
}

func TestDaysOfWeek_SetDayRoundTrip(t *testing.T) {
	var d DaysOfWeek
	if err := d.SetDayName("Sunday", true); err != nil {
		t.Fatalf("SetDayName failed: %v", err)
	}
	if d.Code() != 0x80 {
		t.Errorf("Code mismatch: expected 0x80, got 0x%02X", d.Code())
	}
	if err := d.SetDay(7, false); err != nil {
		t.Fatalf("SetDay failed: %v", err)
	}
	if d.Code() != 0x00 {
		t.Errorf("Code mismatch: expected 0x00, got 0x%02X", d.Code())
	}
}

func TestDaysOfWeek_ActiveDays(t *testing.T) {
	d := NewDaysOfWeek(0x2C)
	expected := []string{"Tuesday", "Wednesday", "Friday"}
	if got := d.ActiveDays(); !reflect.DeepEqual(got, expected) {
		t.Errorf("ActiveDays mismatch: expected %v, got %v", expected, got)
	}
	if got := d.String(); got != "Tuesday, Wednesday, Friday" {
		t.Errorf("String mismatch: got %q", got)
	}
}

func TestDaysOfWeek_ActiveDaysEmpty(t *testing.T) {
	d := NewDaysOfWeek(0x01)
	if got := d.ActiveDays(); len(got) != 0 {
		t.Errorf("Expected no active days, got %v", got)
	}
}
