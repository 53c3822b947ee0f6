// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package alarmclock

import (
	"fmt"
	"strconv"
	"strings"
)

// AlarmEnabled enumerates the states of an alarm's enabled setting.
type AlarmEnabled uint8

const (
	AlarmOff    AlarmEnabled = 0 // disabled
	AlarmSingle AlarmEnabled = 1 // fires once, then disables itself
	AlarmRepeat AlarmEnabled = 2 // fires on every selected day
	AlarmSkip   AlarmEnabled = 3 // skips the next occurrence
)

// String returns the wire name of the state (OFF, SGL, RPT, SKP).
func (e AlarmEnabled) String() string {
	switch e {
	case AlarmOff:
		return "OFF"
	case AlarmSingle:
		return "SGL"
	case AlarmRepeat:
		return "RPT"
	case AlarmSkip:
		return "SKP"
	default:
		return fmt.Sprintf("AlarmEnabled(%d)", uint8(e))
	}
}

// wireName is the lowercase form the en- command expects.
func (e AlarmEnabled) wireName() string {
	return strings.ToLower(e.String())
}

// ParseAlarmEnabled parses a wire name into an AlarmEnabled value.
func ParseAlarmEnabled(s string) (AlarmEnabled, error) {
	switch strings.ToUpper(s) {
	case "OFF":
		return AlarmOff, nil
	case "SGL":
		return AlarmSingle, nil
	case "RPT":
		return AlarmRepeat, nil
	case "SKP":
		return AlarmSkip, nil
	default:
		return 0, fmt.Errorf("unknown alarm enabled state %q: %w", s, ErrInvalidArgument)
	}
}

// TimeOfDay is a time of day with minutes precision. Values are passed to
// the device unchecked; the device is authoritative for range handling.
type TimeOfDay struct {
	Hours   int
	Minutes int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%d:%02d", t.Hours, t.Minutes)
}

func parseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("malformed time of day %q", s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("malformed time of day %q: %w", s, err)
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("malformed time of day %q: %w", s, err)
	}
	return TimeOfDay{Hours: h, Minutes: m}, nil
}

// Snooze holds the snooze settings of an alarm. Time is in minutes (device
// documented max 99), Count is the number of repeats (max 9). The device
// enforces the limits.
type Snooze struct {
	Time  int
	Count int
}

// Signalization holds the signalization settings of an alarm or timer.
type Signalization struct {
	Ambient int  // ambient LED target, 0..255
	Lamp    bool
	Buzzer  int // melody selector
}

// SignalizationFromDocument reads the keys "ambient", "lamp" and "buzzer".
func SignalizationFromDocument(d *Document) (Signalization, error) {
	ambient, err := d.Int("ambient")
	if err != nil {
		return Signalization{}, err
	}
	lamp, err := d.Bool("lamp")
	if err != nil {
		return Signalization{}, err
	}
	buzzer, err := d.Int("buzzer")
	if err != nil {
		return Signalization{}, err
	}
	return Signalization{Ambient: ambient, Lamp: lamp, Buzzer: buzzer}, nil
}

// Alarm is a snapshot of a single alarm slot. Identity is the slot index,
// which is not part of the record; the device remains the source of truth.
type Alarm struct {
	Enabled       AlarmEnabled
	Days          DaysOfWeek
	Time          TimeOfDay
	Snooze        Snooze
	Signalization Signalization
}

// AlarmFromDocument decodes an alarm record. The document needs the keys
// "enabled", "dow", "time", "snz" and "sig"; a missing key is an error, not
// a default.
func AlarmFromDocument(d *Document) (Alarm, error) {
	enabledStr, err := d.Str("enabled")
	if err != nil {
		return Alarm{}, err
	}
	enabled, err := ParseAlarmEnabled(enabledStr)
	if err != nil {
		return Alarm{}, err
	}
	dow, err := d.Int("dow")
	if err != nil {
		return Alarm{}, err
	}
	timeStr, err := d.Str("time")
	if err != nil {
		return Alarm{}, err
	}
	tod, err := parseTimeOfDay(timeStr)
	if err != nil {
		return Alarm{}, err
	}
	snz, err := d.Map("snz")
	if err != nil {
		return Alarm{}, err
	}
	snzTime, err := snz.Int("time")
	if err != nil {
		return Alarm{}, err
	}
	snzCount, err := snz.Int("count")
	if err != nil {
		return Alarm{}, err
	}
	sig, err := d.Map("sig")
	if err != nil {
		return Alarm{}, err
	}
	signalization, err := SignalizationFromDocument(sig)
	if err != nil {
		return Alarm{}, err
	}
	return Alarm{
		Enabled:       enabled,
		Days:          NewDaysOfWeek(byte(dow)),
		Time:          tod,
		Snooze:        Snooze{Time: snzTime, Count: snzCount},
		Signalization: signalization,
	}, nil
}

func (a Alarm) String() string {
	return fmt.Sprintf("enabled: %s, days of week: %s, time: %s, snooze: %d min x%d, signalization: ambient=%d lamp=%t buzzer=%d",
		a.Enabled, a.Days, a.Time, a.Snooze.Time, a.Snooze.Count,
		a.Signalization.Ambient, a.Signalization.Lamp, a.Signalization.Buzzer)
}
