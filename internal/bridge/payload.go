// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package bridge

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/luminos-hw/chime/pkg/alarmclock"
)

// JSON shapes used on the MQTT state and command topics. Days of week
// travel as day name lists and the enabled state as its symbolic name, so
// payloads stay readable in broker tooling.

type timeOfDayJSON struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type snoozeJSON struct {
	Time  int `json:"time"`
	Count int `json:"count"`
}

type signalizationJSON struct {
	Ambient int  `json:"ambient"`
	Lamp    bool `json:"lamp"`
	Buzzer  int  `json:"buzzer"`
}

type alarmJSON struct {
	Enabled       string            `json:"enabled"`
	DaysOfWeek    []string          `json:"days_of_week"`
	Time          timeOfDayJSON     `json:"time"`
	Snooze        snoozeJSON        `json:"snooze"`
	Signalization signalizationJSON `json:"signalization"`
}

func marshalAlarm(a alarmclock.Alarm) ([]byte, error) {
	return json.Marshal(alarmJSON{
		Enabled:    a.Enabled.String(),
		DaysOfWeek: a.Days.ActiveDays(),
		Time:       timeOfDayJSON{Hours: a.Time.Hours, Minutes: a.Time.Minutes},
		Snooze:     snoozeJSON{Time: a.Snooze.Time, Count: a.Snooze.Count},
		Signalization: signalizationJSON{
			Ambient: a.Signalization.Ambient,
			Lamp:    a.Signalization.Lamp,
			Buzzer:  a.Signalization.Buzzer,
		},
	})
}

type alarmWriteJSON struct {
	Index *int `json:"index"`
	alarmJSON
}

// unmarshalAlarmWrite decodes an alarm write request. The index is required;
// all alarm fields must be present because the device write is a full
// record replacement.
func unmarshalAlarmWrite(data []byte) (int, alarmclock.Alarm, error) {
	var req alarmWriteJSON
	if err := json.Unmarshal(data, &req); err != nil {
		return 0, alarmclock.Alarm{}, fmt.Errorf("decode alarm write: %w", err)
	}
	if req.Index == nil {
		return 0, alarmclock.Alarm{}, fmt.Errorf("alarm write: missing index")
	}

	enabled, err := alarmclock.ParseAlarmEnabled(req.Enabled)
	if err != nil {
		return 0, alarmclock.Alarm{}, err
	}
	days, err := alarmclock.DaysOfWeekFromNames(req.DaysOfWeek...)
	if err != nil {
		return 0, alarmclock.Alarm{}, err
	}

	return *req.Index, alarmclock.Alarm{
		Enabled: enabled,
		Days:    days,
		Time: alarmclock.TimeOfDay{
			Hours:   req.Time.Hours,
			Minutes: req.Time.Minutes,
		},
		Snooze: alarmclock.Snooze{Time: req.Snooze.Time, Count: req.Snooze.Count},
		Signalization: alarmclock.Signalization{
			Ambient: req.Signalization.Ambient,
			Lamp:    req.Signalization.Lamp,
			Buzzer:  req.Signalization.Buzzer,
		},
	}, nil
}

type timerJSON struct {
	Time    string            `json:"time"`
	Running bool              `json:"running"`
	Events  signalizationJSON `json:"events"`
}

func marshalTimer(info alarmclock.TimerInfo) ([]byte, error) {
	return json.Marshal(timerJSON{
		Time:    formatDuration(info.TimeLeft),
		Running: info.Running,
		Events: signalizationJSON{
			Ambient: info.Events.Ambient,
			Lamp:    info.Events.Lamp,
			Buzzer:  info.Events.Buzzer,
		},
	})
}

// timerCommandJSON is the inbound timer command; every field is optional
// and absent fields leave the device state untouched.
type timerCommandJSON struct {
	Events  *signalizationJSON `json:"events"`
	Time    *string            `json:"time"`
	Running *bool              `json:"running"`
}

// formatDuration renders a duration the way the device does, H:MM:SS.
func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
