// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package alarmclock

import "fmt"

// BacklightStatus enumerates the display backlight levels.
type BacklightStatus uint8

const (
	BacklightOff       BacklightStatus = 0
	BacklightDim       BacklightStatus = 1
	BacklightBright    BacklightStatus = 2
	BacklightPermanent BacklightStatus = 3
)

func (b BacklightStatus) String() string {
	switch b {
	case BacklightOff:
		return "OFF"
	case BacklightDim:
		return "DIM"
	case BacklightBright:
		return "BRIGHT"
	case BacklightPermanent:
		return "PERMANENT"
	default:
		return fmt.Sprintf("BacklightStatus(%d)", uint8(b))
	}
}

// AmbientStatus is a read-only snapshot of the ambient LED dimmer. There is
// no setter path for the current value, only for the target.
type AmbientStatus struct {
	Current int
	Target  int
}

// ClockStatus is a composite read-only snapshot of the clock's state as
// returned by the status command.
type ClockStatus struct {
	ActiveAlarms  []int // indices of alarms currently ringing
	AmbientAlarms []int // indices of alarms currently driving ambient dimming
	AlarmsChanged bool  // alarm configuration changed since the last full read
	Backlight     BacklightStatus
	Ambient       AmbientStatus
	Lamp          bool
	Inhibit       bool
}

// StatusFromDocument decodes the mapping nested under the "status" key.
// Device-side null list sentinels come back as empty slices.
func StatusFromDocument(d *Document) (ClockStatus, error) {
	active, err := d.IntList("active alarms")
	if err != nil {
		return ClockStatus{}, err
	}
	ambientAlarms, err := d.IntList("ambient alarms")
	if err != nil {
		return ClockStatus{}, err
	}
	changed, err := d.Bool("alarms changed")
	if err != nil {
		return ClockStatus{}, err
	}
	backlight, err := d.Int("backlight")
	if err != nil {
		return ClockStatus{}, err
	}
	ambient, err := d.Map("ambient")
	if err != nil {
		return ClockStatus{}, err
	}
	current, err := ambient.Int("current")
	if err != nil {
		return ClockStatus{}, err
	}
	target, err := ambient.Int("target")
	if err != nil {
		return ClockStatus{}, err
	}
	lamp, err := d.Bool("lamp")
	if err != nil {
		return ClockStatus{}, err
	}
	inhibit, err := d.Bool("inhibit")
	if err != nil {
		return ClockStatus{}, err
	}
	return ClockStatus{
		ActiveAlarms:  active,
		AmbientAlarms: ambientAlarms,
		AlarmsChanged: changed,
		Backlight:     BacklightStatus(backlight),
		Ambient:       AmbientStatus{Current: current, Target: target},
		Lamp:          lamp,
		Inhibit:       inhibit,
	}, nil
}
