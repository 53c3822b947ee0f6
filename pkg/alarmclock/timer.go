// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package alarmclock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimerInfo is a snapshot of the countdown timer's state.
type TimerInfo struct {
	TimeLeft time.Duration
	Running  bool
	Events   Signalization
}

// CountdownTimer is a handle to the clock's countdown timer. Every getter
// queries the device, nothing is cached.
type CountdownTimer struct {
	c *Client
}

// Get reads the full state of the timer.
func (t *CountdownTimer) Get() (TimerInfo, error) {
	doc, err := t.c.Run("tmr")
	if err != nil {
		return TimerInfo{}, err
	}
	inner, err := doc.Map("timer")
	if err != nil {
		return TimerInfo{}, err
	}
	left, err := inner.Str("time left")
	if err != nil {
		return TimerInfo{}, err
	}
	timeLeft, err := ParseDuration(left)
	if err != nil {
		return TimerInfo{}, err
	}
	running, err := inner.Bool("running")
	if err != nil {
		return TimerInfo{}, err
	}
	events, err := SignalizationFromDocument(inner)
	if err != nil {
		return TimerInfo{}, err
	}
	return TimerInfo{TimeLeft: timeLeft, Running: running, Events: events}, nil
}

// TimeLeft reads the remaining time.
func (t *CountdownTimer) TimeLeft() (time.Duration, error) {
	info, err := t.Get()
	if err != nil {
		return 0, err
	}
	return info.TimeLeft, nil
}

// Running reports whether the timer is counting down.
func (t *CountdownTimer) Running() (bool, error) {
	info, err := t.Get()
	if err != nil {
		return false, err
	}
	return info.Running, nil
}

// Events reads what the timer triggers when it expires.
func (t *CountdownTimer) Events() (Signalization, error) {
	info, err := t.Get()
	if err != nil {
		return Signalization{}, err
	}
	return info.Events, nil
}

// SetTime sets the remaining time. Durations are truncated to whole seconds.
func (t *CountdownTimer) SetTime(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: negative timer duration %s", ErrInvalidArgument, d)
	}
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	_, err := t.c.Run(fmt.Sprintf("tmr%d:%d:%d", h, m, s))
	return err
}

// SetRunning starts or stops the countdown.
func (t *CountdownTimer) SetRunning(running bool) error {
	cmd := "tmr-stop"
	if running {
		cmd = "tmr-start"
	}
	_, err := t.c.Run(cmd)
	return err
}

// Start starts the countdown.
func (t *CountdownTimer) Start() error { return t.SetRunning(true) }

// Stop stops the countdown.
func (t *CountdownTimer) Stop() error { return t.SetRunning(false) }

// SetEvents sets what the timer triggers when it expires.
func (t *CountdownTimer) SetEvents(events Signalization) error {
	_, err := t.c.Run(fmt.Sprintf("tme%d;%d;%d",
		events.Ambient, btoi(events.Lamp), events.Buzzer))
	return err
}

// ParseDuration parses the H:MM:SS format the timer reports.
func ParseDuration(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed duration %q", s)
	}
	var fields [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, fmt.Errorf("malformed duration %q: %w", s, err)
		}
		fields[i] = v
	}
	return time.Duration(fields[0])*time.Hour +
		time.Duration(fields[1])*time.Minute +
		time.Duration(fields[2])*time.Second, nil
}
