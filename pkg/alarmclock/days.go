// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package alarmclock

import (
	"fmt"
	"strings"
)

// DaysOfWeek stores a boolean value for each day of the week, encoded as the
// one-byte code the clock uses. Bit 0 is reserved and always zero; bits 1..7
// map to Monday..Sunday.
type DaysOfWeek uint8

// dayNames is indexed by day number 1..7.
var dayNames = [8]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
	6: "Saturday",
	7: "Sunday",
}

// NewDaysOfWeek builds a DaysOfWeek from a raw code. Bit 0 has no meaning
// and is filtered out.
func NewDaysOfWeek(code byte) DaysOfWeek {
	return DaysOfWeek(code &^ 0x01)
}

// DaysOfWeekFromNames builds a DaysOfWeek with the named days set.
func DaysOfWeekFromNames(names ...string) (DaysOfWeek, error) {
	var d DaysOfWeek
	for _, name := range names {
		if err := d.SetDayName(name, true); err != nil {
			return 0, err
		}
	}
	return d, nil
}

// DaysOfWeekFromNumbers builds a DaysOfWeek with the numbered days set.
// Day numbers run 1 (Monday) through 7 (Sunday).
func DaysOfWeekFromNumbers(days ...int) (DaysOfWeek, error) {
	var d DaysOfWeek
	for _, day := range days {
		if err := d.SetDay(day, true); err != nil {
			return 0, err
		}
	}
	return d, nil
}

// Code returns the one-byte wire encoding. Bit 0 is always zero.
func (d DaysOfWeek) Code() byte {
	return byte(d) &^ 0x01
}

func dayNumber(name string) (int, error) {
	for n := 1; n <= 7; n++ {
		if dayNames[n] == name {
			return n, nil
		}
	}
	return 0, fmt.Errorf("unknown day %q: %w", name, ErrInvalidArgument)
}

// Day returns the value for day number 1..7.
func (d DaysOfWeek) Day(day int) (bool, error) {
	if day < 1 || day > 7 {
		return false, fmt.Errorf("%d is not a valid day of the week: %w", day, ErrInvalidArgument)
	}
	return d.Code()&(1<<day) != 0, nil
}

// DayName returns the value for a named day.
func (d DaysOfWeek) DayName(name string) (bool, error) {
	n, err := dayNumber(name)
	if err != nil {
		return false, err
	}
	return d.Day(n)
}

// SetDay sets the value for day number 1..7.
func (d *DaysOfWeek) SetDay(day int, value bool) error {
	if day < 1 || day > 7 {
		return fmt.Errorf("%d is not a valid day of the week: %w", day, ErrInvalidArgument)
	}
	if value {
		*d |= 1 << day
	} else {
		*d &^= 1 << day
	}
	return nil
}

// SetDayName sets the value for a named day.
func (d *DaysOfWeek) SetDayName(name string, value bool) error {
	n, err := dayNumber(name)
	if err != nil {
		return err
	}
	return d.SetDay(n, value)
}

// ActiveDays returns the names of all set days in week order.
func (d DaysOfWeek) ActiveDays() []string {
	days := []string{}
	for n := 1; n <= 7; n++ {
		if d.Code()&(1<<n) != 0 {
			days = append(days, dayNames[n])
		}
	}
	return days
}

func (d DaysOfWeek) String() string {
	return strings.Join(d.ActiveDays(), ", ")
}
