// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

// Package alarmclock is a host-side driver for the Luminos alarm clock's
// serial command-line interface.
//
// The device presents a prompt-driven textual CLI: the host writes a command
// line, the device answers with an optional YAML block, a status line and a
// fresh prompt. This package implements the framing protocol on top of a
// byte-stream connection and exposes typed operations (alarms, countdown
// timer, EEPROM, RTC, status) over it.
package alarmclock

// EEPROM layout. These need to be updated if the clock firmware changes.
const (
	EEPROMSize                = 1024
	EEPROMMelodiesHeaderStart = 0x0010
	EEPROMMelodiesCount       = 16
	EEPROMMelodiesDataStart   = 0x0100
	EEPROMAlarmsStart         = 0x0040
)

// bel is the out-of-band notification byte the clock emits when its state
// changes without a request.
const bel = 0x07
