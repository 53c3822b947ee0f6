// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package alarmclock

import (
	"fmt"
	"strconv"
)

// EEPROM is a handle for raw access to the clock's EEPROM. Addresses and
// values are range-checked locally so that a typo cannot reach the device.
type EEPROM struct {
	c *Client
}

func checkAddress(address int) error {
	if address < 0 || address >= EEPROMSize {
		return fmt.Errorf("%w: EEPROM address %d out of range 0..%d",
			ErrInvalidArgument, address, EEPROMSize-1)
	}
	return nil
}

// ReadByte reads a single byte of EEPROM.
func (e *EEPROM) ReadByte(address int) (byte, error) {
	if err := checkAddress(address); err != nil {
		return 0, err
	}
	doc, err := e.c.Run(fmt.Sprintf("eer%d", address))
	if err != nil {
		return 0, err
	}
	inner, err := doc.Map("EEPROM")
	if err != nil {
		return 0, err
	}
	value, err := inner.Int(strconv.Itoa(address))
	if err != nil {
		return 0, err
	}
	return byte(value), nil
}

// WriteByte writes a single byte of EEPROM.
func (e *EEPROM) WriteByte(address int, value int) error {
	if err := checkAddress(address); err != nil {
		return err
	}
	if value < 0 || value > 255 {
		return fmt.Errorf("%w: EEPROM value %d out of range 0..255",
			ErrInvalidArgument, value)
	}
	_, err := e.c.Run(fmt.Sprintf("eew%d;%d", address, value))
	return err
}
