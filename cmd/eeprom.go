// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/luminos-hw/chime/pkg/alarmclock"
)

var eepromCmd = &cobra.Command{
	Use:   "eeprom",
	Short: "Raw access to the clock's EEPROM",
	Long: `Raw access to the clock's EEPROM: dump it to a file, restore it from a
file, or read and write single bytes.

The EEPROM holds the persisted alarms and the melody storage. A dump is a
plain 1024-byte binary image.`,
}

var eepromDumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Dump the whole EEPROM to a binary file",
	Args:  cobra.ExactArgs(1),
	RunE:  runEEPROMDump,
}

var eepromRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Write a binary image back to the EEPROM",
	Long: `Write a binary image back to the EEPROM. Only bytes that differ from the
current contents are written, to keep EEPROM wear down.`,
	Args: cobra.ExactArgs(1),
	RunE: runEEPROMRestore,
}

var eepromGetCmd = &cobra.Command{
	Use:   "get <address>",
	Short: "Read one byte",
	Args:  cobra.ExactArgs(1),
	RunE:  runEEPROMGet,
}

var eepromSetCmd = &cobra.Command{
	Use:   "set <address> <value>",
	Short: "Write one byte",
	Args:  cobra.ExactArgs(2),
	RunE:  runEEPROMSet,
}

func init() {
	eepromCmd.AddCommand(eepromDumpCmd)
	eepromCmd.AddCommand(eepromRestoreCmd)
	eepromCmd.AddCommand(eepromGetCmd)
	eepromCmd.AddCommand(eepromSetCmd)
	rootCmd.AddCommand(eepromCmd)
}

func runEEPROMDump(cmd *cobra.Command, args []string) error {
	client, _, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	eeprom := client.EEPROM()
	image := make([]byte, alarmclock.EEPROMSize)
	for address := range image {
		value, err := eeprom.ReadByte(address)
		if err != nil {
			return fmt.Errorf("read address %d: %w", address, err)
		}
		image[address] = value
		if (address+1)%64 == 0 {
			fmt.Printf("\r%d/%d bytes", address+1, alarmclock.EEPROMSize)
		}
	}
	fmt.Println()

	if err := os.WriteFile(args[0], image, 0o644); err != nil {
		return err
	}
	fmt.Printf("dumped %d bytes to %s\n", len(image), args[0])
	return nil
}

func runEEPROMRestore(cmd *cobra.Command, args []string) error {
	image, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if len(image) != alarmclock.EEPROMSize {
		return fmt.Errorf("image is %d bytes, want %d", len(image), alarmclock.EEPROMSize)
	}

	client, _, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	eeprom := client.EEPROM()
	written := 0
	for address, value := range image {
		current, err := eeprom.ReadByte(address)
		if err != nil {
			return fmt.Errorf("read address %d: %w", address, err)
		}
		if current == value {
			continue
		}
		if err := eeprom.WriteByte(address, int(value)); err != nil {
			return fmt.Errorf("write address %d: %w", address, err)
		}
		written++
	}
	fmt.Printf("restored %s, %d bytes changed\n", args[0], written)
	return nil
}

func runEEPROMGet(cmd *cobra.Command, args []string) error {
	address, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid address %q", args[0])
	}

	client, _, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	value, err := client.EEPROM().ReadByte(address)
	if err != nil {
		return err
	}
	fmt.Printf("0x%03X: 0x%02X (%d)\n", address, value, value)
	return nil
}

func runEEPROMSet(cmd *cobra.Command, args []string) error {
	address, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid address %q", args[0])
	}
	value, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid value %q", args[1])
	}

	client, _, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	return client.EEPROM().WriteByte(address, value)
}
