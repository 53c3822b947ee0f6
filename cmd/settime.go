// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var setTimeCmd = &cobra.Command{
	Use:   "set-time [time]",
	Short: "Set the clock's RTC",
	Long: `Set the clock's real-time clock. Without an argument the host's current
local time is used. An explicit time is given as RFC 3339 or as
"2006-01-02 15:04:05" in local time.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSetTime,
}

func init() {
	rootCmd.AddCommand(setTimeCmd)
}

func runSetTime(cmd *cobra.Command, args []string) error {
	target := time.Now()
	if len(args) == 1 {
		var err error
		target, err = time.Parse(time.RFC3339, args[0])
		if err != nil {
			target, err = time.ParseInLocation("2006-01-02 15:04:05", args[0], time.Local)
		}
		if err != nil {
			return fmt.Errorf("invalid time %q", args[0])
		}
	}

	client, _, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	before, err := client.RTCTime()
	if err != nil {
		return err
	}
	if err := client.SetRTCTime(target); err != nil {
		return err
	}
	after, err := client.RTCTime()
	if err != nil {
		return err
	}

	fmt.Printf("RTC was: %s\n", before.Format("2006-01-02 15:04:05"))
	fmt.Printf("RTC now: %s\n", after.Format("2006-01-02 15:04:05"))
	return nil
}
