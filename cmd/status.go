// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a snapshot of the clock's state",
	Long: `Query the clock for firmware identification, RTC time and the composite
status record (ringing alarms, ambient dimmer, lamp, inhibit, backlight).

Supports both serial and WebSocket connections.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, connInfo, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	fmt.Printf("Connection: %s\n", connInfo)
	if v := client.Version(); v != "" {
		fmt.Printf("Firmware:   %s (built %s)\n", v, client.BuildTime())
	} else {
		fmt.Printf("Firmware:   built %s\n", client.BuildTime())
	}
	fmt.Printf("Alarms:     %d slots\n", client.NumberOfAlarms())

	rtc, err := client.RTCTime()
	if err != nil {
		return err
	}
	fmt.Printf("RTC time:   %s\n", rtc.Format("2006-01-02 15:04:05"))

	status, err := client.Status()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Lamp:       %s\n", onOffStr(status.Lamp))
	fmt.Printf("Inhibit:    %s\n", onOffStr(status.Inhibit))
	fmt.Printf("Ambient:    %d (target %d)\n", status.Ambient.Current, status.Ambient.Target)
	fmt.Printf("Backlight:  %s\n", status.Backlight)
	fmt.Printf("Ringing:    %s\n", idList(status.ActiveAlarms))
	fmt.Printf("Ambient on: %s\n", idList(status.AmbientAlarms))
	if status.AlarmsChanged {
		fmt.Printf("Note: alarm configuration changed since the last read\n")
	}
	return nil
}

func onOffStr(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func idList(ids []int) string {
	if len(ids) == 0 {
		return "none"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("alarm%d", id)
	}
	return strings.Join(parts, ", ")
}
