// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/luminos-hw/chime/pkg/alarmclock"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Display raw device output in human-readable form",
	Long: `Continuously display everything the device prints, line by line with
timestamps. Out-of-band BEL notification bytes are shown as their own
[NOTIFY] entries instead of being mixed into the line text.

Useful for watching what the firmware does while poking at it from another
session, and for debugging framing problems.

Supports both serial and WebSocket connections.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := openConn()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("Chime - Raw Device Log\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	var line []byte
	buf := make([]byte, 128)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			// For WebSocket connections, a read error usually means
			// the connection is permanently closed - exit gracefully
			if err == alarmclock.ErrConnectionClosed {
				fmt.Println("Connection closed")
				return nil
			}
			return fmt.Errorf("read error: %w", err)
		}
		if n == 0 {
			continue
		}

		for _, b := range buf[:n] {
			switch b {
			case 0x07:
				printMonitorLine("[NOTIFY]")
			case '\r':
				// CR is always followed by LF
			case '\n':
				if len(line) > 0 {
					printMonitorLine(string(line))
					line = line[:0]
				}
			default:
				line = append(line, b)
			}
		}
	}
}

func printMonitorLine(text string) {
	fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), text)
}
