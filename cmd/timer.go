// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luminos-hw/chime/pkg/alarmclock"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Show or control the countdown timer",
	RunE:  runTimerShow,
}

var timerSetCmd = &cobra.Command{
	Use:   "set <H:MM:SS>",
	Short: "Set the remaining time",
	Args:  cobra.ExactArgs(1),
	RunE:  runTimerSet,
}

var timerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the countdown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTimerRunning(true)
	},
}

var timerStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the countdown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTimerRunning(false)
	},
}

var timerEventsCmd = &cobra.Command{
	Use:   "events <ambient:lamp:buzzer>",
	Short: "Set what the timer triggers when it expires",
	Args:  cobra.ExactArgs(1),
	RunE:  runTimerEvents,
}

func init() {
	timerCmd.AddCommand(timerSetCmd)
	timerCmd.AddCommand(timerStartCmd)
	timerCmd.AddCommand(timerStopCmd)
	timerCmd.AddCommand(timerEventsCmd)
	rootCmd.AddCommand(timerCmd)
}

func runTimerShow(cmd *cobra.Command, args []string) error {
	client, _, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	info, err := client.Timer().Get()
	if err != nil {
		return err
	}
	state := "stopped"
	if info.Running {
		state = "running"
	}
	fmt.Printf("timer: %s, %s\n", info.TimeLeft, state)
	fmt.Printf("on expiry: ambient=%d lamp=%t buzzer=%d\n",
		info.Events.Ambient, info.Events.Lamp, info.Events.Buzzer)
	return nil
}

func runTimerSet(cmd *cobra.Command, args []string) error {
	d, err := alarmclock.ParseDuration(args[0])
	if err != nil {
		return err
	}

	client, _, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	return client.Timer().SetTime(d)
}

func runTimerRunning(running bool) error {
	client, _, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	return client.Timer().SetRunning(running)
}

func runTimerEvents(cmd *cobra.Command, args []string) error {
	var ambient, lamp, buzzer int
	if _, err := fmt.Sscanf(args[0], "%d:%d:%d", &ambient, &lamp, &buzzer); err != nil {
		return fmt.Errorf("invalid events %q, want ambient:lamp:buzzer", args[0])
	}

	client, _, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	return client.Timer().SetEvents(alarmclock.Signalization{
		Ambient: ambient,
		Lamp:    lamp != 0,
		Buzzer:  buzzer,
	})
}
