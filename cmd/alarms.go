// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/luminos-hw/chime/pkg/alarmclock"
)

var alarmsCmd = &cobra.Command{
	Use:   "alarms",
	Short: "List the configuration of every alarm",
	RunE:  runAlarms,
}

var alarmCmd = &cobra.Command{
	Use:   "alarm <index>",
	Short: "Show or change one alarm",
	Long: `Show the configuration of a single alarm, or change selected fields of it
with flags. Fields without a flag keep their current value; the device is
only sent the fields that actually change. Changes are persisted to EEPROM
unless --no-save is given.

Examples:
  chime -p /dev/ttyUSB0 alarm 2
  chime -p /dev/ttyUSB0 alarm 2 --enabled RPT --time 7:30 --days Monday,Tuesday
  chime -p /dev/ttyUSB0 alarm 2 --enabled OFF`,
	Args: cobra.ExactArgs(1),
	RunE: runAlarm,
}

var (
	alarmEnabled string
	alarmDays    []string
	alarmTime    string
	alarmSnooze  string
	alarmSig     string
	alarmNoSave  bool
)

func init() {
	rootCmd.AddCommand(alarmsCmd)

	alarmCmd.Flags().StringVar(&alarmEnabled, "enabled", "", "Enabled state: OFF, SGL, RPT or SKP")
	alarmCmd.Flags().StringSliceVar(&alarmDays, "days", nil, "Days of week the alarm fires, by name")
	alarmCmd.Flags().StringVar(&alarmTime, "time", "", "Time of day, H:MM")
	alarmCmd.Flags().StringVar(&alarmSnooze, "snooze", "", "Snooze as minutes:count (e.g. 5:3)")
	alarmCmd.Flags().StringVar(&alarmSig, "signal", "", "Signalization as ambient:lamp:buzzer (e.g. 240:1:1)")
	alarmCmd.Flags().BoolVar(&alarmNoSave, "no-save", false, "Do not persist the change to EEPROM")
	rootCmd.AddCommand(alarmCmd)
}

func runAlarms(cmd *cobra.Command, args []string) error {
	client, _, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	alarms, err := client.ReadAlarms()
	if err != nil {
		return err
	}
	for i, alarm := range alarms {
		fmt.Printf("alarm%d: %s\n", i, alarm)
	}
	return nil
}

func runAlarm(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid alarm index %q", args[0])
	}

	client, _, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	alarm, err := client.ReadAlarm(index)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("enabled") && !cmd.Flags().Changed("days") &&
		!cmd.Flags().Changed("time") && !cmd.Flags().Changed("snooze") &&
		!cmd.Flags().Changed("signal") {
		fmt.Printf("alarm%d: %s\n", index, alarm)
		return nil
	}

	if err := applyAlarmFlags(cmd, &alarm); err != nil {
		return err
	}
	if err := client.WriteAlarm(index, alarm); err != nil {
		return err
	}
	if !alarmNoSave {
		if err := client.Save(); err != nil {
			if !alarmclock.IsCode(err, alarmclock.CodeUselessSave) {
				return err
			}
			fmt.Println("nothing changed")
			return nil
		}
	}
	fmt.Printf("alarm%d: %s\n", index, alarm)
	return nil
}

func applyAlarmFlags(cmd *cobra.Command, alarm *alarmclock.Alarm) error {
	if cmd.Flags().Changed("enabled") {
		enabled, err := alarmclock.ParseAlarmEnabled(alarmEnabled)
		if err != nil {
			return err
		}
		alarm.Enabled = enabled
	}
	if cmd.Flags().Changed("days") {
		days, err := alarmclock.DaysOfWeekFromNames(alarmDays...)
		if err != nil {
			return err
		}
		alarm.Days = days
	}
	if cmd.Flags().Changed("time") {
		var h, m int
		if _, err := fmt.Sscanf(alarmTime, "%d:%d", &h, &m); err != nil {
			return fmt.Errorf("invalid time %q, want H:MM", alarmTime)
		}
		alarm.Time = alarmclock.TimeOfDay{Hours: h, Minutes: m}
	}
	if cmd.Flags().Changed("snooze") {
		var t, c int
		if _, err := fmt.Sscanf(alarmSnooze, "%d:%d", &t, &c); err != nil {
			return fmt.Errorf("invalid snooze %q, want minutes:count", alarmSnooze)
		}
		alarm.Snooze = alarmclock.Snooze{Time: t, Count: c}
	}
	if cmd.Flags().Changed("signal") {
		var ambient, lamp, buzzer int
		if _, err := fmt.Sscanf(alarmSig, "%d:%d:%d", &ambient, &lamp, &buzzer); err != nil {
			return fmt.Errorf("invalid signalization %q, want ambient:lamp:buzzer", alarmSig)
		}
		alarm.Signalization = alarmclock.Signalization{
			Ambient: ambient,
			Lamp:    lamp != 0,
			Buzzer:  buzzer,
		}
	}
	return nil
}
