// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/luminos-hw/chime/pkg/alarmclock"
)

var lampCmd = &cobra.Command{
	Use:   "lamp [on|off]",
	Short: "Show or switch the lamp output",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSwitch(args, "lamp",
			(*alarmclock.Client).Lamp, (*alarmclock.Client).SetLamp)
	},
}

var inhibitCmd = &cobra.Command{
	Use:   "inhibit [on|off]",
	Short: "Show or set the inhibit flag",
	Long: `Show or set the inhibit flag. While set, alarms that come due do not fire.
The device clears the flag on its own after a fixed period.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSwitch(args, "inhibit",
			(*alarmclock.Client).Inhibit, (*alarmclock.Client).SetInhibit)
	},
}

var ambientCmd = &cobra.Command{
	Use:   "ambient [value]",
	Short: "Show or set the ambient LED target (0-255)",
	Long: `Show the ambient LED dimmer state, or set its target value. The dimmer
fades towards the target on its own, so the current value trails the target
for a short while after a change.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAmbient,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Act as a press of the stop button",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(lampCmd)
	rootCmd.AddCommand(inhibitCmd)
	rootCmd.AddCommand(ambientCmd)
	rootCmd.AddCommand(stopCmd)
}

func runSwitch(args []string, name string,
	get func(*alarmclock.Client) (bool, error),
	set func(*alarmclock.Client, bool) error) error {

	client, _, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if len(args) == 1 {
		var value bool
		switch args[0] {
		case "on", "1":
			value = true
		case "off", "0":
			value = false
		default:
			return fmt.Errorf("invalid state %q, want on or off", args[0])
		}
		return set(client, value)
	}

	value, err := get(client)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", name, onOffStr(value))
	return nil
}

func runAmbient(cmd *cobra.Command, args []string) error {
	client, _, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if len(args) == 1 {
		value, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ambient value %q", args[0])
		}
		return client.SetAmbientTarget(value)
	}

	status, err := client.Ambient()
	if err != nil {
		return err
	}
	fmt.Printf("ambient: %d (target %d)\n", status.Current, status.Target)
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	client, _, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	return client.PressStop()
}
