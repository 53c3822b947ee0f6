// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/luminos-hw/chime/pkg/alarmclock"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive device command console",
	Long: `An interactive console that sends commands straight to the device's CLI
and pretty-prints the structured output. Lines starting with / are handled
by the console itself:

  /help            show the meta commands
  /notify          check for a pending state change notification
  /alarm <index>   decode one alarm
  /quit            leave the console

Everything else goes to the device verbatim (try "help" or "ver").`,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, args []string) error {
	client, connInfo, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	fmt.Printf("Connected: %s\n", connInfo)
	fmt.Printf("Firmware built %s, %d alarms. /help for meta commands.\n",
		client.BuildTime(), client.NumberOfAlarms())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "chime> ",
		HistoryFile:     "/tmp/chime_console_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, err := consoleMeta(client, line)
			if err != nil {
				fmt.Printf("error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		doc, err := client.Run(line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		if doc == nil {
			fmt.Println("ok")
			continue
		}
		printDocument(doc)
	}
}

func consoleMeta(client *alarmclock.Client, line string) (quit bool, err error) {
	fields, err := shlex.Split(strings.TrimPrefix(line, "/"))
	if err != nil {
		return false, err
	}
	if len(fields) == 0 {
		return false, fmt.Errorf("empty meta command")
	}

	switch fields[0] {
	case "quit", "exit", "q":
		return true, nil
	case "help":
		fmt.Println("/help /notify /alarm <index> /quit")
		fmt.Println("anything else is sent to the device verbatim")
		return false, nil
	case "notify":
		changed, err := client.StateChanged()
		if err != nil {
			return false, err
		}
		if changed {
			fmt.Println("state changed since last check")
		} else {
			fmt.Println("no pending notification")
		}
		return false, nil
	case "alarm":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: /alarm <index>")
		}
		var index int
		if _, err := fmt.Sscanf(fields[1], "%d", &index); err != nil {
			return false, fmt.Errorf("invalid index %q", fields[1])
		}
		alarm, err := client.ReadAlarm(index)
		if err != nil {
			return false, err
		}
		fmt.Printf("alarm%d: %s\n", index, alarm)
		return false, nil
	default:
		return false, fmt.Errorf("unknown meta command /%s", fields[0])
	}
}

func printDocument(doc *alarmclock.Document) {
	out, err := yaml.Marshal(doc.Raw())
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Print(string(out))
}
