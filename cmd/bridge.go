// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/luminos-hw/chime/internal/bridge"
	"github.com/luminos-hw/chime/internal/config"
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge [config.yaml]",
	Short: "Run the MQTT bridge",
	Long: `Expose the clock over MQTT. Retained device state is published under
<topic>/stat, commands are accepted under <topic>/cmnd and handler errors go
to <topic>/err. The broker sees <topic>/stat/available flip to offline when
the bridge dies.

Configuration comes from an optional YAML file; flags override it. The
serial device is taken from the root --port/--baud flags when the file does
not set one.

Example config:
  serial:
    device: /dev/ttyUSB0
    baudrate: 9600
  mqtt:
    hostname: broker.local
    port: 1883
    username: clock
    password: hunter2
    topic: bedroom/alarmclock`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBridge,
}

var (
	bridgeMQTTHost     string
	bridgeMQTTPort     int
	bridgeMQTTUsername string
	bridgeMQTTPassword string
	bridgeTopic        string
)

func init() {
	bridgeCmd.Flags().StringVar(&bridgeMQTTHost, "mqtt-host", "", "MQTT broker host")
	bridgeCmd.Flags().IntVar(&bridgeMQTTPort, "mqtt-port", 0, "MQTT broker port")
	bridgeCmd.Flags().StringVar(&bridgeMQTTUsername, "mqtt-username", "", "MQTT username")
	bridgeCmd.Flags().StringVar(&bridgeMQTTPassword, "mqtt-password", "", "MQTT password")
	bridgeCmd.Flags().StringVar(&bridgeTopic, "topic", "", "MQTT topic prefix")
	rootCmd.AddCommand(bridgeCmd)
}

func runBridge(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{}
	if len(args) == 1 {
		var err error
		cfg, err = config.Load(args[0])
		if err != nil {
			return err
		}
	}

	if cfg.Serial.Device == "" {
		cfg.Serial.Device = portName
	}
	if cfg.Serial.Baudrate == 0 {
		cfg.Serial.Baudrate = baudRate
	}
	if bridgeMQTTHost != "" {
		cfg.MQTT.Hostname = bridgeMQTTHost
	}
	if bridgeMQTTPort != 0 {
		cfg.MQTT.Port = bridgeMQTTPort
	}
	if bridgeMQTTUsername != "" {
		cfg.MQTT.Username = bridgeMQTTUsername
	}
	if bridgeMQTTPassword != "" {
		cfg.MQTT.Password = bridgeMQTTPassword
	}
	if bridgeTopic != "" {
		cfg.MQTT.Topic = bridgeTopic
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	config.Normalize(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := bridge.New(cfg).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
