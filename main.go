// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

// chime is a host-side driver and toolkit for the Luminos hardware
// alarm clock. It talks the clock's line-oriented serial protocol over
// a serial port or a WebSocket proxy and exposes the device through a
// CLI, an interactive console, a live dashboard and an MQTT bridge.
package main

import (
	"os"

	"github.com/luminos-hw/chime/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
