// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/luminos-hw/chime/pkg/alarmclock"
)

// GetPassword retrieves the WebSocket password from the environment or
// prompts for it without echo.
func GetPassword() (string, error) {
	if pw := os.Getenv("CHIME_PASSWORD"); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(os.Stderr)
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr)
	return string(passwordBytes), nil
}

// openConn opens either a serial or WebSocket connection based on the root
// flags and describes it for banners.
func openConn() (alarmclock.Conn, string, error) {
	if wsURL != "" {
		password := ""
		if wsUsername != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, "", err
			}
		}

		conn, err := alarmclock.OpenWebSocket(wsURL, wsUsername, password, wsNoSSLVerify)
		if err != nil {
			return nil, "", err
		}
		return conn, fmt.Sprintf("WebSocket: %s", wsURL), nil
	}

	if portName != "" {
		conn, err := alarmclock.OpenSerial(portName, baudRate)
		if err != nil {
			return nil, "", err
		}
		return conn, fmt.Sprintf("Serial: %s @ %d baud", portName, baudRate), nil
	}

	return nil, "", fmt.Errorf("either --port or --url must be specified")
}

// openClient opens a connection and completes the device handshake.
func openClient() (*alarmclock.Client, string, error) {
	conn, connInfo, err := openConn()
	if err != nil {
		return nil, "", err
	}
	client, err := alarmclock.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, "", err
	}
	return client, connInfo, nil
}
