// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package alarmclock

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.bug.st/serial"
)

// Conn provides a common interface for reading/writing bytes from serial or
// WebSocket transports. SetReadTimeout controls how long a single Read may
// block: a positive duration makes Read return (0, nil) once it elapses with
// no data, zero makes Read non-blocking.
type Conn interface {
	io.Reader
	io.Writer
	io.Closer
	SetReadTimeout(t time.Duration) error
}

// SerialConn wraps a serial port.
type SerialConn struct {
	port serial.Port
}

func (s *SerialConn) Read(p []byte) (int, error) {
	return s.port.Read(p)
}

func (s *SerialConn) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

func (s *SerialConn) Close() error {
	return s.port.Close()
}

func (s *SerialConn) SetReadTimeout(t time.Duration) error {
	return s.port.SetReadTimeout(t)
}

// OpenSerial opens a serial port in 8N1 mode.
func OpenSerial(portName string, baudRate int) (Conn, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	return &SerialConn{port: port}, nil
}

// ErrConnectionClosed is returned when reading from a closed WebSocket connection.
var ErrConnectionClosed = fmt.Errorf("websocket connection closed")

// WebSocketConn wraps a WebSocket connection for byte-level reading, for
// clocks exposed over a serial-to-WebSocket bridge.
type WebSocketConn struct {
	conn        *websocket.Conn
	buf         []byte
	bufOffset   int
	closed      bool
	readTimeout time.Duration
}

func (w *WebSocketConn) Read(p []byte) (int, error) {
	if w.closed {
		return 0, ErrConnectionClosed
	}

	// If we have buffered data, return it first
	if w.bufOffset < len(w.buf) {
		n := copy(p, w.buf[w.bufOffset:])
		w.bufOffset += n
		return n, nil
	}

	deadline := time.Time{}
	if w.readTimeout >= 0 {
		deadline = time.Now().Add(w.readTimeout)
	}
	if err := w.conn.SetReadDeadline(deadline); err != nil {
		return 0, err
	}

	// Read next message from WebSocket (non-recursive loop to avoid stack overflow)
	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			// A deadline expiry is a timeout, not a failure
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return 0, nil
			}
			// Mark connection as closed to prevent further read attempts
			w.closed = true
			return 0, err
		}

		// The clock protocol is byte-oriented, so only binary frames carry data
		if messageType != websocket.BinaryMessage {
			continue
		}

		// Buffer the message and return what fits
		w.buf = data
		w.bufOffset = 0
		n := copy(p, w.buf)
		w.bufOffset = n
		return n, nil
	}
}

func (w *WebSocketConn) Write(p []byte) (int, error) {
	err := w.conn.WriteMessage(websocket.BinaryMessage, p)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *WebSocketConn) Close() error {
	return w.conn.Close()
}

func (w *WebSocketConn) SetReadTimeout(t time.Duration) error {
	w.readTimeout = t
	return nil
}

// OpenWebSocket opens a WebSocket connection with HTTP Basic auth.
func OpenWebSocket(wsURL, username, password string, skipSSLVerify bool) (Conn, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	switch u.Scheme {
	case "ws", "wss":
		// OK
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: skipSSLVerify,
		}
	}

	headers := http.Header{}
	if username != "" && password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		headers.Set("Authorization", "Basic "+credentials)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %w", err)
	}

	return &WebSocketConn{conn: conn, readTimeout: -1}, nil
}
