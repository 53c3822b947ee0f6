// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package alarmclock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	promptRe = regexp.MustCompile(`^(A?[0-9]{0,3})> `)
	statusRe = regexp.MustCompile(`^err (0x[0-9A-Fa-f]{1,2}): `)
)

const (
	defaultReadTimeout = 1 * time.Second
	defaultTimeoutMax  = 4
)

// Framer drives the clock's line-oriented command protocol over a Conn.
// It pairs each command with the status line and prompt that terminate it,
// and it intercepts BEL bytes arriving out of band.
//
// Framer is not safe for concurrent use.
type Framer struct {
	conn        Conn
	readTimeout time.Duration
	timeoutMax  int

	prompt string // text of the most recently consumed prompt, without "> "
	notify bool   // sticky BEL flag, cleared by PollNotification
}

// NewFramer takes ownership of conn and synchronizes with the clock by
// waiting for a prompt. If the clock is idle and no prompt arrives, a no-op
// command is sent to provoke a fresh one.
func NewFramer(conn Conn) (*Framer, error) {
	f := &Framer{
		conn:        conn,
		readTimeout: defaultReadTimeout,
		timeoutMax:  defaultTimeoutMax,
	}
	if err := conn.SetReadTimeout(f.readTimeout); err != nil {
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}

	if err := f.waitForPrompt(); err != nil {
		if err != ErrPromptTimeout {
			return nil, err
		}
		// No banner and no prompt. The clock is likely idle at a prompt it
		// printed long ago, so run a no-op command to get a fresh one.
		log.Debug("no prompt on open, sending sync")
		if _, _, err := f.Command("sync"); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Prompt returns the text of the most recently consumed prompt without the
// trailing "> ". After a successful sel command this is "A" plus the
// selected index.
func (f *Framer) Prompt() string {
	return f.prompt
}

// Close closes the underlying connection.
func (f *Framer) Close() error {
	return f.conn.Close()
}

// readByte reads a single byte. BEL bytes are consumed into the notification
// flag and never returned. A timed-out read returns ok=false with a nil
// error.
func (f *Framer) readByte() (b byte, ok bool, err error) {
	var buf [1]byte
	for {
		n, err := f.conn.Read(buf[:])
		if err != nil {
			return 0, false, fmt.Errorf("read failed: %w", err)
		}
		if n == 0 {
			return 0, false, nil
		}
		if buf[0] == bel {
			log.Debug("received BEL")
			f.notify = true
			continue
		}
		return buf[0], true, nil
	}
}

// waitForPrompt consumes input until a prompt is recognized at the start of
// a line. The total number of timed-out reads is bounded by timeoutMax;
// exceeding it returns ErrPromptTimeout.
func (f *Framer) waitForPrompt() error {
	var line strings.Builder
	timeouts := 0
	for {
		b, ok, err := f.readByte()
		if err != nil {
			return err
		}
		if !ok {
			timeouts++
			if timeouts >= f.timeoutMax {
				return ErrPromptTimeout
			}
			continue
		}
		switch b {
		case '\r', '\n':
			line.Reset()
		default:
			line.WriteByte(b)
			if m := promptRe.FindStringSubmatch(line.String()); m != nil {
				f.prompt = m[1]
				return nil
			}
		}
	}
}

// readLine reads one CRLF or LF terminated line. Empty lines are skipped.
// The same timed-out read bound as waitForPrompt applies.
func (f *Framer) readLine() (string, error) {
	var line strings.Builder
	timeouts := 0
	for {
		b, ok, err := f.readByte()
		if err != nil {
			return "", err
		}
		if !ok {
			timeouts++
			if timeouts >= f.timeoutMax {
				return "", ErrPromptTimeout
			}
			continue
		}
		switch b {
		case '\r':
			// CR is always followed by LF, let LF terminate
		case '\n':
			if line.Len() == 0 {
				continue
			}
			return line.String(), nil
		default:
			line.WriteByte(b)
		}
	}
}

// Command sends cmd and collects its response: an optional YAML block
// delimited by "---" and "...", the "err 0x..." status line, and the next
// prompt. The raw YAML block (delimiters included) is returned alongside the
// decoded error code.
func (f *Framer) Command(cmd string) (ErrorCode, []byte, error) {
	log.WithField("cmd", cmd).Debug("sending command")
	if _, err := f.conn.Write([]byte(cmd + "\n")); err != nil {
		return 0, nil, fmt.Errorf("write failed: %w", err)
	}

	var (
		yamlBlock []byte
		inYAML    bool
	)
	for {
		line, err := f.readLine()
		if err != nil {
			return 0, nil, err
		}
		if m := statusRe.FindStringSubmatch(line); m != nil {
			code, err := strconv.ParseUint(m[1][2:], 16, 8)
			if err != nil {
				return 0, nil, fmt.Errorf("malformed status line %q: %w", line, err)
			}
			if err := f.waitForPrompt(); err != nil {
				return 0, nil, err
			}
			return ErrorCode(code), yamlBlock, nil
		}
		switch {
		case !inYAML && line == "---":
			inYAML = true
			yamlBlock = append(yamlBlock, line...)
			yamlBlock = append(yamlBlock, '\n')
		case inYAML:
			yamlBlock = append(yamlBlock, line...)
			yamlBlock = append(yamlBlock, '\n')
			if line == "..." {
				inYAML = false
			}
		default:
			// Echo or chatter outside the YAML block, ignore
			log.WithField("line", line).Debug("discarding line")
		}
	}
}

// PollNotification drains any pending input without blocking and reports
// whether a BEL was seen since the last poll. The notification flag is
// cleared by the call.
func (f *Framer) PollNotification() (bool, error) {
	if err := f.conn.SetReadTimeout(0); err != nil {
		return false, fmt.Errorf("failed to set read timeout: %w", err)
	}
	defer func() {
		if err := f.conn.SetReadTimeout(f.readTimeout); err != nil {
			log.WithError(err).Error("failed to restore read timeout")
		}
	}()

	var buf [64]byte
	for {
		n, err := f.conn.Read(buf[:])
		if err != nil {
			return false, fmt.Errorf("read failed: %w", err)
		}
		if n == 0 {
			break
		}
		for _, b := range buf[:n] {
			if b == bel {
				log.Debug("received BEL")
				f.notify = true
			}
		}
	}

	notified := f.notify
	f.notify = false
	return notified, nil
}
