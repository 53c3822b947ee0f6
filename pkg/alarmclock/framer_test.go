// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package alarmclock

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// ============================================================
// Scripted Connection Test Helpers
// ============================================================

// fakeConn simulates the clock end of a connection. Written commands are
// recorded and looked up in a reply script; the reply bytes are queued for
// subsequent reads. A read with nothing queued behaves like a timed-out
// read and returns (0, nil).
type fakeConn struct {
	replies map[string]string
	pending []byte
	writes  []string
	timeout time.Duration
	closed  bool
}

func (f *fakeConn) feed(s string) {
	f.pending = append(f.pending, s...)
}

func (f *fakeConn) Read(p []byte) (int, error) {
	if len(f.pending) == 0 {
		return 0, nil
	}
	n := copy(p, f.pending)
	f.pending = f.pending[n:]
	return n, nil
}

func (f *fakeConn) Write(p []byte) (int, error) {
	cmd := strings.TrimSuffix(string(p), "\n")
	f.writes = append(f.writes, cmd)
	if reply, ok := f.replies[cmd]; ok {
		f.feed(reply)
	}
	return len(p), nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func (f *fakeConn) SetReadTimeout(t time.Duration) error {
	f.timeout = t
	return nil
}

// okReply builds a response with an optional structured-output block, an Ok
// status line and the next prompt.
func okReply(yamlBlock, prompt string) string {
	return yamlBlock + "err 0x0: ok\r\n" + prompt + "> "
}

func newTestFramer(t *testing.T, fc *fakeConn) *Framer {
	t.Helper()
	if fc.replies == nil {
		fc.replies = map[string]string{}
	}
	fc.feed("> ")
	f, err := NewFramer(fc)
	if err != nil {
		t.Fatalf("NewFramer failed: %v", err)
	}
	return f
}

// ============================================================
// Prompt Synchronization Tests
// ============================================================

func TestNewFramer_ConsumesBanner(t *testing.T) {
	fc := &fakeConn{}
	fc.feed("AlarmClock CLI\r\nType 'help' for help\r\n> ")
	f, err := NewFramer(fc)
	if err != nil {
		t.Fatalf("NewFramer failed: %v", err)
	}
	if f.Prompt() != "" {
		t.Errorf("Expected empty prompt text, got %q", f.Prompt())
	}
	if fc.timeout != defaultReadTimeout {
		t.Errorf("Expected read timeout %v, got %v", defaultReadTimeout, fc.timeout)
	}
}

func TestNewFramer_SyncsIdleClock(t *testing.T) {
	fc := &fakeConn{
		replies: map[string]string{"sync": okReply("", "")},
	}
	f, err := NewFramer(fc)
	if err != nil {
		t.Fatalf("NewFramer failed: %v", err)
	}
	if len(fc.writes) != 1 || fc.writes[0] != "sync" {
		t.Errorf("Expected a single sync command, got %v", fc.writes)
	}
	if f.Prompt() != "" {
		t.Errorf("Expected empty prompt text, got %q", f.Prompt())
	}
}

func TestNewFramer_DeadConnection(t *testing.T) {
	fc := &fakeConn{}
	if _, err := NewFramer(fc); !errors.Is(err, ErrPromptTimeout) {
		t.Errorf("Expected ErrPromptTimeout, got %v", err)
	}
}

func TestFramer_SelectionPrompt(t *testing.T) {
	fc := &fakeConn{replies: map[string]string{
		"sel2": okReply("", "A2"),
	}}
	f := newTestFramer(t, fc)

	code, payload, err := f.Command("sel2")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if code != CodeOk {
		t.Errorf("Expected Ok, got %v", code)
	}
	if payload != nil {
		t.Errorf("Expected no payload, got %q", payload)
	}
	if f.Prompt() != "A2" {
		t.Errorf("Expected prompt A2, got %q", f.Prompt())
	}
}

// ============================================================
// Command Framing Tests
// ============================================================

func TestFramer_CommandCapturesBlock(t *testing.T) {
	fc := &fakeConn{replies: map[string]string{
		"lamp": okReply("---\nlamp: 1\n...\n", ""),
	}}
	f := newTestFramer(t, fc)

	code, payload, err := f.Command("lamp")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if code != CodeOk {
		t.Errorf("Expected Ok, got %v", code)
	}
	expected := "---\nlamp: 1\n...\n"
	if string(payload) != expected {
		t.Errorf("Payload mismatch: expected %q, got %q", expected, payload)
	}
}

func TestFramer_CommandDecodesErrorCode(t *testing.T) {
	fc := &fakeConn{replies: map[string]string{
		"sav": "err 0x4: nothing to save\r\n> ",
	}}
	f := newTestFramer(t, fc)

	code, _, err := f.Command("sav")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if code != CodeUselessSave {
		t.Errorf("Expected UselessSave, got %v", code)
	}
}

func TestFramer_CommandIgnoresEcho(t *testing.T) {
	fc := &fakeConn{replies: map[string]string{
		"inh": "inh\r\n" + okReply("---\ninhibit: 0\n...\n", ""),
	}}
	f := newTestFramer(t, fc)

	_, payload, err := f.Command("inh")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if strings.Contains(string(payload), "inh\r") {
		t.Errorf("Echo leaked into payload: %q", payload)
	}
}

func TestFramer_CommandTimeout(t *testing.T) {
	fc := &fakeConn{}
	f := newTestFramer(t, fc)

	if _, _, err := f.Command("stop"); !errors.Is(err, ErrPromptTimeout) {
		t.Errorf("Expected ErrPromptTimeout, got %v", err)
	}
}

// ============================================================
// Notification Tests
// ============================================================

func TestFramer_PollNotification(t *testing.T) {
	fc := &fakeConn{}
	f := newTestFramer(t, fc)

	fc.feed("\x07")
	notified, err := f.PollNotification()
	if err != nil {
		t.Fatalf("PollNotification failed: %v", err)
	}
	if !notified {
		t.Error("Expected notification after BEL")
	}

	// The flag is cleared on read
	notified, err = f.PollNotification()
	if err != nil {
		t.Fatalf("PollNotification failed: %v", err)
	}
	if notified {
		t.Error("Expected notification flag to be cleared")
	}
	if fc.timeout != defaultReadTimeout {
		t.Errorf("Read timeout not restored: got %v", fc.timeout)
	}
}

func TestFramer_BELInsideResponse(t *testing.T) {
	fc := &fakeConn{replies: map[string]string{
		"lamp": "er\x07r 0x0: ok\r\n> ",
	}}
	f := newTestFramer(t, fc)

	code, _, err := f.Command("lamp")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if code != CodeOk {
		t.Errorf("Expected Ok, got %v", code)
	}

	notified, err := f.PollNotification()
	if err != nil {
		t.Fatalf("PollNotification failed: %v", err)
	}
	if !notified {
		t.Error("Expected BEL inside a response to set the flag")
	}
}
