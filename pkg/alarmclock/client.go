// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package alarmclock

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Client is a high-level handle to an alarm clock. It owns the connection
// and caches the immutable identification read at startup.
//
// Client is not safe for concurrent use.
type Client struct {
	framer *Framer

	numberOfAlarms int
	buildTime      string
	version        string
}

// Open connects to a clock on a serial port and performs the initial
// handshake.
func Open(portName string, baudRate int) (*Client, error) {
	conn, err := OpenSerial(portName, baudRate)
	if err != nil {
		return nil, err
	}
	c, err := NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// NewClient takes ownership of conn, synchronizes with the clock and reads
// its identification.
func NewClient(conn Conn) (*Client, error) {
	framer, err := NewFramer(conn)
	if err != nil {
		return nil, err
	}
	c := &Client{framer: framer}

	doc, err := c.Run("ver")
	if err != nil {
		return nil, fmt.Errorf("failed to read version info: %w", err)
	}
	inner, err := doc.Map("ver")
	if err != nil {
		return nil, err
	}
	if c.numberOfAlarms, err = inner.Int("number of alarms"); err != nil {
		return nil, err
	}
	if c.buildTime, err = inner.Str("build time"); err != nil {
		return nil, err
	}
	if inner.Has("version") {
		if c.version, err = inner.Str("version"); err != nil {
			return nil, err
		}
	}

	log.WithFields(log.Fields{
		"alarms":  c.numberOfAlarms,
		"build":   c.buildTime,
		"version": c.version,
	}).Debug("connected to alarm clock")
	return c, nil
}

// Close closes the connection to the clock.
func (c *Client) Close() error {
	return c.framer.Close()
}

// NumberOfAlarms returns how many alarm slots the firmware has.
func (c *Client) NumberOfAlarms() int { return c.numberOfAlarms }

// BuildTime returns the firmware build timestamp string.
func (c *Client) BuildTime() string { return c.buildTime }

// Version returns the firmware version string, empty on firmwares too old
// to report one.
func (c *Client) Version() string { return c.version }

// Run executes a raw protocol command. A non-zero status becomes a
// *CommandError. Commands that produce no YAML block return a nil Document.
func (c *Client) Run(command string) (*Document, error) {
	code, payload, err := c.framer.Command(command)
	if err != nil {
		return nil, err
	}
	if code != CodeOk {
		return nil, &CommandError{Code: code}
	}
	if len(payload) == 0 {
		return nil, nil
	}
	return ParseDocument(payload)
}

func (c *Client) checkIndex(index int) error {
	if index < 0 || index >= c.numberOfAlarms {
		return fmt.Errorf("%w: alarm index %d out of range 0..%d",
			ErrInvalidArgument, index, c.numberOfAlarms-1)
	}
	return nil
}

// ReadAlarm reads the configuration of a single alarm. The alarm stays
// selected afterwards, which WriteAlarm relies on.
func (c *Client) ReadAlarm(index int) (Alarm, error) {
	if err := c.checkIndex(index); err != nil {
		return Alarm{}, err
	}
	if _, err := c.Run(fmt.Sprintf("sel%d", index)); err != nil {
		return Alarm{}, err
	}
	doc, err := c.Run("ls")
	if err != nil {
		return Alarm{}, err
	}

	// The prompt proves which alarm the output belongs to. A mismatch means
	// our view of the selection is wrong and no further command can be
	// trusted.
	want := fmt.Sprintf("A%d", index)
	if got := c.framer.Prompt(); got != want {
		return Alarm{}, &DesyncError{Want: want, Got: got}
	}

	inner, err := doc.Map(fmt.Sprintf("alarm%d", index))
	if err != nil {
		return Alarm{}, err
	}
	return AlarmFromDocument(inner)
}

// ReadAlarms reads the configuration of every alarm with a single command.
func (c *Client) ReadAlarms() ([]Alarm, error) {
	doc, err := c.Run("la")
	if err != nil {
		return nil, err
	}
	alarms := make([]Alarm, c.numberOfAlarms)
	for i := range alarms {
		inner, err := doc.Map(fmt.Sprintf("alarm%d", i))
		if err != nil {
			return nil, err
		}
		if alarms[i], err = AlarmFromDocument(inner); err != nil {
			return nil, err
		}
	}
	return alarms, nil
}

// WriteAlarm updates the alarm at index to match alarm. The current
// configuration is read first and only the fields that differ are sent,
// which keeps EEPROM wear down and matches the firmware's field-by-field
// command set.
func (c *Client) WriteAlarm(index int, alarm Alarm) error {
	current, err := c.ReadAlarm(index)
	if err != nil {
		return err
	}

	var commands []string
	if alarm.Enabled != current.Enabled {
		commands = append(commands, fmt.Sprintf("en-%s", alarm.Enabled.wireName()))
	}
	for day := 1; day <= 7; day++ {
		mask := byte(1) << day
		want := alarm.Days.Code()&mask != 0
		have := current.Days.Code()&mask != 0
		if want != have {
			commands = append(commands, fmt.Sprintf("dow%d:%d", day, btoi(want)))
		}
	}
	if alarm.Time != current.Time {
		commands = append(commands, fmt.Sprintf("time%d:%d", alarm.Time.Hours, alarm.Time.Minutes))
	}
	if alarm.Snooze != current.Snooze {
		commands = append(commands, fmt.Sprintf("snz%d;%d", alarm.Snooze.Time, alarm.Snooze.Count))
	}
	if alarm.Signalization != current.Signalization {
		commands = append(commands, fmt.Sprintf("sig%d;%d;%d",
			alarm.Signalization.Ambient, btoi(alarm.Signalization.Lamp), alarm.Signalization.Buzzer))
	}

	log.WithFields(log.Fields{
		"index":    index,
		"commands": len(commands),
	}).Debug("writing alarm")
	for _, cmd := range commands {
		if _, err := c.Run(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Save persists any unsaved changes to EEPROM. Saving with nothing changed
// is an error the firmware reports as UselessSave.
func (c *Client) Save() error {
	_, err := c.Run("sav")
	return err
}

// PressStop acts like a press of the physical stop button, silencing an
// active alarm or timer.
func (c *Client) PressStop() error {
	_, err := c.Run("stop")
	return err
}

// Lamp reads the on/off state of the lamp output.
func (c *Client) Lamp() (bool, error) {
	doc, err := c.Run("lamp")
	if err != nil {
		return false, err
	}
	return doc.Bool("lamp")
}

// SetLamp switches the lamp output.
func (c *Client) SetLamp(on bool) error {
	_, err := c.Run(fmt.Sprintf("lamp%d", btoi(on)))
	return err
}

// AmbientTarget reads the target value of the ambient LED dimmer.
func (c *Client) AmbientTarget() (int, error) {
	doc, err := c.Run("amb")
	if err != nil {
		return 0, err
	}
	inner, err := doc.Map("ambient")
	if err != nil {
		return 0, err
	}
	return inner.Int("target")
}

// Ambient reads the current and target values of the ambient LED dimmer.
func (c *Client) Ambient() (AmbientStatus, error) {
	doc, err := c.Run("amb")
	if err != nil {
		return AmbientStatus{}, err
	}
	inner, err := doc.Map("ambient")
	if err != nil {
		return AmbientStatus{}, err
	}
	current, err := inner.Int("current")
	if err != nil {
		return AmbientStatus{}, err
	}
	target, err := inner.Int("target")
	if err != nil {
		return AmbientStatus{}, err
	}
	return AmbientStatus{Current: current, Target: target}, nil
}

// SetAmbientTarget sets the target value of the ambient LED dimmer. The
// dimmer fades towards the target on its own.
func (c *Client) SetAmbientTarget(value int) error {
	if value < 0 || value > 255 {
		return fmt.Errorf("%w: ambient value %d out of range 0..255", ErrInvalidArgument, value)
	}
	_, err := c.Run(fmt.Sprintf("amb%d", value))
	return err
}

// Inhibit reads the inhibit flag. While set, alarms do not fire.
func (c *Client) Inhibit() (bool, error) {
	doc, err := c.Run("inh")
	if err != nil {
		return false, err
	}
	return doc.Bool("inhibit")
}

// SetInhibit sets or clears the inhibit flag.
func (c *Client) SetInhibit(on bool) error {
	_, err := c.Run(fmt.Sprintf("inh%d", btoi(on)))
	return err
}

// RTCTime reads the clock's real-time clock.
func (c *Client) RTCTime() (time.Time, error) {
	doc, err := c.Run("rtc")
	if err != nil {
		return time.Time{}, err
	}
	inner, err := doc.Map("rtc")
	if err != nil {
		return time.Time{}, err
	}
	return inner.Time("time")
}

// SetRTCTime sets the clock's real-time clock. Time is written before date
// so that a day rollover between the two commands cannot leave the RTC a
// whole day off.
func (c *Client) SetRTCTime(t time.Time) error {
	if _, err := c.Run(t.Format("st15:04:05")); err != nil {
		return err
	}
	_, err := c.Run(t.Format("sd2006-01-02"))
	return err
}

// Status reads a composite snapshot of the clock's state.
func (c *Client) Status() (ClockStatus, error) {
	doc, err := c.Run("status")
	if err != nil {
		return ClockStatus{}, err
	}
	inner, err := doc.Map("status")
	if err != nil {
		return ClockStatus{}, err
	}
	return StatusFromDocument(inner)
}

// StateChanged polls for an asynchronous state change notification without
// blocking. It returns true at most once per notification.
func (c *Client) StateChanged() (bool, error) {
	return c.framer.PollNotification()
}

// Timer returns a handle to the countdown timer.
func (c *Client) Timer() *CountdownTimer {
	return &CountdownTimer{c: c}
}

// EEPROM returns a handle to the clock's EEPROM.
func (c *Client) EEPROM() *EEPROM {
	return &EEPROM{c: c}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
