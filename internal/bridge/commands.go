// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package bridge

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/luminos-hw/chime/pkg/alarmclock"
)

// publication is one message for the state topic tree. Topic is relative to
// the configured state topic.
type publication struct {
	topic   string
	payload string
	retain  bool
}

// handlerFunc processes one inbound command payload and returns the state
// updates it produced. Handlers run on the bridge loop goroutine, which is
// the only goroutine allowed to touch the serial connection.
type handlerFunc func(b *Bridge, msg string) ([]publication, error)

// handlers maps the topic suffix under the command topic to its handler.
var handlers = map[string]handlerFunc{
	"ambient":     handleAmbient,
	"lamp":        switchHandler("lamp", (*alarmclock.Client).SetLamp),
	"inhibit":     switchHandler("inhibit", (*alarmclock.Client).SetInhibit),
	"rtc":         handleRTC,
	"timer":       handleTimer,
	"alarm":       handleAlarm,
	"alarms":      handleAlarms,
	"alarm/write": handleAlarmWrite,
	"button/stop": handleStop,
	"run_command": handleRunCommand,
}

// switchHandler builds a handler for an ON/OFF attribute. Queries are
// no-ops; the state arrives through the regular status report.
func switchHandler(name string, set func(*alarmclock.Client, bool) error) handlerFunc {
	return func(b *Bridge, msg string) ([]publication, error) {
		switch strings.ToUpper(msg) {
		case "ON":
			return nil, set(b.ac, true)
		case "OFF":
			return nil, set(b.ac, false)
		case "", "?":
			return nil, nil
		default:
			return nil, fmt.Errorf("invalid payload for %s: %q", name, msg)
		}
	}
}

// handleAmbient is the switch handler extended with dimming: a bare number
// sets the target directly, ON means full brightness.
func handleAmbient(b *Bridge, msg string) ([]publication, error) {
	switch strings.ToUpper(msg) {
	case "ON":
		return nil, b.ac.SetAmbientTarget(255)
	case "OFF":
		return nil, b.ac.SetAmbientTarget(0)
	case "", "?":
		return nil, nil
	}
	value, err := strconv.Atoi(msg)
	if err != nil {
		return nil, fmt.Errorf("invalid payload for ambient: %q", msg)
	}
	return nil, b.ac.SetAmbientTarget(value)
}

func handleRTC(b *Bridge, msg string) ([]publication, error) {
	if msg == "" || msg == "?" {
		t, err := b.ac.RTCTime()
		if err != nil {
			return nil, err
		}
		return []publication{{topic: "rtc", payload: t.Format(time.RFC3339)}}, nil
	}

	t, err := time.ParseInLocation(time.RFC3339, msg, time.Local)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02T15:04:05", msg, time.Local)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid payload for rtc: %q", msg)
	}
	return nil, b.ac.SetRTCTime(t)
}

func handleTimer(b *Bridge, msg string) ([]publication, error) {
	timer := b.ac.Timer()

	switch strings.ToUpper(msg) {
	case "START":
		if err := timer.Start(); err != nil {
			return nil, err
		}
	case "STOP":
		if err := timer.Stop(); err != nil {
			return nil, err
		}
	case "", "?":
		// query only
	default:
		var cmd timerCommandJSON
		if err := json.Unmarshal([]byte(msg), &cmd); err != nil {
			return nil, fmt.Errorf("invalid payload for timer: %q", msg)
		}
		if cmd.Events != nil {
			events := alarmclock.Signalization{
				Ambient: cmd.Events.Ambient,
				Lamp:    cmd.Events.Lamp,
				Buzzer:  cmd.Events.Buzzer,
			}
			if err := timer.SetEvents(events); err != nil {
				return nil, err
			}
		}
		if cmd.Time != nil {
			d, err := alarmclock.ParseDuration(*cmd.Time)
			if err != nil {
				return nil, err
			}
			if err := timer.SetTime(d); err != nil {
				return nil, err
			}
		}
		if cmd.Running != nil {
			if err := timer.SetRunning(*cmd.Running); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	info, err := timer.Get()
	if err != nil {
		return nil, err
	}
	payload, err := marshalTimer(info)
	if err != nil {
		return nil, err
	}
	return []publication{{topic: "timer", payload: string(payload)}}, nil
}

func handleAlarm(b *Bridge, msg string) ([]publication, error) {
	index, err := strconv.Atoi(strings.TrimSpace(msg))
	if err != nil {
		return nil, fmt.Errorf("invalid payload for alarm: %q", msg)
	}
	alarm, err := b.ac.ReadAlarm(index)
	if err != nil {
		return nil, err
	}
	payload, err := marshalAlarm(alarm)
	if err != nil {
		return nil, err
	}
	return []publication{{
		topic:   fmt.Sprintf("alarms/alarm%d", index),
		payload: string(payload),
	}}, nil
}

// handleAlarms publishes every alarm. The results are retained so consumers
// joining later still see the configuration.
func handleAlarms(b *Bridge, msg string) ([]publication, error) {
	alarms, err := b.ac.ReadAlarms()
	if err != nil {
		return nil, err
	}
	pubs := make([]publication, 0, len(alarms))
	for index, alarm := range alarms {
		payload, err := marshalAlarm(alarm)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, publication{
			topic:   fmt.Sprintf("alarms/alarm%d", index),
			payload: string(payload),
			retain:  true,
		})
	}
	return pubs, nil
}

func handleAlarmWrite(b *Bridge, msg string) ([]publication, error) {
	index, alarm, err := unmarshalAlarmWrite([]byte(msg))
	if err != nil {
		return nil, err
	}
	if err := b.ac.WriteAlarm(index, alarm); err != nil {
		return nil, err
	}
	if err := b.ac.Save(); err != nil {
		// Writing an identical alarm leaves nothing to save
		if !alarmclock.IsCode(err, alarmclock.CodeUselessSave) {
			return nil, err
		}
		log.Debug("nothing to save after alarm write")
	}
	return nil, nil
}

func handleStop(b *Bridge, msg string) ([]publication, error) {
	if strings.ToUpper(msg) != "STOP" {
		return nil, fmt.Errorf("invalid payload for stop: %q", msg)
	}
	return nil, b.ac.PressStop()
}

// handleRunCommand executes a raw device command and republishes its
// structured output as JSON.
func handleRunCommand(b *Bridge, msg string) ([]publication, error) {
	doc, err := b.ac.Run(msg)
	if err != nil {
		return nil, err
	}
	payload := []byte("null")
	if doc != nil {
		if payload, err = json.Marshal(doc.Raw()); err != nil {
			return nil, err
		}
	}
	return []publication{{topic: "run_command", payload: string(payload)}}, nil
}
