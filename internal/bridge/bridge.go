// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

// Package bridge exposes an alarm clock over MQTT: retained device state
// under <topic>/stat, commands under <topic>/cmnd, handler errors under
// <topic>/err.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/luminos-hw/chime/internal/config"
	"github.com/luminos-hw/chime/pkg/alarmclock"
)

// pollInterval is how often the serial link is polled for the out-of-band
// state change notification.
const pollInterval = 100 * time.Millisecond

type inbound struct {
	command string
	payload string
}

// Bridge couples one alarm clock to one MQTT broker. All device access
// happens on the Run goroutine; MQTT callbacks only enqueue work.
type Bridge struct {
	cfg  *config.Config
	ac   *alarmclock.Client
	mqtt mqtt.Client

	queue chan inbound
}

func New(cfg *config.Config) *Bridge {
	return &Bridge{
		cfg:   cfg,
		queue: make(chan inbound, 16),
	}
}

// Run connects to the device and the broker and serves until ctx is
// cancelled. The broker sees `offline` on <topic>/stat/available when the
// bridge exits or dies.
func (b *Bridge) Run(ctx context.Context) error {
	ac, err := alarmclock.Open(b.cfg.Serial.Device, b.cfg.Serial.Baudrate)
	if err != nil {
		return fmt.Errorf("open alarm clock: %w", err)
	}
	defer ac.Close()
	b.ac = ac

	log.WithFields(log.Fields{
		"state":   b.cfg.MQTT.StateTopic(),
		"command": b.cfg.MQTT.CommandTopic(),
		"err":     b.cfg.MQTT.ErrTopic(),
	}).Info("bridge topics")

	opts := mqtt.NewClientOptions()
	opts.AddBroker(b.cfg.MQTT.BrokerURL())
	opts.SetClientID("chime-bridge")
	if b.cfg.MQTT.Username != "" {
		opts.SetUsername(b.cfg.MQTT.Username)
		opts.SetPassword(b.cfg.MQTT.Password)
	}
	opts.SetWill(b.availabilityTopic(), "offline", 0, true)
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		log.Info("MQTT connected")
		c.Subscribe(b.cfg.MQTT.CommandTopic()+"/#", 0, b.onMessage)
		// Device access must happen on the Run goroutine
		b.enqueue(inbound{command: "@connect"})
	})
	opts.SetConnectionLostHandler(func(c mqtt.Client, err error) {
		log.WithError(err).Error("MQTT connection lost")
	})

	b.mqtt = mqtt.NewClient(opts)
	log.WithField("broker", b.cfg.MQTT.BrokerURL()).Info("connecting to MQTT")
	if token := b.mqtt.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect to MQTT: %w", token.Error())
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.publish(b.availabilityTopic(), "offline", true)
			b.mqtt.Disconnect(250)
			return ctx.Err()
		case msg := <-b.queue:
			b.dispatch(msg)
		case <-ticker.C:
			changed, err := ac.StateChanged()
			if err != nil {
				return fmt.Errorf("poll device: %w", err)
			}
			if changed {
				b.reportStatus(false)
			}
		}
	}
}

func (b *Bridge) availabilityTopic() string {
	return b.cfg.MQTT.StateTopic() + "/available"
}

func (b *Bridge) enqueue(msg inbound) {
	select {
	case b.queue <- msg:
	default:
		log.WithField("command", msg.command).Error("command queue full, dropping")
	}
}

func (b *Bridge) onMessage(c mqtt.Client, msg mqtt.Message) {
	log.WithFields(log.Fields{
		"topic":   msg.Topic(),
		"payload": string(msg.Payload()),
	}).Debug("MQTT message")

	command := strings.TrimPrefix(msg.Topic(), b.cfg.MQTT.CommandTopic()+"/")
	b.enqueue(inbound{command: command, payload: string(msg.Payload())})
}

func (b *Bridge) dispatch(msg inbound) {
	if msg.command == "@connect" {
		b.publish(b.availabilityTopic(), "online", true)
		b.publish(b.cfg.MQTT.StateTopic()+"/number_of_alarms",
			strconv.Itoa(b.ac.NumberOfAlarms()), true)
		b.reportStatus(true)
		return
	}

	handler, ok := handlers[msg.command]
	if !ok {
		b.publishError(fmt.Sprintf("bad topic for command: %s", msg.command))
		return
	}
	pubs, err := handler(b, msg.payload)
	if err != nil {
		b.publishError(fmt.Sprintf("command %s failed: %v", msg.command, err))
		return
	}
	for _, pub := range pubs {
		b.publish(b.cfg.MQTT.StateTopic()+"/"+pub.topic, pub.payload, pub.retain)
	}
}

// reportStatus publishes the retained state tree. Alarms are republished
// only when the device flags a configuration change, or on (re)connect so
// the retained values are never stale.
func (b *Bridge) reportStatus(onconnect bool) {
	status, err := b.ac.Status()
	if err != nil {
		b.publishError(fmt.Sprintf("status poll failed: %v", err))
		return
	}

	state := b.cfg.MQTT.StateTopic()
	b.publish(state+"/ambient", strconv.Itoa(status.Ambient.Target), true)
	b.publish(state+"/lamp", onOff(status.Lamp), true)
	b.publish(state+"/inhibit", onOff(status.Inhibit), true)
	b.publish(state+"/display_backlight", status.Backlight.String(), true)
	b.publish(state+"/active_alarm_ids", intListJSON(status.ActiveAlarms), true)
	b.publish(state+"/alarm_with_active_ambient_ids", intListJSON(status.AmbientAlarms), true)

	if status.AlarmsChanged || onconnect {
		pubs, err := handleAlarms(b, "")
		if err != nil {
			b.publishError(fmt.Sprintf("alarm poll failed: %v", err))
			return
		}
		for _, pub := range pubs {
			b.publish(state+"/"+pub.topic, pub.payload, pub.retain)
		}
	}
}

func (b *Bridge) publish(topic, payload string, retain bool) {
	token := b.mqtt.Publish(topic, 0, retain, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		log.WithError(err).WithField("topic", topic).Error("MQTT publish failed")
	}
}

func (b *Bridge) publishError(text string) {
	log.Error(text)
	b.publish(b.cfg.MQTT.ErrTopic(), text, false)
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func intListJSON(ids []int) string {
	data, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(data)
}
