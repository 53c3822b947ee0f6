// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package config

import "testing"

// helper to build a minimal valid config quickly
func valid() *Config {
	return &Config{
		Serial: SerialConfig{Device: "/dev/ttyUSB0", Baudrate: 9600},
		MQTT: MQTTConfig{
			Hostname: "localhost",
			Port:     1883,
			Topic:    "alarmclock",
		},
	}
}

// ---- tests ----

func TestValidate_Valid(t *testing.T) {
	if err := Validate(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingDevice(t *testing.T) {
	cfg := valid()
	cfg.Serial.Device = ""

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for missing serial.device")
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := valid()
	cfg.MQTT.Port = 70000

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for out-of-range mqtt.port")
	}
}

func TestValidate_TopicTrailingSlash(t *testing.T) {
	cfg := valid()
	cfg.MQTT.Topic = "alarmclock/"

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for trailing slash in mqtt.topic")
	}
}

func TestValidate_TopicWildcard(t *testing.T) {
	cfg := valid()
	cfg.MQTT.Topic = "alarmclock/#"

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for wildcard in mqtt.topic")
	}
}

func TestValidate_PasswordWithoutUsername(t *testing.T) {
	cfg := valid()
	cfg.MQTT.Password = "hunter2"

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for password without username")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := &Config{
		Serial: SerialConfig{Device: "/dev/ttyUSB0"},
	}
	Normalize(cfg)

	if cfg.Serial.Baudrate != 9600 {
		t.Errorf("expected default baudrate 9600, got %d", cfg.Serial.Baudrate)
	}
	if cfg.MQTT.Hostname != "localhost" || cfg.MQTT.Port != 1883 {
		t.Errorf("expected default broker localhost:1883, got %s:%d",
			cfg.MQTT.Hostname, cfg.MQTT.Port)
	}
	if cfg.MQTT.Topic != "alarmclock" {
		t.Errorf("expected default topic alarmclock, got %q", cfg.MQTT.Topic)
	}
}

func TestTopicDerivation(t *testing.T) {
	m := MQTTConfig{Hostname: "broker", Port: 1883, Topic: "bedroom/clock"}
	if got := m.StateTopic(); got != "bedroom/clock/stat" {
		t.Errorf("StateTopic mismatch: %q", got)
	}
	if got := m.CommandTopic(); got != "bedroom/clock/cmnd" {
		t.Errorf("CommandTopic mismatch: %q", got)
	}
	if got := m.ErrTopic(); got != "bedroom/clock/err" {
		t.Errorf("ErrTopic mismatch: %q", got)
	}
	if got := m.BrokerURL(); got != "tcp://broker:1883" {
		t.Errorf("BrokerURL mismatch: %q", got)
	}
}
