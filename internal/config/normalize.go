// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package config

// Normalize applies defaults for optional fields.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Serial.Baudrate == 0 {
		cfg.Serial.Baudrate = 9600
	}

	if cfg.MQTT.Hostname == "" {
		cfg.MQTT.Hostname = "localhost"
	}
	if cfg.MQTT.Port == 0 {
		cfg.MQTT.Port = 1883
	}
	if cfg.MQTT.Topic == "" {
		cfg.MQTT.Topic = "alarmclock"
	}
}
