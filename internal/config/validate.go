// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg.Serial.Device == "" {
		return fmt.Errorf("serial.device must be set")
	}

	if cfg.Serial.Baudrate < 0 {
		return fmt.Errorf("serial.baudrate must be positive, got %d", cfg.Serial.Baudrate)
	}

	if cfg.MQTT.Port < 0 || cfg.MQTT.Port > 65535 {
		return fmt.Errorf("mqtt.port out of range: %d", cfg.MQTT.Port)
	}

	if strings.HasSuffix(cfg.MQTT.Topic, "/") {
		return fmt.Errorf("mqtt.topic must not end with '/': %q", cfg.MQTT.Topic)
	}
	if strings.ContainsAny(cfg.MQTT.Topic, "#+") {
		return fmt.Errorf("mqtt.topic must not contain wildcards: %q", cfg.MQTT.Topic)
	}

	if cfg.MQTT.Password != "" && cfg.MQTT.Username == "" {
		return fmt.Errorf("mqtt.password is set but mqtt.username is empty")
	}

	return nil
}
