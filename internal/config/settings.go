package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings are the user-tunable values. Everything else stays a constant.
// Durations in YAML take a unit, as in "2.5s".
type Settings struct {
	BaudRate         int           `yaml:"baud_rate"`
	Signature        string        `yaml:"signature"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	MaxRangeCm       int           `yaml:"max_range_cm"`
	SweepSpeedDeg    float64       `yaml:"sweep_speed_deg"`
	LogFile          string        `yaml:"log_file"`
	Verbose          bool          `yaml:"verbose"`
}

// Defaults returns the settings used when no file or flag overrides them.
func Defaults() Settings {
	return Settings{
		BaudRate:         BaudRate,
		Signature:        Signature,
		HandshakeTimeout: HandshakeTimeout,
		MaxRangeCm:       MaxRangeCm,
		SweepSpeedDeg:    SweepSpeedDeg,
	}
}

// Load reads a YAML settings file on top of Defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, s.Validate()
}

// Validate checks that the settings can drive a session.
func (s Settings) Validate() error {
	var errs []error
	if s.BaudRate <= 0 {
		errs = append(errs, fmt.Errorf("invalid baud rate %d", s.BaudRate))
	}
	if strings.TrimSpace(s.Signature) == "" {
		errs = append(errs, errors.New("signature must not be empty"))
	}
	if s.HandshakeTimeout < MinHandshakeTimeout {
		errs = append(errs, fmt.Errorf("handshake timeout %s is below %s (durations need a unit, e.g. 2.5s)",
			s.HandshakeTimeout, MinHandshakeTimeout))
	}
	if s.MaxRangeCm <= 0 {
		errs = append(errs, fmt.Errorf("invalid max range %dcm", s.MaxRangeCm))
	}
	if s.SweepSpeedDeg == 0 {
		errs = append(errs, errors.New("sweep speed must be non-zero"))
	}
	return errors.Join(errs...)
}
