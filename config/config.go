// Package config provides configuration parsing for lcd-pulse.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/lcd-pulse/display"
	"gitlab.com/tinyland/lab/lcd-pulse/serial"
)

// Config represents the lcd-pulse daemon configuration.
type Config struct {
	// Serial holds the serial link settings.
	Serial SerialConfig `yaml:"serial"`

	// Schedule holds transmission timing and frame ordering.
	Schedule ScheduleConfig `yaml:"schedule"`

	// Sensors names the hwmon chips shown on the temperature frame.
	Sensors SensorsConfig `yaml:"sensors"`

	// LogFile is the path for daemon log output. Empty logs to stderr.
	LogFile string `yaml:"log_file"`
}

// SerialConfig holds the serial link settings.
type SerialConfig struct {
	// Device is the serial device path, e.g. /dev/ttyACM0.
	Device string `yaml:"device"`
	// Baud is the line rate. The receiving device must be configured to match.
	Baud int `yaml:"baud"`
}

// ScheduleConfig holds transmission timing and frame ordering.
type ScheduleConfig struct {
	// WarmUp is a duration string (e.g. "6s") the scheduler waits after
	// opening the serial link before the first transmission, giving the
	// receiving device time to initialize.
	WarmUp string `yaml:"warm_up"`
	// Dwell is a duration string (e.g. "3s") between consecutive frames.
	Dwell string `yaml:"dwell"`
	// Frames is the ordered list of frame types to cycle through.
	// Duplicates are allowed; a frame may appear more than once per cycle.
	Frames []string `yaml:"frames"`
}

// SensorsConfig names the temperature sensors. Use the -sensors diagnostic
// to list the chips available on a host.
type SensorsConfig struct {
	// CPU is the hwmon chip name for the CPU temperature row.
	CPU string `yaml:"cpu"`
	// Mobo is the hwmon chip name for the mainboard temperature row.
	Mobo string `yaml:"mobo"`
}

// DefaultConfig returns the reference configuration: an Arduino on
// /dev/ttyACM0 at 9600 baud, six second warm-up, three second dwell, all
// five frames in the reference order.
func DefaultConfig() *Config {
	return &Config{
		Serial: SerialConfig{
			Device: "/dev/ttyACM0",
			Baud:   9600,
		},
		Schedule: ScheduleConfig{
			WarmUp: "6s",
			Dwell:  "3s",
			Frames: append([]string(nil), display.FrameNames...),
		},
		Sensors: SensorsConfig{
			CPU:  "k10temp",
			Mobo: "thinkpad",
		},
	}
}

// Load reads a YAML configuration file over the defaults. A missing path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects invalid configuration before the scheduler starts.
func (c *Config) Validate() error {
	if c.Serial.Device == "" {
		return fmt.Errorf("config: serial.device must not be empty")
	}
	if !serial.SupportedBaud(c.Serial.Baud) {
		return fmt.Errorf("config: unsupported baud rate %d (supported: %v)",
			c.Serial.Baud, serial.SupportedBauds())
	}

	warmUp, err := c.WarmUp()
	if err != nil {
		return err
	}
	if warmUp < 0 {
		return fmt.Errorf("config: schedule.warm_up must not be negative")
	}

	dwell, err := c.Dwell()
	if err != nil {
		return err
	}
	if dwell <= 0 {
		return fmt.Errorf("config: schedule.dwell must be positive")
	}

	if len(c.Schedule.Frames) == 0 {
		return fmt.Errorf("config: schedule.frames must not be empty")
	}
	for _, name := range c.Schedule.Frames {
		if !display.KnownFrame(name) {
			return fmt.Errorf("config: unknown frame type %q (known: %v)", name, display.FrameNames)
		}
	}

	if c.Sensors.CPU == "" {
		return fmt.Errorf("config: sensors.cpu must not be empty")
	}
	if c.Sensors.Mobo == "" {
		return fmt.Errorf("config: sensors.mobo must not be empty")
	}

	return nil
}

// WarmUp parses the warm-up duration string.
func (c *Config) WarmUp() (time.Duration, error) {
	d, err := time.ParseDuration(c.Schedule.WarmUp)
	if err != nil {
		return 0, fmt.Errorf("config: parse schedule.warm_up: %w", err)
	}
	return d, nil
}

// Dwell parses the dwell duration string.
func (c *Config) Dwell() (time.Duration, error) {
	d, err := time.ParseDuration(c.Schedule.Dwell)
	if err != nil {
		return 0, fmt.Errorf("config: parse schedule.dwell: %w", err)
	}
	return d, nil
}
