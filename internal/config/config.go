package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for joystickd.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Device   DeviceConfig   `yaml:"device"`
	Joystick JoystickConfig `yaml:"joystick"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DeviceConfig selects the joystick device and the two axes to read.
type DeviceConfig struct {
	// Path is the js device node, e.g. /dev/input/js0.
	Path string `yaml:"path"`

	// AxisX and AxisY are device axis numbers.
	AxisX int `yaml:"axis_x"`
	AxisY int `yaml:"axis_y"`

	// ReadyTimeout bounds the wait for the initial axis state.
	ReadyTimeout time.Duration `yaml:"ready_timeout"`
}

// JoystickConfig holds the settings fanned out to both axes, plus optional
// per-axis overrides.
type JoystickConfig struct {
	ID           string        `yaml:"id"`
	UserID       uint          `yaml:"user_id"`
	PollInterval time.Duration `yaml:"poll_interval"`
	QueueSize    int           `yaml:"queue_size"`

	AxisConfig `yaml:",inline"`

	X AxisConfig `yaml:"x"`
	Y AxisConfig `yaml:"y"`
}

// AxisConfig holds axis settings. Nil fields are left unchanged.
type AxisConfig struct {
	Increments         *uint8         `yaml:"increments,omitempty"`
	NegativeIncrements *uint8         `yaml:"negative_increments,omitempty"`
	PositiveIncrements *uint8         `yaml:"positive_increments,omitempty"`
	CentreBoundary     *uint16        `yaml:"centre_boundary,omitempty"`
	OuterBoundary      *uint16        `yaml:"outer_boundary,omitempty"`
	IdleTimeout        *time.Duration `yaml:"idle_timeout,omitempty"`
	RateLimit          *time.Duration `yaml:"rate_limit,omitempty"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled     bool                `yaml:"enabled"`
	Broker      MQTTBrokerConfig    `yaml:"broker"`
	Auth        MQTTAuthConfig      `yaml:"auth"`
	QoS         int                 `yaml:"qos"`
	TopicPrefix string              `yaml:"topic_prefix"`
	Reconnect   MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings in seconds.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: JOYSTICKD_SECTION_KEY
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config with sensible defaults. It is also what joystickd
// runs with when no config file is given.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Path:         "/dev/input/js0",
			AxisX:        0,
			AxisY:        1,
			ReadyTimeout: 2 * time.Second,
		},
		Joystick: JoystickConfig{
			ID:           "joystick-0",
			PollInterval: 10 * time.Millisecond,
			QueueSize:    64,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "joystickd",
			},
			QoS:         1,
			TopicPrefix: "joystick",
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		InfluxDB: InfluxDBConfig{
			Bucket:        "joystick",
			BatchSize:     100,
			FlushInterval: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JOYSTICKD_DEVICE_PATH"); v != "" {
		cfg.Device.Path = v
	}
	if v := os.Getenv("JOYSTICKD_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("JOYSTICKD_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("JOYSTICKD_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}
	if v := os.Getenv("JOYSTICKD_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Device.Path == "" {
		errs = append(errs, "device.path is required")
	}
	if c.Device.AxisX < 0 || c.Device.AxisY < 0 {
		errs = append(errs, "device axes must not be negative")
	}
	if c.Device.AxisX == c.Device.AxisY {
		errs = append(errs, "device.axis_x and device.axis_y must differ")
	}

	if c.Joystick.ID == "" {
		errs = append(errs, "joystick.id is required")
	}
	if c.Joystick.PollInterval <= 0 {
		errs = append(errs, "joystick.poll_interval must be positive")
	}
	if c.Joystick.QueueSize <= 0 {
		errs = append(errs, "joystick.queue_size must be positive")
	}

	if c.MQTT.Enabled {
		if c.MQTT.Broker.Host == "" {
			errs = append(errs, "mqtt.broker.host is required")
		}
		if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
			errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
		}
		if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
			errs = append(errs, "mqtt.qos must be 0, 1, or 2")
		}
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required")
		}
		if c.InfluxDB.Org == "" || c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.org and influxdb.bucket are required")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
