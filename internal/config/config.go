package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
)

// DefaultPollInterval is the period between connectivity samples.
const DefaultPollInterval = 2 * time.Second

// Default channel names shared with the UI.
const (
	DefaultMethodChannel = "com.rabee.omran.network"
	DefaultEventChannel  = "com.rabee.omran.network/events"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Channels ChannelsConfig `yaml:"channels"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	AuthToken      string   `yaml:"auth_token"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// MaxConnections caps concurrent WebSocket clients. Zero is unlimited.
	MaxConnections int      `yaml:"max_connections"`
}

type MonitorConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	// Classifier selects the classifier backend: auto, interfaces or flags.
	Classifier string `yaml:"classifier"`
}

type ChannelsConfig struct {
	Method string `yaml:"method"`
	Events string `yaml:"events"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8787,
			Host:           "127.0.0.1",
			MaxConnections: 16,
		},
		Monitor: MonitorConfig{
			PollInterval: DefaultPollInterval,
			Classifier:   netstate.ModeAuto,
		},
		Channels: ChannelsConfig{
			Method: DefaultMethodChannel,
			Events: DefaultEventChannel,
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// Load reads a YAML config file. Fields missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultConfig(), nil
	}
	return cfg, err
}

func (c *Config) Validate() error {
	if c.Monitor.PollInterval <= 0 {
		return fmt.Errorf("monitor.poll_interval must be positive, got %v", c.Monitor.PollInterval)
	}
	switch netstate.ResolveMode(c.Monitor.Classifier) {
	case netstate.ModeInterfaces, netstate.ModeFlags:
	default:
		return fmt.Errorf("monitor.classifier: %w: %q", netstate.ErrUnknownMode, c.Monitor.Classifier)
	}
	if c.Channels.Method == "" || c.Channels.Events == "" {
		return errors.New("channels.method and channels.events must be set")
	}
	if c.Channels.Method == c.Channels.Events {
		return fmt.Errorf("channels.method and channels.events must differ, both are %q", c.Channels.Method)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.MaxConnections < 0 {
		return fmt.Errorf("server.max_connections must not be negative, got %d", c.Server.MaxConnections)
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
