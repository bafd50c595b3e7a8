// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Publisher configuration: YAML file, defaults, validation and a
// thread-safe store with reload propagation.

package control

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/momentics/hioload-txtime/api"
	"github.com/momentics/hioload-txtime/cycle"
)

// GuardBandProfiles maps hardware profiles to their Qbv offset.
var GuardBandProfiles = map[string]time.Duration{
	"i5":   5 * time.Microsecond,
	"mbox": 25 * time.Microsecond,
}

// ChannelConfig describes the socket the CLI opens.
type ChannelConfig struct {
	Transport   string `yaml:"transport"`
	Interface   string `yaml:"interface"`
	Destination string `yaml:"destination"`
	EtherType   uint16 `yaml:"ethertype"`
	// Priority is the SO_PRIORITY mapped to the traffic class of the etf qdisc.
	Priority     int  `yaml:"priority"`
	DeadlineMode bool `yaml:"deadline_mode"`
}

// CycleConfig is the YAML form of cycle.Config.
type CycleConfig struct {
	Period    time.Duration `yaml:"period"`
	GuardBand time.Duration `yaml:"guard_band"`
	Profile   string        `yaml:"profile"`
}

// TxTimeConfig toggles scheduled release.
type TxTimeConfig struct {
	Enabled     bool `yaml:"enabled"`
	StrictDrops bool `yaml:"strict_drops"`
	History     int  `yaml:"history"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LoopConfig drives the CLI publish loop.
type LoopConfig struct {
	PayloadSize int `yaml:"payload_size"`
	// Count of frames to publish, zero runs until interrupted.
	Count uint64 `yaml:"count"`
	// CPU pins the publish thread, negative leaves it floating.
	CPU int `yaml:"cpu"`
}

// Config is the complete publisher configuration.
type Config struct {
	Channel ChannelConfig `yaml:"channel"`
	Cycle   CycleConfig   `yaml:"cycle"`
	TxTime  TxTimeConfig  `yaml:"txtime"`
	Log     LogConfig     `yaml:"log"`
	Loop    LoopConfig    `yaml:"loop"`
}

// DefaultConfig returns a raw Ethernet channel on a 250µs cycle.
func DefaultConfig() Config {
	return Config{
		Channel: ChannelConfig{
			Transport: api.TransportEthernet.String(),
			EtherType: api.EtherTypeUADP,
			Priority:  3,
		},
		Cycle: CycleConfig{
			Period:    cycle.DefaultPeriod,
			GuardBand: cycle.DefaultGuardBand,
		},
		TxTime: TxTimeConfig{
			Enabled: true,
			History: 64,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Loop: LoopConfig{
			PayloadSize: 64,
			CPU:         -1,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// CycleTiming resolves the guard band profile into cycle.Config.
func (c Config) CycleTiming() cycle.Config {
	out := cycle.Config{Period: c.Cycle.Period, GuardBand: c.Cycle.GuardBand}
	if gb, ok := GuardBandProfiles[c.Cycle.Profile]; ok {
		out.GuardBand = gb
	}
	return out
}

// TransportKind parses Channel.Transport.
func (c Config) TransportKind() (api.Transport, error) {
	return api.ParseTransport(c.Channel.Transport)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	invalid := func(field string, value any) error {
		return api.NewError(api.ErrCodeInvalidArgument, "config: invalid "+field).
			WithContext("value", value)
	}
	kind, err := c.TransportKind()
	if err != nil {
		return invalid("channel.transport", c.Channel.Transport)
	}
	if kind == api.TransportUDPMulticast && c.Channel.Destination == "" {
		return invalid("channel.destination", c.Channel.Destination)
	}
	if c.Cycle.Profile != "" {
		if _, ok := GuardBandProfiles[c.Cycle.Profile]; !ok {
			return invalid("cycle.profile", c.Cycle.Profile)
		}
	}
	if err := c.CycleTiming().Validate(); err != nil {
		return invalid("cycle", err.Error())
	}
	if c.TxTime.History < 0 {
		return invalid("txtime.history", c.TxTime.History)
	}
	if c.Loop.PayloadSize <= 0 {
		return invalid("loop.payload_size", c.Loop.PayloadSize)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("log.format", c.Log.Format)
	}
	return nil
}

// Store holds the active configuration and notifies listeners on change.
type Store struct {
	mu        sync.RWMutex
	config    Config
	listeners []func(Config)
}

// NewStore initializes a store with cfg.
func NewStore(cfg Config) *Store {
	return &Store{config: cfg}
}

// GetSnapshot returns the active configuration.
func (s *Store) GetSnapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig replaces the configuration and runs the reload listeners on the
// caller's goroutine.
func (s *Store) SetConfig(cfg Config) {
	s.mu.Lock()
	s.config = cfg
	listeners := make([]func(Config), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(cfg)
	}
}

// OnReload registers a listener hook called on config changes.
func (s *Store) OnReload(fn func(Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
