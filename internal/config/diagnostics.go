package config

import (
	"fmt"
	"net"

	"github.com/LeJamon/goXRPLGateway/internal/log"
)

// LogConfig represents the [log] section
type LogConfig struct {
	Level      string `toml:"level" mapstructure:"level"`
	Format     string `toml:"format" mapstructure:"format"`
	Console    bool   `toml:"console" mapstructure:"console"`
	File       string `toml:"file" mapstructure:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `toml:"compress" mapstructure:"compress"`
}

// MetricsConfig represents the [metrics] section
// Prometheus metrics and the HTTP health check
type MetricsConfig struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled"`
	Address string `toml:"address" mapstructure:"address"`
}

// Validate performs validation on the log configuration
func (l *LogConfig) Validate() error {
	return l.Logger().Validate()
}

// Logger converts the section to the logger's configuration
func (l *LogConfig) Logger() log.Config {
	return log.Config{
		Level:      l.Level,
		Format:     l.Format,
		Console:    l.Console,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	}
}

// Validate performs validation on the metrics configuration
func (m *MetricsConfig) Validate() error {
	if !m.Enabled {
		// Metrics server disabled
		return nil
	}
	if !isValidAddressPort(m.Address) {
		return fmt.Errorf("invalid address format: %s (expected format: host:port)", m.Address)
	}
	return nil
}

// isValidAddressPort checks for a host:port pair. The host may be empty to
// listen on all interfaces.
func isValidAddressPort(addr string) bool {
	if addr == "" {
		return false
	}
	_, port, err := net.SplitHostPort(addr)
	return err == nil && port != ""
}
