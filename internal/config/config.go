// Package config loads the gateway configuration from defaults, an optional
// TOML or YAML file, and XRPLGW_ environment variables.
package config

// Config represents the complete gateway configuration
type Config struct {
	// gRPC listener
	Server ServerConfig `toml:"server" mapstructure:"server"`

	// rippled connection and transaction preparation
	Ledger LedgerConfig `toml:"ledger" mapstructure:"ledger"`

	Log     LogConfig     `toml:"log" mapstructure:"log"`
	Journal JournalConfig `toml:"journal" mapstructure:"journal"`
	Metrics MetricsConfig `toml:"metrics" mapstructure:"metrics"`

	// Internal fields for configuration management
	configPath string `toml:"-" mapstructure:"-"`
}

// GetConfigPath returns the path of the file the configuration was read
// from, or "" when only defaults and environment were used.
func (c *Config) GetConfigPath() string {
	return c.configPath
}
