package config

import "fmt"

// ValidateConfig validates every section of the configuration
func ValidateConfig(config *Config) error {
	if err := config.Server.Validate(); err != nil {
		return fmt.Errorf("server validation failed: %w", err)
	}

	if err := config.Ledger.Validate(); err != nil {
		return fmt.Errorf("ledger validation failed: %w", err)
	}

	if err := config.Log.Validate(); err != nil {
		return fmt.Errorf("log validation failed: %w", err)
	}

	if err := config.Journal.Validate(); err != nil {
		return fmt.Errorf("journal validation failed: %w", err)
	}

	if err := config.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics validation failed: %w", err)
	}

	// The two listeners cannot share an address
	if config.Metrics.Enabled && config.Metrics.Address == config.Server.Address {
		return fmt.Errorf("metrics.address and server.address must differ, both are %s", config.Server.Address)
	}

	return nil
}
