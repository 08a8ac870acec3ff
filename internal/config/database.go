package config

import (
	"github.com/LeJamon/goXRPLGateway/internal/journal"
)

// JournalConfig represents the [journal] section
// Where submitted transactions and their outcomes are recorded
type JournalConfig struct {
	// Driver is one of none, pebble, leveldb, sqlite, postgres
	Driver string `toml:"driver" mapstructure:"driver"`
	Path   string `toml:"path" mapstructure:"path"`
}

// Validate performs validation on the journal configuration
func (j *JournalConfig) Validate() error {
	return j.Store().Validate()
}

// Store converts the section to the journal's configuration
func (j *JournalConfig) Store() journal.Config {
	return journal.Config{Driver: j.Driver, Path: j.Path}
}
