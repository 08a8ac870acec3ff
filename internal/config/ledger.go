package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/LeJamon/goXRPLGateway/internal/crypto"
	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
)

// LedgerConfig represents the [ledger] section
// How the gateway reaches rippled and fills in transaction defaults
type LedgerConfig struct {
	URL              string        `toml:"url" mapstructure:"url"`
	RequestTimeout   time.Duration `toml:"request_timeout" mapstructure:"request_timeout"`
	HandshakeTimeout time.Duration `toml:"handshake_timeout" mapstructure:"handshake_timeout"`

	FeeCushion             float64 `toml:"fee_cushion" mapstructure:"fee_cushion"`
	MaxFeeXRP              string  `toml:"max_fee_xrp" mapstructure:"max_fee_xrp"`
	MaxFeeDrops            uint64  `toml:"max_fee_drops" mapstructure:"max_fee_drops"`
	MaxLedgerVersionOffset uint32  `toml:"max_ledger_version_offset" mapstructure:"max_ledger_version_offset"`

	TxCacheSize    int `toml:"tx_cache_size" mapstructure:"tx_cache_size"`
	EventQueueSize int `toml:"event_queue_size" mapstructure:"event_queue_size"`

	// Address generation
	TestNetwork  bool   `toml:"test_network" mapstructure:"test_network"`
	KeyAlgorithm string `toml:"key_algorithm" mapstructure:"key_algorithm"`

	// How often the connection state is sampled, and how long to wait
	// between reconnection attempts.
	ConnectionCheckInterval time.Duration `toml:"connection_check_interval" mapstructure:"connection_check_interval"`
}

// Validate performs validation on the ledger configuration
func (l *LedgerConfig) Validate() error {
	u, err := url.Parse(l.URL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", l.URL, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("url must use ws or wss, got %q", l.URL)
	}
	if l.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", l.RequestTimeout)
	}
	if l.FeeCushion < 1 {
		return fmt.Errorf("fee_cushion must be at least 1, got %v", l.FeeCushion)
	}
	if _, err := ledgerclient.XRPToDrops(l.MaxFeeXRP); err != nil {
		return fmt.Errorf("invalid max_fee_xrp: %w", err)
	}
	if l.MaxLedgerVersionOffset == 0 {
		return fmt.Errorf("max_ledger_version_offset must be positive")
	}
	if l.TxCacheSize < 0 || l.EventQueueSize < 0 {
		return fmt.Errorf("tx_cache_size and event_queue_size must not be negative")
	}
	if _, err := crypto.ParseKeyType(l.KeyAlgorithm); err != nil {
		return fmt.Errorf("invalid key_algorithm: %w", err)
	}
	if l.ConnectionCheckInterval <= 0 {
		return fmt.Errorf("connection_check_interval must be positive, got %s", l.ConnectionCheckInterval)
	}
	return nil
}

// Client converts the section to the ledger client's configuration
func (l *LedgerConfig) Client() ledgerclient.Config {
	return ledgerclient.Config{
		URL:                    l.URL,
		RequestTimeout:         l.RequestTimeout,
		HandshakeTimeout:       l.HandshakeTimeout,
		FeeCushion:             l.FeeCushion,
		MaxFeeXRP:              l.MaxFeeXRP,
		MaxLedgerVersionOffset: l.MaxLedgerVersionOffset,
		MaxFeeDrops:            l.MaxFeeDrops,
		TxCacheSize:            l.TxCacheSize,
		EventQueueSize:         l.EventQueueSize,
	}
}

// Algorithm returns the configured key algorithm. Call after Validate.
func (l *LedgerConfig) Algorithm() crypto.KeyType {
	kt, err := crypto.ParseKeyType(l.KeyAlgorithm)
	if err != nil {
		return crypto.KeyTypeSecp256k1
	}
	return kt
}
