package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goXRPLGateway/internal/crypto"
	"github.com/LeJamon/goXRPLGateway/internal/journal"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "", config.GetConfigPath())
	assert.Equal(t, "127.0.0.1:50051", config.Server.Address)
	assert.True(t, config.Server.HealthService)
	assert.Equal(t, 20*time.Second, config.Ledger.RequestTimeout)
	assert.Equal(t, 1.2, config.Ledger.FeeCushion)
	assert.Equal(t, "2", config.Ledger.MaxFeeXRP)
	assert.Equal(t, uint32(3), config.Ledger.MaxLedgerVersionOffset)
	assert.Equal(t, crypto.KeyTypeSecp256k1, config.Ledger.Algorithm())
	assert.Equal(t, "none", config.Journal.Driver)
	assert.True(t, config.Metrics.Enabled)
}

func TestLoadConfigFile(t *testing.T) {
	tempDir := t.TempDir()

	content := `
[server]
address = "0.0.0.0:6000"

[ledger]
url = "ws://localhost:6006"
request_timeout = "5s"
max_ledger_version_offset = 10
test_network = true
key_algorithm = "ed25519"

[log]
level = "debug"
format = "json"

[journal]
driver = "pebble"
path = "/var/lib/xrplgw/journal"

[metrics]
enabled = false
`
	path := filepath.Join(tempDir, "xrplgw.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, path, config.GetConfigPath())
	assert.Equal(t, "0.0.0.0:6000", config.Server.Address)
	assert.Equal(t, 4*1024*1024, config.Server.MaxRecvMsgSize)

	client := config.Ledger.Client()
	assert.Equal(t, "ws://localhost:6006", client.URL)
	assert.Equal(t, 5*time.Second, client.RequestTimeout)
	assert.Equal(t, uint32(10), client.MaxLedgerVersionOffset)
	assert.Equal(t, "2", client.MaxFeeXRP)
	assert.True(t, config.Ledger.TestNetwork)
	assert.Equal(t, crypto.KeyTypeEd25519, config.Ledger.Algorithm())

	assert.Equal(t, "debug", config.Log.Logger().Level)
	assert.Equal(t, journal.Config{Driver: journal.DriverPebble, Path: "/var/lib/xrplgw/journal"}, config.Journal.Store())
	assert.False(t, config.Metrics.Enabled)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("XRPLGW_LEDGER_URL", "wss://xrplcluster.com")
	t.Setenv("XRPLGW_SERVER_ADDRESS", "127.0.0.1:7000")
	t.Setenv("XRPLGW_LOG_LEVEL", "warn")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "wss://xrplcluster.com", config.Ledger.URL)
	assert.Equal(t, "127.0.0.1:7000", config.Server.GRPC().Address)
	assert.Equal(t, "warn", config.Log.Level)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"server address", func(c *Config) { c.Server.Address = "nowhere" }, "server validation failed"},
		{"ledger scheme", func(c *Config) { c.Ledger.URL = "http://localhost:5005" }, "url must use ws or wss"},
		{"fee cushion", func(c *Config) { c.Ledger.FeeCushion = 0.5 }, "fee_cushion"},
		{"max fee", func(c *Config) { c.Ledger.MaxFeeXRP = "lots" }, "invalid max_fee_xrp"},
		{"key algorithm", func(c *Config) { c.Ledger.KeyAlgorithm = "rsa" }, "invalid key_algorithm"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log validation failed"},
		{"journal path", func(c *Config) { c.Journal.Driver = "sqlite" }, "path is required"},
		{"metrics address", func(c *Config) { c.Metrics.Address = "" }, "metrics validation failed"},
		{"metrics disabled", func(c *Config) { c.Metrics.Enabled = false; c.Metrics.Address = "" }, ""},
		{"shared address", func(c *Config) { c.Metrics.Address = c.Server.Address }, "must differ"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config, err := LoadConfig("")
			require.NoError(t, err)
			tc.mutate(config)

			err = ValidateConfig(config)
			if tc.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestSaveExampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.toml")
	require.NoError(t, SaveExampleConfig(path))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:50051", config.Server.Address)
	assert.Equal(t, 20*time.Second, config.Ledger.RequestTimeout)
}
