package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults registers every key so environment overrides apply even
// when the file does not mention it.
func setDefaults(v *viper.Viper) {
	// [server]
	v.SetDefault("server.address", "127.0.0.1:50051")
	v.SetDefault("server.max_recv_msg_size", 4*1024*1024)
	v.SetDefault("server.max_send_msg_size", 4*1024*1024)
	v.SetDefault("server.max_concurrent_streams", 0)
	v.SetDefault("server.keepalive_time", time.Minute)
	v.SetDefault("server.health_service", true)

	// [ledger]
	v.SetDefault("ledger.url", "wss://s.altnet.rippletest.net:51233")
	v.SetDefault("ledger.request_timeout", 20*time.Second)
	v.SetDefault("ledger.handshake_timeout", 10*time.Second)
	v.SetDefault("ledger.fee_cushion", 1.2)
	v.SetDefault("ledger.max_fee_xrp", "2")
	v.SetDefault("ledger.max_fee_drops", 2_000_000)
	v.SetDefault("ledger.max_ledger_version_offset", 3)
	v.SetDefault("ledger.tx_cache_size", 1024)
	v.SetDefault("ledger.event_queue_size", 64)
	v.SetDefault("ledger.test_network", false)
	v.SetDefault("ledger.key_algorithm", "secp256k1")
	v.SetDefault("ledger.connection_check_interval", 5*time.Second)

	// [log]
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.console", true)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", false)

	// [journal]
	v.SetDefault("journal.driver", "none")
	v.SetDefault("journal.path", "")

	// [metrics]
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.address", "127.0.0.1:9102")
}
