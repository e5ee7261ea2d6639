// Package config loads runtime configuration for the client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-v string   verifier base URL
//	-r string   Ethereum JSON-RPC endpoint
//	-k string   keystore directory
//	-o string   feed contract address (hex)
//	-p string   local profile database path
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "verifier_url": "http://127.0.0.1:8080",
//	  "rpc_url": "http://127.0.0.1:8545",
//	  "contract_address": "0x...",
//	  "success_ack_delay": "3s"
//	}
//
// Primary API
//
//   - type Config                     — runtime settings for the client
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
