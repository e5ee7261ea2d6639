package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/decentrix/decentrix/internal/flagx"
	"github.com/decentrix/decentrix/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	VerifierURL              string         `json:"verifier_url"`
	RPCURL                   string         `json:"rpc_url"`
	KeystoreDir              string         `json:"keystore_dir"`
	KeystorePassphrase       string         `json:"keystore_passphrase"`
	ContractAddress          string         `json:"contract_address"`
	UUIDNamespace            string         `json:"uuid_namespace"`
	Domain                   string         `json:"domain"`
	Origin                   string         `json:"origin"`
	ProfileDBPath            string         `json:"profile_db_path"`
	PinAPIURL                string         `json:"pin_api_url"`
	PinGatewayURL            string         `json:"pin_gateway_url"`
	PinAPIKey                string         `json:"pin_api_key"`
	PinAPISecret             string         `json:"pin_api_secret"`
	CallTimeout              timex.Duration `json:"call_timeout"`
	SuccessAckDelay          timex.Duration `json:"success_ack_delay"`
	RequireWalletForProvider *bool          `json:"require_wallet_for_provider"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Panics on read or unmarshal errors. Intended usage is:
// defaults -> parseJson -> parseFlags, where later stages override earlier
// ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.VerifierURL = jc.VerifierURL
	cfg.RPCURL = jc.RPCURL
	cfg.KeystoreDir = jc.KeystoreDir
	cfg.KeystorePassphrase = jc.KeystorePassphrase
	cfg.ContractAddress = jc.ContractAddress
	cfg.UUIDNamespace = jc.UUIDNamespace
	cfg.Domain = jc.Domain
	cfg.Origin = jc.Origin
	cfg.ProfileDBPath = jc.ProfileDBPath
	cfg.PinAPIURL = jc.PinAPIURL
	cfg.PinGatewayURL = jc.PinGatewayURL
	cfg.PinAPIKey = jc.PinAPIKey
	cfg.PinAPISecret = jc.PinAPISecret
	cfg.CallTimeout = time.Duration(jc.CallTimeout.Duration)
	cfg.SuccessAckDelay = time.Duration(jc.SuccessAckDelay.Duration)
	if jc.RequireWalletForProvider != nil {
		cfg.RequireWalletForProvider = *jc.RequireWalletForProvider
	}
}
