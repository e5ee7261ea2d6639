package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - VerifierURL: base URL of the verifier service.
//   - RPCURL: Ethereum JSON-RPC endpoint.
//   - KeystoreDir / KeystorePassphrase: local encrypted key storage.
//   - ContractAddress: deployed feed contract, hex.
//   - UUIDNamespace: namespace UUID for identifier derivation.
//   - Domain / Origin: values sent with every challenge request.
//   - ProfileDBPath: sqlite file for local profile state.
//   - PinAPIURL / PinGatewayURL / PinAPIKey / PinAPISecret: media pinning service.
//   - CallTimeout: bound on a single chain round trip.
//   - SuccessAckDelay: pause between verified wallet sign-in and navigation.
//   - RequireWalletForProvider: gate provider sign-in on wallet presence.
type Config struct {
	VerifierURL              string
	RPCURL                   string
	KeystoreDir              string
	KeystorePassphrase       string
	ContractAddress          string
	UUIDNamespace            string
	Domain                   string
	Origin                   string
	ProfileDBPath            string
	PinAPIURL                string
	PinGatewayURL            string
	PinAPIKey                string
	PinAPISecret             string
	CallTimeout              time.Duration
	SuccessAckDelay          time.Duration
	RequireWalletForProvider bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.VerifierURL = "http://127.0.0.1:8080"
	c.RPCURL = "http://127.0.0.1:8545"
	c.KeystoreDir = "keystore"
	c.ContractAddress = ""
	c.UUIDNamespace = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	c.Domain = "localhost"
	c.Origin = "http://localhost"
	c.ProfileDBPath = "profile.db"
	c.PinAPIURL = "https://api.pinata.cloud"
	c.PinGatewayURL = "https://gateway.pinata.cloud"
	c.CallTimeout = 30 * time.Second
	c.SuccessAckDelay = 3 * time.Second
	c.RequireWalletForProvider = true
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
