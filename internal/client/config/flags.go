package config

import (
	"flag"
	"os"

	"github.com/decentrix/decentrix/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-v string   verifier base URL
//	-r string   Ethereum JSON-RPC endpoint
//	-k string   keystore directory
//	-o string   feed contract address (hex)
//	-p string   local profile database path
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
// Everything else is configured through the JSON file.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-v", "-r", "-k", "-o", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.VerifierURL, "v", cfg.VerifierURL, "verifier base URL")
	fs.StringVar(&cfg.RPCURL, "r", cfg.RPCURL, "JSON-RPC endpoint")
	fs.StringVar(&cfg.KeystoreDir, "k", cfg.KeystoreDir, "keystore directory")
	fs.StringVar(&cfg.ContractAddress, "o", cfg.ContractAddress, "feed contract address")
	fs.StringVar(&cfg.ProfileDBPath, "p", cfg.ProfileDBPath, "profile database path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
