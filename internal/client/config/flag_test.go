package config

import (
	"flag"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{name: "Test1 OK",
			args: []string{"cmd", "-v", "http://verify.example", "-r", "http://rpc.example", "-o", "0xabc"},
			expected: &Config{
				VerifierURL:     "http://verify.example",
				RPCURL:          "http://rpc.example",
				ContractAddress: "0xabc",
			}},
		{name: "Test2 profile path",
			args:     []string{"cmd", "-p", "state.db"},
			expected: &Config{ProfileDBPath: "state.db"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
