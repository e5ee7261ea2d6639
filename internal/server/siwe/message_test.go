package siwe

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderParse_RoundTrip(t *testing.T) {
	c := Challenge{
		Domain:   "localhost",
		Address:  common.HexToAddress("0x8ba1f109551bD432803012645Ac136ddd64DBA72"),
		URI:      "http://localhost",
		Nonce:    "abcdef0123456789",
		IssuedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	parsed, err := Parse(c.Render())
	require.NoError(t, err)

	assert.Equal(t, c.Domain, parsed.Domain)
	assert.Equal(t, c.Address, parsed.Address)
	assert.Equal(t, c.URI, parsed.URI)
	assert.Equal(t, c.Nonce, parsed.Nonce)
	assert.True(t, c.IssuedAt.Equal(parsed.IssuedAt))
}

func TestRender_ChecksummedAddress(t *testing.T) {
	c := Challenge{
		Domain:  "localhost",
		Address: common.HexToAddress("0x8ba1f109551bd432803012645ac136ddd64dba72"),
		Nonce:   "n",
	}

	assert.Contains(t, c.Render(), "0x8ba1f109551bD432803012645Ac136ddd64DBA72")
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{name: "empty", message: ""},
		{name: "no header", message: "hello\n0x8ba1f109551bD432803012645Ac136ddd64DBA72"},
		{name: "bad address", message: "localhost wants you to sign in with your Ethereum account:\nnot-an-address\n\nNonce: n"},
		{name: "no nonce", message: "localhost wants you to sign in with your Ethereum account:\n0x8ba1f109551bD432803012645Ac136ddd64DBA72\n\nURI: http://x"},
		{name: "bad timestamp", message: "localhost wants you to sign in with your Ethereum account:\n0x8ba1f109551bD432803012645Ac136ddd64DBA72\n\nNonce: n\nIssued At: yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.message)
			assert.ErrorIs(t, err, ErrMalformedMessage)
		})
	}
}
