// Package siwe issues wallet sign-in challenges and verifies the signatures
// that come back. A challenge embeds a single-use nonce; verification
// recovers the signer from the signature and checks it against the address
// the challenge was issued for.
package siwe

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ErrMalformedMessage means a submitted message does not follow the
// challenge format and cannot be verified.
var ErrMalformedMessage = errors.New("malformed challenge message")

// Challenge is one issued sign-in message before rendering.
type Challenge struct {
	Domain   string
	Address  common.Address
	URI      string
	Nonce    string
	IssuedAt time.Time
}

// Render produces the exact text the wallet signs. The layout is fixed;
// Parse reads it back on the verify side.
func (c Challenge) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s wants you to sign in with your Ethereum account:\n", c.Domain)
	fmt.Fprintf(&b, "%s\n\n", c.Address.Hex())
	b.WriteString("Sign this message to verify ownership of your wallet.\n\n")
	fmt.Fprintf(&b, "URI: %s\n", c.URI)
	fmt.Fprintf(&b, "Nonce: %s\n", c.Nonce)
	fmt.Fprintf(&b, "Issued At: %s", c.IssuedAt.UTC().Format(time.RFC3339))
	return b.String()
}

// Parse reads a rendered challenge back into its fields. Unknown trailing
// lines are ignored; a missing address or nonce is a format error.
func Parse(message string) (*Challenge, error) {
	lines := strings.Split(message, "\n")
	if len(lines) < 2 {
		return nil, ErrMalformedMessage
	}

	header := lines[0]
	const suffix = " wants you to sign in with your Ethereum account:"
	if !strings.HasSuffix(header, suffix) {
		return nil, ErrMalformedMessage
	}

	addrLine := strings.TrimSpace(lines[1])
	if !common.IsHexAddress(addrLine) {
		return nil, ErrMalformedMessage
	}

	c := &Challenge{
		Domain:  strings.TrimSuffix(header, suffix),
		Address: common.HexToAddress(addrLine),
	}

	for _, line := range lines[2:] {
		switch {
		case strings.HasPrefix(line, "URI: "):
			c.URI = strings.TrimPrefix(line, "URI: ")
		case strings.HasPrefix(line, "Nonce: "):
			c.Nonce = strings.TrimPrefix(line, "Nonce: ")
		case strings.HasPrefix(line, "Issued At: "):
			ts, err := time.Parse(time.RFC3339, strings.TrimPrefix(line, "Issued At: "))
			if err != nil {
				return nil, ErrMalformedMessage
			}
			c.IssuedAt = ts
		}
	}

	if c.Nonce == "" {
		return nil, ErrMalformedMessage
	}
	return c, nil
}
