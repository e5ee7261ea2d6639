package siwe

import (
	"context"
	"errors"
	"time"
)

// ErrNonceUnknown means a nonce was never issued, already consumed, or
// expired. All three are indistinguishable to the caller on purpose.
var ErrNonceUnknown = errors.New("unknown or expired nonce")

// NonceStore keeps issued nonces until they are consumed or expire. A nonce
// can be consumed exactly once.
type NonceStore interface {
	// Put records a nonce for an address with the given lifetime.
	Put(ctx context.Context, nonce, address string, ttl time.Duration) error
	// Consume removes the nonce and returns the address it was issued for.
	// A second consume of the same nonce fails with ErrNonceUnknown.
	Consume(ctx context.Context, nonce string) (string, error)
}
