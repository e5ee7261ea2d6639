package siwe

import (
	"context"
	"sync"
	"time"
)

type memoryNonce struct {
	address   string
	expiresAt time.Time
}

// MemoryNonceStore is an in-process NonceStore used in tests and
// single-instance development setups.
type MemoryNonceStore struct {
	mu     sync.Mutex
	nonces map[string]memoryNonce
}

func NewMemoryNonceStore() *MemoryNonceStore {
	return &MemoryNonceStore{nonces: make(map[string]memoryNonce)}
}

func (s *MemoryNonceStore) Put(_ context.Context, nonce, address string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nonces[nonce] = memoryNonce{address: address, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryNonceStore) Consume(_ context.Context, nonce string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nonces[nonce]
	if !ok {
		return "", ErrNonceUnknown
	}
	delete(s.nonces, nonce)

	if time.Now().After(n.expiresAt) {
		return "", ErrNonceUnknown
	}
	return n.address, nil
}
