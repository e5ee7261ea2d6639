package siwe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	commonx "github.com/decentrix/decentrix/internal/common"
	"github.com/decentrix/decentrix/internal/logging"
)

// ErrBadAddress means the challenge request named something that is not a
// hex address.
var ErrBadAddress = errors.New("invalid wallet address")

const nonceBytes = 16

// Service issues challenges and verifies signed ones. Issue and Verify are
// linked only through the nonce store, so any instance behind a load
// balancer can verify a challenge another instance issued.
type Service struct {
	nonces NonceStore
	ttl    time.Duration
	logger logging.Logger
}

func NewService(nonces NonceStore, ttl time.Duration, logger logging.Logger) *Service {
	return &Service{nonces: nonces, ttl: ttl, logger: logger}
}

// Issue creates a challenge for address and returns the rendered message.
// The embedded nonce is stored with the service TTL.
func (s *Service) Issue(ctx context.Context, address, domain, uri string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", ErrBadAddress
	}

	nonce, err := commonx.MakeRandHexString(nonceBytes)
	if err != nil {
		return "", fmt.Errorf("nonce generation error: %w", err)
	}

	c := Challenge{
		Domain:   domain,
		Address:  common.HexToAddress(address),
		URI:      uri,
		Nonce:    nonce,
		IssuedAt: time.Now(),
	}

	if err := s.nonces.Put(ctx, nonce, c.Address.Hex(), s.ttl); err != nil {
		return "", fmt.Errorf("nonce store error: %w", err)
	}

	s.logger.Debug(ctx, "challenge issued", "address", c.Address.Hex())
	return c.Render(), nil
}

// Verify checks a signed challenge. False with nil error means the
// submission was examined and rejected; an error means the verdict could
// not be reached. The challenge nonce is consumed either way, so a rejected
// signature cannot be retried against the same challenge.
func (s *Service) Verify(ctx context.Context, message string, signature []byte) (bool, error) {
	c, err := Parse(message)
	if err != nil {
		return false, nil
	}

	issuedFor, err := s.nonces.Consume(ctx, c.Nonce)
	if errors.Is(err, ErrNonceUnknown) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("nonce store error: %w", err)
	}
	if issuedFor != c.Address.Hex() {
		return false, nil
	}

	recovered, ok := recoverSigner(message, signature)
	if !ok {
		return false, nil
	}

	if recovered != c.Address {
		s.logger.Debug(ctx, "signer mismatch", "expected", c.Address.Hex(), "got", recovered.Hex())
		return false, nil
	}
	return true, nil
}

// recoverSigner recovers the address that produced an EIP-191 personal-sign
// signature over message. Wallets return V as 27/28; recovery wants 0/1.
func recoverSigner(message string, signature []byte) (common.Address, bool) {
	if len(signature) != 65 {
		return common.Address{}, false
	}

	sig := make([]byte, 65)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return common.Address{}, false
	}
	return crypto.PubkeyToAddress(*pub), true
}
