package siwe

import (
	"context"
	"crypto/ecdsa"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decentrix/decentrix/internal/logging"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	return NewService(NewMemoryNonceStore(), 5*time.Minute, logger)
}

func newTestKey(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, crypto.PubkeyToAddress(key.PublicKey).Hex()
}

// signPersonal produces the signature a wallet would: EIP-191 prefixed hash,
// recovery byte shifted to 27/28.
func signPersonal(t *testing.T, key *ecdsa.PrivateKey, message string) []byte {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	sig[64] += 27
	return sig
}

func TestIssueVerify_HappyPath(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	key, address := newTestKey(t)

	message, err := s.Issue(ctx, address, "localhost", "http://localhost")
	require.NoError(t, err)

	ok, err := s.Verify(ctx, message, signPersonal(t, key, message))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIssue_BadAddress(t *testing.T) {
	s := newTestService(t)

	_, err := s.Issue(context.Background(), "not-an-address", "d", "u")
	assert.ErrorIs(t, err, ErrBadAddress)
}

func TestVerify_WrongKey(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	_, address := newTestKey(t)
	otherKey, _ := newTestKey(t)

	message, err := s.Issue(ctx, address, "localhost", "http://localhost")
	require.NoError(t, err)

	ok, err := s.Verify(ctx, message, signPersonal(t, otherKey, message))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_NonceSingleUse(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	key, address := newTestKey(t)

	message, err := s.Issue(ctx, address, "localhost", "http://localhost")
	require.NoError(t, err)
	sig := signPersonal(t, key, message)

	ok, err := s.Verify(ctx, message, sig)
	require.NoError(t, err)
	require.True(t, ok)

	// replaying the same message and signature fails
	ok, err = s.Verify(ctx, message, sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_TamperedMessage(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	key, address := newTestKey(t)

	message, err := s.Issue(ctx, address, "localhost", "http://localhost")
	require.NoError(t, err)

	// sign the issued message but submit an altered one
	tampered := message + "\nResources: http://evil.example"
	ok, err := s.Verify(ctx, tampered, signPersonal(t, key, message))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_UnknownNonce(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	key, _ := newTestKey(t)

	c := Challenge{
		Domain:   "localhost",
		Address:  crypto.PubkeyToAddress(key.PublicKey),
		Nonce:    "never-issued",
		IssuedAt: time.Now(),
	}
	message := c.Render()

	ok, err := s.Verify(ctx, message, signPersonal(t, key, message))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_ExpiredNonce(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	s := NewService(NewMemoryNonceStore(), -time.Second, logger)
	key, address := newTestKey(t)

	message, err := s.Issue(ctx, address, "localhost", "http://localhost")
	require.NoError(t, err)

	ok, err := s.Verify(ctx, message, signPersonal(t, key, message))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_GarbageInput(t *testing.T) {
	s := newTestService(t)

	ok, err := s.Verify(context.Background(), "not a challenge", []byte{0x01})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_BadSignatureLength(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	_, address := newTestKey(t)

	message, err := s.Issue(ctx, address, "localhost", "http://localhost")
	require.NoError(t, err)

	ok, err := s.Verify(ctx, message, []byte{0x01, 0x02})
	require.NoError(t, err)
	assert.False(t, ok)
}
