package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decentrix/decentrix/internal/client/wallet"
)

var testAddress = common.HexToAddress("0x8ba1f109551bD432803012645Ac136ddd64DBA72")

type fakeWallet struct {
	accounts    []common.Address
	accountsErr error
	signature   []byte
	signErr     error
	signedWith  []byte
}

func (f *fakeWallet) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	return f.accounts, f.accountsErr
}

func (f *fakeWallet) SignMessage(ctx context.Context, account common.Address, message []byte) ([]byte, error) {
	f.signedWith = message
	return f.signature, f.signErr
}

func (f *fakeWallet) CodeAt(ctx context.Context, contract common.Address) ([]byte, error) {
	return nil, nil
}

func (f *fakeWallet) CallContract(ctx context.Context, contract common.Address, data []byte) ([]byte, error) {
	return nil, nil
}

func (f *fakeWallet) SendTransaction(ctx context.Context, contract common.Address, data []byte) (common.Hash, error) {
	return common.Hash{}, nil
}

func (f *fakeWallet) WaitMined(ctx context.Context, tx common.Hash) error {
	return nil
}

type fakeVerifier struct {
	message      string
	challengeErr error
	ok           bool
	verifyErr    error

	verifiedMessage   string
	verifiedSignature []byte
	challenges        int
}

func (f *fakeVerifier) Challenge(ctx context.Context, address, domain, uri string) (string, error) {
	f.challenges++
	return f.message, f.challengeErr
}

func (f *fakeVerifier) Verify(ctx context.Context, message string, signature []byte) (bool, error) {
	f.verifiedMessage = message
	f.verifiedSignature = signature
	return f.ok, f.verifyErr
}

func TestFlow_HappyPath(t *testing.T) {
	w := &fakeWallet{accounts: []common.Address{testAddress}, signature: []byte{0xab}}
	v := &fakeVerifier{message: "challenge text", ok: true}
	f := NewChallengeFlow(w, v, "localhost", "http://localhost")

	addr, err := f.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, testAddress, addr)
	assert.Equal(t, StateVerified, f.State())
	// the challenge is signed and verified verbatim
	assert.Equal(t, []byte("challenge text"), w.signedWith)
	assert.Equal(t, "challenge text", v.verifiedMessage)
	assert.Equal(t, []byte{0xab}, v.verifiedSignature)
}

func TestFlow_NilProvider(t *testing.T) {
	f := NewChallengeFlow(nil, &fakeVerifier{}, "localhost", "http://localhost")

	_, err := f.Run(context.Background())
	assert.ErrorIs(t, err, wallet.ErrProviderUnavailable)
	assert.Equal(t, StateFailed, f.State())
}

func TestFlow_NoAccounts(t *testing.T) {
	f := NewChallengeFlow(&fakeWallet{}, &fakeVerifier{}, "localhost", "http://localhost")

	_, err := f.Run(context.Background())
	assert.ErrorIs(t, err, wallet.ErrProviderUnavailable)
	assert.Equal(t, StateFailed, f.State())
}

func TestFlow_ChallengeRequestFails(t *testing.T) {
	w := &fakeWallet{accounts: []common.Address{testAddress}}
	v := &fakeVerifier{challengeErr: errors.New("boom")}
	f := NewChallengeFlow(w, v, "localhost", "http://localhost")

	_, err := f.Run(context.Background())
	assert.ErrorIs(t, err, ErrChallengeRequest)
	assert.Equal(t, StateFailed, f.State())
}

func TestFlow_SigningRejected(t *testing.T) {
	w := &fakeWallet{accounts: []common.Address{testAddress}, signErr: errors.New("user declined")}
	v := &fakeVerifier{message: "m"}
	f := NewChallengeFlow(w, v, "localhost", "http://localhost")

	_, err := f.Run(context.Background())
	assert.ErrorIs(t, err, wallet.ErrSigningRejected)
	assert.Equal(t, StateFailed, f.State())

	// no signature ever reached the verifier
	assert.Empty(t, v.verifiedMessage)
}

func TestFlow_VerifierUnreachable(t *testing.T) {
	w := &fakeWallet{accounts: []common.Address{testAddress}, signature: []byte{0x01}}
	v := &fakeVerifier{message: "m", verifyErr: errors.New("connection refused")}
	f := NewChallengeFlow(w, v, "localhost", "http://localhost")

	_, err := f.Run(context.Background())
	assert.ErrorIs(t, err, ErrVerification)
	assert.Equal(t, StateFailed, f.State())
}

func TestFlow_SignatureRejected(t *testing.T) {
	w := &fakeWallet{accounts: []common.Address{testAddress}, signature: []byte{0x01}}
	v := &fakeVerifier{message: "m", ok: false}
	f := NewChallengeFlow(w, v, "localhost", "http://localhost")

	_, err := f.Run(context.Background())
	assert.ErrorIs(t, err, ErrSignatureRejected)
	assert.Equal(t, StateFailed, f.State())
}

func TestFlow_FreshChallengePerAttempt(t *testing.T) {
	w := &fakeWallet{accounts: []common.Address{testAddress}, signature: []byte{0x01}}
	v := &fakeVerifier{message: "m", ok: false}

	_, err := NewChallengeFlow(w, v, "localhost", "http://localhost").Run(context.Background())
	require.ErrorIs(t, err, ErrSignatureRejected)

	v.ok = true
	_, err = NewChallengeFlow(w, v, "localhost", "http://localhost").Run(context.Background())
	require.NoError(t, err)

	// each attempt requested its own challenge
	assert.Equal(t, 2, v.challenges)
}
