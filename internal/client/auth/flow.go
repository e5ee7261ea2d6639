// Package auth implements the sign-in flows of the client: the wallet
// challenge–response protocol, the identity-provider flow, and the
// orchestrator that merges their results into a single session.
package auth

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/decentrix/decentrix/internal/client/wallet"
)

// FlowState names a position in the challenge–response state machine.
type FlowState string

const (
	StateIdle             FlowState = "idle"
	StateAddressRequested FlowState = "address_requested"
	StateChallengeIssued  FlowState = "challenge_issued"
	StateSigned           FlowState = "signed"
	StateVerified         FlowState = "verified"
	StateFailed           FlowState = "failed"
)

// ChallengeVerifier is the slice of the verifier client the flow needs.
type ChallengeVerifier interface {
	Challenge(ctx context.Context, address, domain, uri string) (string, error)
	Verify(ctx context.Context, message string, signature []byte) (bool, error)
}

// ChallengeFlow drives one sign-in-with-wallet attempt:
//
//	Idle → AddressRequested → ChallengeIssued → Signed → Verified
//
// or Failed (terminal, with a typed reason) from any state. A flow instance
// is single-use; a fresh attempt needs a fresh flow so a signature is never
// reused against a stale challenge.
type ChallengeFlow struct {
	provider wallet.Provider
	verifier ChallengeVerifier
	domain   string
	origin   string

	state   FlowState
	address common.Address
	message string
}

func NewChallengeFlow(provider wallet.Provider, verifier ChallengeVerifier, domain, origin string) *ChallengeFlow {
	return &ChallengeFlow{
		provider: provider,
		verifier: verifier,
		domain:   domain,
		origin:   origin,
		state:    StateIdle,
	}
}

// State reports the flow's current position.
func (f *ChallengeFlow) State() FlowState {
	return f.state
}

// Message returns the challenge issued for this attempt, for diagnostics.
func (f *ChallengeFlow) Message() string {
	return f.message
}

// Run executes the protocol to completion and returns the verified wallet
// address. Every failure is converted to the flow taxonomy before returning;
// no raw provider or transport error escapes.
func (f *ChallengeFlow) Run(ctx context.Context) (common.Address, error) {
	if f.provider == nil {
		return common.Address{}, f.fail(wallet.ErrProviderUnavailable)
	}

	f.state = StateAddressRequested
	accounts, err := f.provider.RequestAccounts(ctx)
	if err != nil {
		return common.Address{}, f.fail(fmt.Errorf("%w: %v", wallet.ErrProviderUnavailable, err))
	}
	if len(accounts) == 0 {
		return common.Address{}, f.fail(fmt.Errorf("%w: no accounts", wallet.ErrProviderUnavailable))
	}
	// The Address type is canonical bytes; rendering via Hex() below yields
	// the checksummed form regardless of how the provider spelled it.
	f.address = accounts[0]

	message, err := f.verifier.Challenge(ctx, f.address.Hex(), f.domain, f.origin)
	if err != nil {
		return common.Address{}, f.fail(fmt.Errorf("%w: %v", ErrChallengeRequest, err))
	}
	f.message = message
	f.state = StateChallengeIssued

	signature, err := f.provider.SignMessage(ctx, f.address, []byte(message))
	if err != nil {
		return common.Address{}, f.fail(fmt.Errorf("%w: %v", wallet.ErrSigningRejected, err))
	}
	f.state = StateSigned

	ok, err := f.verifier.Verify(ctx, message, signature)
	if err != nil {
		return common.Address{}, f.fail(fmt.Errorf("%w: %v", ErrVerification, err))
	}
	if !ok {
		return common.Address{}, f.fail(ErrSignatureRejected)
	}

	f.state = StateVerified
	return f.address, nil
}

func (f *ChallengeFlow) fail(err error) error {
	f.state = StateFailed
	return err
}
