package auth

import "errors"

// Flow failure taxonomy. Everything that can go wrong inside a sign-in flow
// is converted to one of these kinds (or to the wallet/chain sentinels)
// before it reaches the orchestrator, so callers never see an unrecognized
// failure shape.
var (
	// ErrChallengeRequest means the verifier could not issue a challenge.
	// Retryable.
	ErrChallengeRequest = errors.New("challenge request failed")

	// ErrVerification means the verifier could not be consulted (network or
	// server error). Retryable.
	ErrVerification = errors.New("signature verification unavailable")

	// ErrSignatureRejected means the verifier examined the signature and
	// rejected it. The flow must restart from a fresh challenge; the same
	// signature is never resubmitted.
	ErrSignatureRejected = errors.New("signature rejected by verifier")

	// ErrIdentityProvider means the external identity provider sign-in
	// failed or was dismissed.
	ErrIdentityProvider = errors.New("identity provider sign-in failed")

	// ErrSessionActive means a session is already installed; the completed
	// sign-in must not be silently discarded by a second one.
	ErrSessionActive = errors.New("a session is already active")
)
