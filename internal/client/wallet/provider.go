// Package wallet abstracts the user's wallet behind a capability interface so
// the authentication and content layers never touch a concrete signer. The
// production implementation talks JSON-RPC to a node and signs with a local
// keystore; tests substitute a double.
package wallet

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrProviderUnavailable means no wallet provider is configured or the
	// provider stopped responding. User-actionable: install/enable a wallet.
	ErrProviderUnavailable = errors.New("wallet provider unavailable")

	// ErrNoAccounts means the provider is reachable but holds no accounts.
	ErrNoAccounts = errors.New("wallet has no accounts")

	// ErrSigningRejected means the user declined the signing prompt or the
	// signer refused the request. Recoverable, not an application fault.
	ErrSigningRejected = errors.New("message signing rejected")
)

// Provider is the capability surface the core needs from a wallet plus its
// node connection. All methods honor context cancellation.
type Provider interface {
	// RequestAccounts asks the wallet for account access and returns the
	// available addresses, primary account first.
	RequestAccounts(ctx context.Context) ([]common.Address, error)

	// SignMessage signs message on behalf of account using the EIP-191
	// personal-sign scheme. The message must be signed verbatim.
	SignMessage(ctx context.Context, account common.Address, message []byte) ([]byte, error)

	// CodeAt returns the deployed bytecode at contract, empty when nothing
	// is deployed there on the current network.
	CodeAt(ctx context.Context, contract common.Address) ([]byte, error)

	// CallContract executes a read-only call against contract.
	CallContract(ctx context.Context, contract common.Address, data []byte) ([]byte, error)

	// SendTransaction signs and submits a state-changing call and returns
	// the transaction hash without waiting for inclusion.
	SendTransaction(ctx context.Context, contract common.Address, data []byte) (common.Hash, error)

	// WaitMined blocks until the transaction is included or ctx expires.
	WaitMined(ctx context.Context, tx common.Hash) error
}
