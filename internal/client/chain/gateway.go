// Package chain wraps contract reads and writes behind a gateway that checks
// a contract is actually deployed before calling, decodes structured revert
// reasons from failed calls, and converts every failure into a typed error
// the flow layer can present.
package chain

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/decentrix/decentrix/internal/client/wallet"
)

// ErrNoContract means the configured address holds no bytecode on the current
// network. User-actionable: switch network or fix configuration.
var ErrNoContract = errors.New("no contract deployed at configured address")

// DefaultCallTimeout bounds a single provider round trip. A stalled provider
// surfaces as ErrProviderUnavailable instead of hanging the flow.
const DefaultCallTimeout = 30 * time.Second

// dataError is implemented by go-ethereum RPC errors carrying a revert
// payload (rpc.DataError). Test doubles implement it the same way.
type dataError interface {
	Error() string
	ErrorData() any
}

// Gateway issues read and write calls against a single contract. It performs
// no caching; every call hits the chain.
type Gateway struct {
	provider wallet.Provider
	contract common.Address
	abi      abi.ABI
	timeout  time.Duration
}

// New builds a Gateway for the contract at addr described by contractABI.
// A non-positive timeout falls back to DefaultCallTimeout.
func New(provider wallet.Provider, addr common.Address, contractABI abi.ABI, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &Gateway{provider: provider, contract: addr, abi: contractABI, timeout: timeout}
}

// Contract returns the configured contract address.
func (g *Gateway) Contract() common.Address {
	return g.contract
}

// Call executes a read-only method and returns its unpacked outputs.
func (g *Gateway) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := g.prepare(ctx, method, args...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := g.provider.CallContract(ctx, g.contract, data)
	if err != nil {
		return nil, g.convert(err)
	}

	values, err := g.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("result decode error for %s: %w", method, err)
	}
	return values, nil
}

// Send submits a state-changing method and returns a Handle the caller can
// await for confirmation. The gateway does not block past submission.
func (g *Gateway) Send(ctx context.Context, method string, args ...any) (*Handle, error) {
	data, err := g.prepare(ctx, method, args...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	hash, err := g.provider.SendTransaction(ctx, g.contract, data)
	if err != nil {
		return nil, g.convert(err)
	}
	return &Handle{hash: hash, provider: g.provider}, nil
}

// prepare validates the provider, gates on deployed bytecode, and packs the
// calldata. No call is attempted when the contract is absent.
func (g *Gateway) prepare(ctx context.Context, method string, args ...any) ([]byte, error) {
	if g.provider == nil {
		return nil, wallet.ErrProviderUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	code, err := g.provider.CodeAt(ctx, g.contract)
	if err != nil {
		return nil, g.convert(err)
	}
	if len(code) == 0 {
		return nil, ErrNoContract
	}

	data, err := g.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("calldata encode error for %s: %w", method, err)
	}
	return data, nil
}

// convert maps provider failures onto the gateway taxonomy: revert payloads
// become *RevertError, deadline expiry becomes ErrProviderUnavailable, and
// anything else is passed through wrapped.
func (g *Gateway) convert(err error) error {
	if payload, ok := revertPayload(err); ok {
		if reason, decoded := DecodeRevertReason(payload); decoded {
			return &RevertError{Reason: reason, Raw: payload}
		}
		return &RevertError{Raw: payload}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", wallet.ErrProviderUnavailable, err)
	}
	return fmt.Errorf("chain call error: %w", err)
}

// revertPayload pulls the raw revert bytes out of an RPC error, accepting
// both hex-string and byte-slice payload encodings.
func revertPayload(err error) ([]byte, bool) {
	var de dataError
	if !errors.As(err, &de) {
		return nil, false
	}
	switch data := de.ErrorData().(type) {
	case string:
		decoded, decErr := hex.DecodeString(strings.TrimPrefix(data, "0x"))
		if decErr != nil {
			return []byte(data), true
		}
		return decoded, true
	case []byte:
		return data, true
	default:
		return nil, false
	}
}
