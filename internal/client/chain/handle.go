package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/decentrix/decentrix/internal/client/wallet"
)

// Handle identifies a submitted transaction. Wait blocks until the
// transaction is confirmed on-chain or the context expires.
type Handle struct {
	hash     common.Hash
	provider wallet.Provider
}

func (h *Handle) Hash() common.Hash {
	return h.hash
}

func (h *Handle) Wait(ctx context.Context) error {
	return h.provider.WaitMined(ctx, h.hash)
}
