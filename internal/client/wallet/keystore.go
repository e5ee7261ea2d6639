package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// receiptPollInterval is how often WaitMined re-checks for a receipt.
const receiptPollInterval = time.Second

// KeystoreProvider implements Provider with a go-ethereum JSON-RPC client for
// chain access and an encrypted local keystore for signing.
type KeystoreProvider struct {
	ec         *ethclient.Client
	ks         *keystore.KeyStore
	chainID    *big.Int
	passphrase string
}

// NewKeystoreProvider dials rpcURL and opens the keystore at keyDir. The
// passphrase unlocks keys per signing request; keys are never kept unlocked.
func NewKeystoreProvider(ctx context.Context, rpcURL, keyDir, passphrase string) (*KeystoreProvider, error) {
	ec, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	chainID, err := ec.ChainID(ctx)
	if err != nil {
		ec.Close()
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	ks := keystore.NewKeyStore(keyDir, keystore.StandardScryptN, keystore.StandardScryptP)

	return &KeystoreProvider{ec: ec, ks: ks, chainID: chainID, passphrase: passphrase}, nil
}

func (p *KeystoreProvider) Close() {
	p.ec.Close()
}

func (p *KeystoreProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	accts := p.ks.Accounts()
	if len(accts) == 0 {
		return nil, ErrNoAccounts
	}
	addrs := make([]common.Address, 0, len(accts))
	for _, a := range accts {
		addrs = append(addrs, a.Address)
	}
	return addrs, nil
}

// SignMessage produces an EIP-191 personal-sign signature: the message is
// prefixed and keccak-hashed by accounts.TextHash, and the recovery byte is
// shifted to the 27/28 convention wallets use.
func (p *KeystoreProvider) SignMessage(ctx context.Context, account common.Address, message []byte) ([]byte, error) {
	sig, err := p.ks.SignHashWithPassphrase(accounts.Account{Address: account}, p.passphrase, accounts.TextHash(message))
	if err != nil {
		if errors.Is(err, keystore.ErrDecrypt) {
			return nil, fmt.Errorf("%w: %v", ErrSigningRejected, err)
		}
		return nil, err
	}
	sig[64] += 27
	return sig, nil
}

func (p *KeystoreProvider) CodeAt(ctx context.Context, contract common.Address) ([]byte, error) {
	return p.ec.CodeAt(ctx, contract, nil)
}

func (p *KeystoreProvider) CallContract(ctx context.Context, contract common.Address, data []byte) ([]byte, error) {
	return p.ec.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
}

func (p *KeystoreProvider) SendTransaction(ctx context.Context, contract common.Address, data []byte) (common.Hash, error) {
	accts := p.ks.Accounts()
	if len(accts) == 0 {
		return common.Hash{}, ErrNoAccounts
	}
	from := accts[0]

	nonce, err := p.ec.PendingNonceAt(ctx, from.Address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("nonce query error: %w", err)
	}

	gasPrice, err := p.ec.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("gas price query error: %w", err)
	}

	gasLimit, err := p.ec.EstimateGas(ctx, ethereum.CallMsg{
		From: from.Address,
		To:   &contract,
		Data: data,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("gas estimation error: %w", err)
	}

	tx := types.NewTransaction(nonce, contract, big.NewInt(0), gasLimit, gasPrice, data)

	signed, err := p.ks.SignTxWithPassphrase(from, p.passphrase, tx, p.chainID)
	if err != nil {
		if errors.Is(err, keystore.ErrDecrypt) {
			return common.Hash{}, fmt.Errorf("%w: %v", ErrSigningRejected, err)
		}
		return common.Hash{}, err
	}

	if err := p.ec.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("transaction submit error: %w", err)
	}
	return signed.Hash(), nil
}

func (p *KeystoreProvider) WaitMined(ctx context.Context, tx common.Hash) error {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		_, err := p.ec.TransactionReceipt(ctx, tx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
