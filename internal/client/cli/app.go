package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/decentrix/decentrix/internal/client/auth"
	"github.com/decentrix/decentrix/internal/client/chain"
	"github.com/decentrix/decentrix/internal/client/config"
	"github.com/decentrix/decentrix/internal/client/content"
	"github.com/decentrix/decentrix/internal/client/identity"
	"github.com/decentrix/decentrix/internal/client/storage"
	"github.com/decentrix/decentrix/internal/client/verifier"
	"github.com/decentrix/decentrix/internal/client/wallet"
	"github.com/decentrix/decentrix/internal/logging"
)

type App struct {
	config       *config.Config
	store        *storage.SQLiteStore
	orchestrator *auth.Orchestrator
	tweets       *content.Service
	ids          *identity.Resolver
	reader       *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.NewJSON()

	store, err := storage.Open(ctx, c.ProfileDBPath)
	if err != nil {
		return nil, err
	}

	namespace, err := uuid.Parse(c.UUIDNamespace)
	if err != nil {
		return nil, fmt.Errorf("invalid uuid namespace: %w", err)
	}
	resolver := identity.NewResolver(store, namespace)

	// A missing provider is a normal state: the wallet commands report it,
	// everything else keeps working.
	var provider wallet.Provider
	if kp, err := wallet.NewKeystoreProvider(ctx, c.RPCURL, c.KeystoreDir, c.KeystorePassphrase); err != nil {
		log.Printf("wallet provider unavailable: %s", err.Error())
	} else {
		provider = kp
	}

	vc := verifier.New(c.VerifierURL, nil)
	sessions := auth.NewSessionStore()

	orchestrator := auth.NewOrchestrator(
		auth.Config{
			Domain:                   c.Domain,
			Origin:                   c.Origin,
			RequireWalletForProvider: c.RequireWalletForProvider,
			SuccessAckDelay:          c.SuccessAckDelay,
		},
		provider, nil, vc, sessions, resolver,
		func(route string) { fmt.Println("->", route) },
		logger,
	)

	gateway := chain.New(provider, ethcommon.HexToAddress(c.ContractAddress), content.ContractABI(), c.CallTimeout)
	pins := content.NewPinStore(c.PinAPIURL, c.PinGatewayURL, c.PinAPIKey, c.PinAPISecret, nil)
	tweets := content.NewService(gateway, pins, resolver, logger)

	return &App{
		config:       c,
		store:        store,
		orchestrator: orchestrator,
		tweets:       tweets,
		ids:          resolver,
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()
	a.Root(ctx)
}

func (a *App) isSignedIn() bool {
	_, ok := a.orchestrator.Session()
	return ok
}
