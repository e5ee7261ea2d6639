package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/decentrix/decentrix/internal/client/identity"
	"github.com/decentrix/decentrix/internal/client/verifier"
	"github.com/decentrix/decentrix/internal/client/wallet"
	"github.com/decentrix/decentrix/internal/logging"
)

// IdentityResult is what the external identity provider hands back after a
// successful popup sign-in.
type IdentityResult struct {
	DisplayName string
	AvatarURL   string
	Token       string
}

// IdentityProvider is the opaque social sign-in collaborator.
type IdentityProvider interface {
	SignIn(ctx context.Context) (*IdentityResult, error)
}

// AccountVerifier is the slice of the verifier client the orchestrator uses.
type AccountVerifier interface {
	ChallengeVerifier
	SignIn(ctx context.Context, email, password string) (string, error)
	SignUp(ctx context.Context, input verifier.SignUpInput) (string, error)
	Me(ctx context.Context, token string) (*verifier.Profile, error)
}

// Config tunes the orchestrator.
type Config struct {
	// Domain and Origin are sent with every challenge request.
	Domain string
	Origin string

	// RequireWalletForProvider gates identity-provider sign-in on wallet
	// presence, matching the recorded behavior where both flows share the
	// wallet precondition. Disable to allow provider-only sign-in.
	RequireWalletForProvider bool

	// SuccessAckDelay postpones navigation after a verified wallet sign-in
	// so a confirmation notice can be read. Zero navigates immediately.
	SuccessAckDelay time.Duration
}

// Orchestrator is the coordinator the UI talks to. It owns the session
// store and the stored user identifier; both flows are re-invocable after
// failure and never leave a partial session behind.
type Orchestrator struct {
	mu sync.Mutex

	cfg      Config
	provider wallet.Provider
	idp      IdentityProvider
	verifier AccountVerifier
	sessions *SessionStore
	ids      *identity.Resolver
	navigate func(route string)
	logger   logging.Logger
}

func NewOrchestrator(
	cfg Config,
	provider wallet.Provider,
	idp IdentityProvider,
	accountVerifier AccountVerifier,
	sessions *SessionStore,
	ids *identity.Resolver,
	navigate func(route string),
	logger logging.Logger,
) *Orchestrator {
	if navigate == nil {
		navigate = func(string) {}
	}
	return &Orchestrator{
		cfg:      cfg,
		provider: provider,
		idp:      idp,
		verifier: accountVerifier,
		sessions: sessions,
		ids:      ids,
		navigate: navigate,
		logger:   logger,
	}
}

// Session returns the active session, or false when signed out.
func (o *Orchestrator) Session() (*Session, bool) {
	return o.sessions.Current()
}

// SignInWithProvider runs the identity-provider flow: request the wallet
// address first (when configured), then the provider popup, then merge both
// results into one session. Any failure aborts the whole flow.
func (o *Orchestrator) SignInWithProvider(ctx context.Context) error {
	walletAddress := ""

	if o.cfg.RequireWalletForProvider {
		if o.provider == nil {
			return wallet.ErrProviderUnavailable
		}
		accounts, err := o.provider.RequestAccounts(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", wallet.ErrProviderUnavailable, err)
		}
		if len(accounts) == 0 {
			return fmt.Errorf("%w: no accounts", wallet.ErrProviderUnavailable)
		}
		walletAddress = accounts[0].Hex()
	}

	result, err := o.idp.SignIn(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIdentityProvider, err)
	}
	if result.Token == "" {
		return fmt.Errorf("%w: no token issued", ErrIdentityProvider)
	}

	sess := &Session{
		DisplayName:   orDefault(result.DisplayName, "User"),
		AvatarURL:     orDefault(result.AvatarURL, DefaultAvatarURL),
		WalletAddress: walletAddress,
		BearerToken:   result.Token,
		Provider:      ProviderIdentity,
	}
	if err := o.installSession(ctx, sess, walletAddress); err != nil {
		return err
	}

	o.logger.Info(ctx, "identity provider sign-in complete", "wallet", walletAddress != "")
	o.navigate("/home")
	return nil
}

// ConnectWallet drives a challenge flow to Verified and installs the
// resulting session with a provisional display identity. After the session
// is installed, navigation is delayed by SuccessAckDelay.
func (o *Orchestrator) ConnectWallet(ctx context.Context) error {
	flow := NewChallengeFlow(o.provider, o.verifier, o.cfg.Domain, o.cfg.Origin)

	address, err := flow.Run(ctx)
	if err != nil {
		o.logger.Warn(ctx, "wallet sign-in failed", "state", string(flow.State()), "error", err.Error())
		return err
	}

	sess := &Session{
		DisplayName:   "Anonymous",
		AvatarURL:     AnonymousAvatarURL,
		WalletAddress: address.Hex(),
		Provider:      ProviderWallet,
	}
	if err := o.installSession(ctx, sess, address.Hex()); err != nil {
		return err
	}

	o.logger.Info(ctx, "wallet sign-in complete", "address", address.Hex())

	if o.cfg.SuccessAckDelay > 0 {
		select {
		case <-time.After(o.cfg.SuccessAckDelay):
		case <-ctx.Done():
		}
	}
	o.navigate("/home")
	return nil
}

// SignInWithPassword authenticates against the verifier with email and
// password, fetches the profile, and installs the session.
func (o *Orchestrator) SignInWithPassword(ctx context.Context, email, password string) error {
	token, err := o.verifier.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	profile, err := o.verifier.Me(ctx, token)
	if err != nil {
		return err
	}

	sess := &Session{
		DisplayName: profile.DisplayName(),
		AvatarURL:   DefaultAvatarURL,
		BearerToken: token,
		Provider:    ProviderIdentity,
	}
	if err := o.installSession(ctx, sess, ""); err != nil {
		return err
	}

	o.navigate("/home")
	return nil
}

// SignUp registers a new account on the verifier and installs a session for
// it.
func (o *Orchestrator) SignUp(ctx context.Context, email, password, firstName, lastName string) error {
	token, err := o.verifier.SignUp(ctx, verifier.SignUpInput{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}

	profile, err := o.verifier.Me(ctx, token)
	if err != nil {
		return err
	}

	sess := &Session{
		DisplayName: profile.DisplayName(),
		AvatarURL:   DefaultAvatarURL,
		BearerToken: token,
		Provider:    ProviderIdentity,
	}
	if err := o.installSession(ctx, sess, ""); err != nil {
		return err
	}

	o.navigate("/home")
	return nil
}

// Logout clears the stored identifier and the session together, under one
// lock. The identifier goes first: it is the step that can fail, and a
// failure must leave the session installed so logout can be retried instead
// of stranding a half-cleared state.
func (o *Orchestrator) Logout(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.ids.Clear(ctx); err != nil {
		return fmt.Errorf("identifier clear error: %w", err)
	}
	o.sessions.Clear()
	o.logger.Info(ctx, "signed out")
	return nil
}

// installSession persists the identifier (stored value wins) and installs
// the session as the last step, so failures leave no partial state.
func (o *Orchestrator) installSession(ctx context.Context, sess *Session, walletAddress string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if walletAddress != "" {
		if _, err := o.ids.Resolve(ctx, walletAddress); err != nil {
			return fmt.Errorf("identifier resolve error: %w", err)
		}
	}
	return o.sessions.Install(sess)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
