package auth

import "sync"

// ProviderKind records which flow produced a session.
type ProviderKind string

const (
	ProviderIdentity ProviderKind = "identity-provider"
	ProviderWallet   ProviderKind = "wallet"
)

// Default avatars used when a flow supplies none.
const (
	DefaultAvatarURL   = "https://cdn-icons-png.flaticon.com/128/3177/3177440.png"
	AnonymousAvatarURL = "https://cdn-icons-png.flaticon.com/128/10/10960.png"
)

// Session is the merged result of a successful sign-in. WalletAddress is the
// checksummed address when a wallet took part, empty otherwise. BearerToken
// is empty for the wallet flow, which receives no token from the verifier.
type Session struct {
	DisplayName   string
	AvatarURL     string
	WalletAddress string
	BearerToken   string
	Provider      ProviderKind
}

// SessionStore owns the process-wide session for the lifetime of the run.
// It is created empty, filled exactly once per sign-in, and cleared on
// logout.
type SessionStore struct {
	mu      sync.RWMutex
	current *Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Install makes sess the active session. A second install while one is
// active fails with ErrSessionActive so a completed sign-in is never
// silently replaced.
func (s *SessionStore) Install(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return ErrSessionActive
	}
	s.current = sess
	return nil
}

// Current returns the active session, or false when signed out.
func (s *SessionStore) Current() (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	sess := *s.current
	return &sess, true
}

// Clear drops the active session. Clearing an empty store is a no-op.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
