package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_InstallAndCurrent(t *testing.T) {
	s := NewSessionStore()

	_, ok := s.Current()
	assert.False(t, ok)

	require.NoError(t, s.Install(&Session{DisplayName: "Ada", Provider: ProviderWallet}))

	sess, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "Ada", sess.DisplayName)
}

func TestSessionStore_SecondInstallRejected(t *testing.T) {
	s := NewSessionStore()
	require.NoError(t, s.Install(&Session{DisplayName: "first"}))

	err := s.Install(&Session{DisplayName: "second"})
	assert.ErrorIs(t, err, ErrSessionActive)

	sess, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "first", sess.DisplayName)
}

func TestSessionStore_CurrentReturnsCopy(t *testing.T) {
	s := NewSessionStore()
	require.NoError(t, s.Install(&Session{DisplayName: "Ada"}))

	sess, _ := s.Current()
	sess.DisplayName = "mutated"

	again, _ := s.Current()
	assert.Equal(t, "Ada", again.DisplayName)
}

func TestSessionStore_Clear(t *testing.T) {
	s := NewSessionStore()
	require.NoError(t, s.Install(&Session{}))

	s.Clear()
	_, ok := s.Current()
	assert.False(t, ok)

	// clearing twice is fine, and a new install works afterwards
	s.Clear()
	assert.NoError(t, s.Install(&Session{}))
}
