package identity

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

type memStore struct {
	id string
}

func (m *memStore) Identifier(ctx context.Context) (string, error)    { return m.id, nil }
func (m *memStore) SetIdentifier(ctx context.Context, s string) error { m.id = s; return nil }
func (m *memStore) Clear(ctx context.Context) error                   { m.id = ""; return nil }

func TestDerive_Deterministic(t *testing.T) {
	addr := "0x8ba1f109551bD432803012645Ac136ddd64DBA72"

	first, err := Derive(addr, testNamespace)
	require.NoError(t, err)
	second, err := Derive(addr, testNamespace)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, Prefix))
	assert.Len(t, first, len(Prefix)+8)
}

func TestDerive_DistinguishesAddresses(t *testing.T) {
	a, err := Derive("0x8ba1f109551bD432803012645Ac136ddd64DBA72", testNamespace)
	require.NoError(t, err)
	b, err := Derive("0x00000000219ab540356cBB839Cbe05303d7705Fa", testNamespace)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDerive_CaseSensitiveInput(t *testing.T) {
	// Derivation hashes the address string verbatim. Callers must pass the
	// checksummed rendering; the resolver's stored-wins rule keeps an
	// identifier stable even if they do not.
	a, err := Derive("0x8ba1f109551bd432803012645ac136ddd64dba72", testNamespace)
	require.NoError(t, err)
	b, err := Derive("0x8ba1f109551bD432803012645Ac136ddd64DBA72", testNamespace)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDerive_EmptyAddress(t *testing.T) {
	_, err := Derive("   ", testNamespace)
	assert.ErrorIs(t, err, ErrNoAddress)
}

func TestResolver_StoredValueWins(t *testing.T) {
	ctx := context.Background()
	store := &memStore{id: "user_cafe0123"}
	r := NewResolver(store, testNamespace)

	got, err := r.Resolve(ctx, "0x8ba1f109551bD432803012645Ac136ddd64DBA72")
	require.NoError(t, err)
	assert.Equal(t, "user_cafe0123", got)
}

func TestResolver_DerivesAndPersists(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	r := NewResolver(store, testNamespace)
	addr := "0x8ba1f109551bD432803012645Ac136ddd64DBA72"

	got, err := r.Resolve(ctx, addr)
	require.NoError(t, err)

	want, err := Derive(addr, testNamespace)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, want, store.id)

	// A later resolve with a different rendering keeps the stored value.
	again, err := r.Resolve(ctx, strings.ToLower(addr))
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestResolver_Clear(t *testing.T) {
	ctx := context.Background()
	store := &memStore{id: "user_12345678"}
	r := NewResolver(store, testNamespace)

	require.NoError(t, r.Clear(ctx))
	assert.Empty(t, store.id)
}
