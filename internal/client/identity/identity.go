// Package identity derives the application's stable user identifier from a
// wallet address. Derivation is a pure function; Resolver layers the
// stored-value-wins rule on top so an identifier, once persisted for a
// session, is never replaced by a freshly derived one.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Prefix tags every derived identifier.
const Prefix = "user_"

// ErrNoAddress is returned when there is no wallet address to derive from.
// The caller must already hold a stored identifier, or prompt for one.
var ErrNoAddress = errors.New("no wallet address to derive from")

// Store persists the single resolved identifier for the session.
// An absent identifier reads as the empty string, not an error.
type Store interface {
	Identifier(ctx context.Context) (string, error)
	SetIdentifier(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// Derive maps a checksummed wallet address to its identifier: a version-5
// UUID of the address within namespace, truncated to the first 8 hex
// characters and tagged with Prefix. Deterministic and side-effect free.
func Derive(address string, namespace uuid.UUID) (string, error) {
	if strings.TrimSpace(address) == "" {
		return "", ErrNoAddress
	}
	id := uuid.NewSHA1(namespace, []byte(address))
	return Prefix + id.String()[:8], nil
}

// Resolver resolves the session identifier for an address.
type Resolver struct {
	store     Store
	namespace uuid.UUID
}

func NewResolver(store Store, namespace uuid.UUID) *Resolver {
	return &Resolver{store: store, namespace: namespace}
}

// Resolve returns the stored identifier when one exists, otherwise derives
// one from address and persists it. Reconnecting with a differently formatted
// rendering of the same account therefore never churns the identifier.
func (r *Resolver) Resolve(ctx context.Context, address string) (string, error) {
	stored, err := r.store.Identifier(ctx)
	if err != nil {
		return "", err
	}
	if stored != "" {
		return stored, nil
	}

	derived, err := Derive(address, r.namespace)
	if err != nil {
		return "", err
	}
	if err := r.store.SetIdentifier(ctx, derived); err != nil {
		return "", err
	}
	return derived, nil
}

// Clear removes the stored identifier.
func (r *Resolver) Clear(ctx context.Context) error {
	return r.store.Clear(ctx)
}
