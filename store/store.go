// Package store provides object store implementations of the relay loader
// contract. The dispatcher treats the store as an external collaborator;
// this package supplies an in-process store for tests and examples and a
// Redis-backed store for shared deployments, plus the adapter that turns a
// store into per-type relay loaders.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/graphline/relay"
)

// Common errors returned by store operations.
var (
	// ErrNotFound is returned when no object exists for the requested type
	// and local identifier.
	ErrNotFound = errors.New("store: object not found")

	// ErrInvalidObject is returned when an object cannot be stored, e.g.
	// it does not serialize.
	ErrInvalidObject = errors.New("store: invalid object")
)

// Store is a type-scoped object store. Local identifiers are canonical
// 36-character UUID strings minted by Create; identity is scoped to one node
// type's domain.
type Store interface {
	// Get returns the object stored for the given type and local
	// identifier, or ErrNotFound.
	Get(ctx context.Context, nodeType, localID string) (map[string]any, error)

	// Put stores an object under an existing local identifier, replacing
	// any previous value.
	Put(ctx context.Context, nodeType, localID string, obj map[string]any) error

	// Create stores a new object, minting and returning a fresh local
	// identifier for it.
	Create(ctx context.Context, nodeType string, obj map[string]any) (string, error)

	// Delete removes the object. Deleting a missing object is a no-op.
	Delete(ctx context.Context, nodeType, localID string) error
}

// Loader adapts one node type's slice of a store to the relay loader
// contract. A store miss is translated to relay.ErrNodeNotFound so the
// dispatcher's absent-result path applies; other store errors pass through.
//
// Example:
//
//	reg, err := relay.NewRegistry(
//	    relay.NodeType{Name: "User", Loader: store.Loader(s, "User")},
//	    relay.NodeType{Name: "Organization", Loader: store.Loader(s, "Organization")},
//	)
func Loader(s Store, nodeType string) relay.Loader {
	return relay.LoaderFunc(func(ctx context.Context, localID string) (any, error) {
		obj, err := s.Get(ctx, nodeType, localID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("%w: %s %s", relay.ErrNodeNotFound, nodeType, localID)
			}
			return nil, err
		}
		return obj, nil
	})
}

// Loaders builds the loader map for a schema's type list, one type-scoped
// loader per name, for handing to config.Schema.Registry.
func Loaders(s Store, typeNames ...string) map[string]relay.Loader {
	out := make(map[string]relay.Loader, len(typeNames))
	for _, name := range typeNames {
		out[name] = Loader(s, name)
	}
	return out
}
