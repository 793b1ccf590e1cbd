package relay

import (
	"fmt"
	"strconv"
)

// Registry is the immutable, ordered catalogue of refetchable node types.
// It is built once at startup from an ordered type list and never mutated
// afterward, so the read path needs no locking. Each type's tag is its
// 1-based position in the list; tag strings are the minimal decimal form of
// the tag with no padding or leading zeros.
//
// Tags are part of the registry's identity: they must stay stable for the
// lifetime of every identifier already issued. Reordering the declaration
// list changes every existing tag and is a breaking change; append new types
// at the end only.
type Registry struct {
	types  []NodeType
	tags   []string       // minimal decimal tag strings, parallel to types
	byName map[string]int // type name -> index into types
}

// NewRegistry builds a registry from the ordered type list. Position 0 of
// the conceptual tag space is TagUnknown and is never assigned; the first
// entry gets tag 1.
//
// Returns ErrInvalidRegistry if the list is empty, a type has an empty name
// or nil loader, or a name appears twice.
func NewRegistry(types ...NodeType) (*Registry, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: no node types", ErrInvalidRegistry)
	}

	r := &Registry{
		types:  make([]NodeType, len(types)),
		tags:   make([]string, len(types)),
		byName: make(map[string]int, len(types)),
	}
	for i, nt := range types {
		if nt.Name == "" {
			return nil, fmt.Errorf("%w: node type at position %d has no name", ErrInvalidRegistry, i)
		}
		if nt.Loader == nil {
			return nil, fmt.Errorf("%w: node type %q has no loader", ErrInvalidRegistry, nt.Name)
		}
		if _, dup := r.byName[nt.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate node type %q", ErrInvalidRegistry, nt.Name)
		}
		r.types[i] = nt
		r.tags[i] = strconv.Itoa(i + 1)
		r.byName[nt.Name] = i
	}
	return r, nil
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.types)
}

// Types returns the registered types in declaration order. The slice is a
// copy; mutating it does not affect the registry.
func (r *Registry) Types() []NodeType {
	out := make([]NodeType, len(r.types))
	copy(out, r.types)
	return out
}

// TagFor returns the tag assigned to the named type, or false if the name is
// not registered.
func (r *Registry) TagFor(name string) (int, bool) {
	i, ok := r.byName[name]
	if !ok {
		return TagUnknown, false
	}
	return i + 1, true
}

// Lookup resolves a decoded tag string to its node type by exact string
// equality against the registered tag strings, in registry order. The input
// is never parsed as an integer: a remainder with leading zeros or other
// non-minimal formatting fails lookup even when numerically equal to a valid
// tag, since the encode side always emits minimal decimal form.
func (r *Registry) Lookup(tag string) (NodeType, bool) {
	nt, _, ok := r.lookupTag(tag)
	return nt, ok
}

// lookupTag is Lookup plus the integer tag, for wrapping dispatch results.
func (r *Registry) lookupTag(tag string) (NodeType, int, bool) {
	for i, ts := range r.tags {
		if ts == tag {
			return r.types[i], i + 1, true
		}
	}
	return NodeType{}, TagUnknown, false
}

// GlobalID encodes a global identifier for the named type. It fails if the
// name is not registered; it panics, like EncodeID, if local is not a
// canonical UUID form of at least 36 characters.
func (r *Registry) GlobalID(name, local string) (string, error) {
	tag, ok := r.TagFor(name)
	if !ok {
		return "", fmt.Errorf("%w: no registered type %q", ErrUnknownTypeTag, name)
	}
	return EncodeID(local, tag), nil
}

// IDFor returns the ID value for the named type, for embedding in domain
// objects. Same failure modes as GlobalID, minus the encode (deferred to
// serialization time).
func (r *Registry) IDFor(name, local string) (ID, error) {
	tag, ok := r.TagFor(name)
	if !ok {
		return ID{}, fmt.Errorf("%w: no registered type %q", ErrUnknownTypeTag, name)
	}
	return ID{Local: local, Tag: tag}, nil
}
