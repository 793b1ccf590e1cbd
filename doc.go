// Package relay implements global object identification for graph-style
// query APIs.
//
// Every object exposed through the API carries a single opaque string
// identifier that is unique across all object types. The identifier encodes
// the object's UUID-format local identifier together with a positive integer
// type tag, and can be handed back to a single generic entry point
// (Dispatcher.Get) to refetch the originating object regardless of its type.
//
// # Identifier Format
//
// A global identifier is the compact (hyphen-free) form of the canonical
// 36-character UUID followed by the type tag in minimal decimal form:
//
//	123e4567-e89b-12d3-a456-426614174000 + tag 2
//	-> 123e4567e89b12d3a456426614174000 + "2"
//	-> "123e4567e89b12d3a4564261141740002"
//
// The compact prefix is always exactly 32 characters, so the tag occupies
// everything after byte 32. Identifiers are derived on demand when an object
// crosses the API boundary and are never persisted.
//
// Clients must treat the string as fully opaque. It is not signed or
// encrypted; opacity is a convention, not a security guarantee.
//
// # Type Tags
//
// Tags are assigned by declaration order in the Registry, starting at 1.
// Tag 0 (TagUnknown) is a reserved sentinel and is never assigned or
// dispatched. Because the position in the type list is the sole determinant
// of a tag, reordering or inserting into an existing list invalidates every
// previously issued identifier for types after the change point. Append new
// types at the end, never insert.
//
// # Usage
//
// Build a registry from an ordered list of node types, each with a loader
// that resolves a local identifier to the concrete object:
//
//	reg, err := relay.NewRegistry(
//	    relay.NodeType{Name: "User", Loader: userLoader},
//	    relay.NodeType{Name: "Organization", Loader: orgLoader},
//	)
//
//	disp, err := relay.NewDispatcher(reg)
//
//	node, err := disp.Get(ctx, globalID)
//	if err != nil {
//	    // errors.Is against ErrMalformedID, ErrUnknownTypeTag,
//	    // ErrNodeNotFound distinguishes the miss, or map all three
//	    // to a null result.
//	}
//
// The config subpackage loads the ordered type list from YAML files or etcd;
// the store subpackage provides loader implementations backed by an
// in-process map or Redis.
package relay
