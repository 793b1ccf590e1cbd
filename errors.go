package relay

import "errors"

// Sentinel errors for dispatch misses. All three represent recoverable
// "absent result" outcomes; the host query layer typically maps any of them
// to a null node. Use errors.Is() to distinguish them.
var (
	// ErrMalformedID indicates a global identifier shorter than the fixed
	// 32-character compact prefix. Returned by DecodeID and propagated by
	// Dispatcher.Get.
	//
	// Example:
	//	node, err := disp.Get(ctx, id)
	//	if errors.Is(err, relay.ErrMalformedID) {
	//	    // client sent garbage; respond with a null node
	//	}
	ErrMalformedID = errors.New("relay: malformed global id")

	// ErrUnknownTypeTag indicates the tag portion of a decoded identifier
	// does not exactly match any registered type's tag string. A tag with
	// leading zeros or other non-minimal formatting fails lookup even when
	// numerically equal to a valid tag.
	ErrUnknownTypeTag = errors.New("relay: unknown type tag")

	// ErrNodeNotFound indicates the resolved type's loader found no object
	// for the decoded local identifier. Loaders signal a miss by returning
	// an error wrapping this sentinel (or a nil value with a nil error).
	ErrNodeNotFound = errors.New("relay: node not found")

	// ErrInvalidRegistry indicates the ordered type list supplied to
	// NewRegistry is unusable: empty, a type with no name or no loader, or
	// a duplicate type name.
	ErrInvalidRegistry = errors.New("relay: invalid registry")
)
