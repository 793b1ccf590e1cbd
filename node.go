package relay

import "context"

// Loader resolves a local identifier to one type's concrete object. It is
// the single suspension point of a dispatch: implementations are typically
// I/O-bound against the object store and must honor ctx cancellation.
//
// A miss is signalled by returning an error wrapping ErrNodeNotFound; a nil
// value with a nil error is treated the same way. Any other error is the
// loader's own failure and is passed through to the caller of
// Dispatcher.Get. Retry policy, if any, belongs to the loader; the
// dispatcher never retries.
type Loader interface {
	Load(ctx context.Context, localID string) (any, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context, localID string) (any, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, localID string) (any, error) {
	return f(ctx, localID)
}

// NodeType declares one refetchable object type: its client-facing name and
// the loader capability that resolves its local identifiers. The position of
// a NodeType in the list handed to NewRegistry determines its tag.
type NodeType struct {
	// Name is the type name exposed to the host query layer (e.g. "User").
	Name string

	// Loader resolves local identifiers of this type.
	Loader Loader
}

// Node is the polymorphic dispatch result: exactly one registered type per
// possible Type value, with the concrete object in Value. Nodes are produced
// only by Dispatcher.Get; the host query layer switches on Type to serialize
// the value.
type Node struct {
	// Type is the registered type name the identifier resolved to.
	Type string

	// Tag is the type's registry tag, for callers that need to re-encode.
	Tag int

	// Value is the concrete object returned by the type's loader. Never nil
	// in a Node returned from Dispatcher.Get.
	Value any
}
