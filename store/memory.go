package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store for tests, examples and single-process
// deployments. Objects are held in a map keyed by (type, local id); values
// are copied on the way in and out so callers cannot alias store state.
//
// Thread-safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]map[string]any // key: nodeType + "/" + localID
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]map[string]any),
	}
}

func memoryKey(nodeType, localID string) string {
	return nodeType + "/" + localID
}

// Get returns the object stored for the given type and local identifier.
func (m *MemoryStore) Get(ctx context.Context, nodeType, localID string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[memoryKey(nodeType, localID)]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, nodeType, localID)
	}
	return copyObject(obj), nil
}

// Put stores an object under an existing local identifier.
func (m *MemoryStore) Put(ctx context.Context, nodeType, localID string, obj map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[memoryKey(nodeType, localID)] = copyObject(obj)
	return nil
}

// Create stores a new object, minting a fresh UUID local identifier for it.
func (m *MemoryStore) Create(ctx context.Context, nodeType string, obj map[string]any) (string, error) {
	localID := uuid.NewString()
	if err := m.Put(ctx, nodeType, localID, obj); err != nil {
		return "", err
	}
	return localID, nil
}

// Delete removes the object. Deleting a missing object is a no-op.
func (m *MemoryStore) Delete(ctx context.Context, nodeType, localID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, memoryKey(nodeType, localID))
	return nil
}

// copyObject makes a shallow copy of an object's property map.
func copyObject(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	return out
}
