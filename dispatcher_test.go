package relay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type user struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// userDirectory is a fixed-content loader standing in for the object store.
type userDirectory map[string]string

func (d userDirectory) Load(ctx context.Context, localID string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, ok := d[localID]
	if !ok {
		return nil, ErrNodeNotFound
	}
	return &user{ID: ID{Local: localID, Tag: 2}, Name: name}, nil
}

const testUUID = "123e4567-e89b-12d3-a456-426614174000"

func testDispatcher(t *testing.T, opts ...Option) *Dispatcher {
	t.Helper()
	reg, err := NewRegistry(
		NodeType{Name: "Organization", Loader: noopLoader()},
		NodeType{Name: "User", Loader: userDirectory{testUUID: "Oscar"}},
	)
	require.NoError(t, err)

	disp, err := NewDispatcher(reg, opts...)
	require.NoError(t, err)
	return disp
}

// The concrete scenario: "User" at tag 2, canonical uuid
// 123e4567-e89b-12d3-a456-426614174000.
func TestGetResolvesNode(t *testing.T) {
	disp := testDispatcher(t)

	global := EncodeID(testUUID, 2)
	require.Equal(t, "123e4567e89b12d3a4564266141740002", global)

	node, err := disp.Get(context.Background(), global)
	require.NoError(t, err)
	require.NotNil(t, node)

	assert.Equal(t, "User", node.Type)
	assert.Equal(t, 2, node.Tag)

	u, ok := node.Value.(*user)
	require.True(t, ok, "Value is %T", node.Value)
	assert.Equal(t, "Oscar", u.Name)
	// The loader must receive the expanded canonical form, not the compact
	// wire form.
	assert.Equal(t, testUUID, u.ID.Local)
}

func TestGetRejectsMalformedID(t *testing.T) {
	disp := testDispatcher(t)

	for _, in := range []string{"", "short", "123e4567e89b12d3a45642661417400"} {
		node, err := disp.Get(context.Background(), in)
		assert.Nil(t, node)
		assert.ErrorIs(t, err, ErrMalformedID, "Get(%q)", in)
	}
}

func TestGetRejectsUnknownTag(t *testing.T) {
	disp := testDispatcher(t)
	compact := CompactUUID(testUUID)

	tests := []struct {
		name string
		tag  string
	}{
		{"out of range", "9"},
		{"empty remainder", ""},
		{"leading zero on valid tag", "02"},
		{"reserved unknown tag", "0"},
		{"non-numeric", "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := disp.Get(context.Background(), compact+tt.tag)
			assert.Nil(t, node)
			assert.ErrorIs(t, err, ErrUnknownTypeTag)
		})
	}
}

func TestGetPropagatesLoaderMiss(t *testing.T) {
	disp := testDispatcher(t)

	// Well-formed id, registered tag, but no such user.
	global := EncodeID("00000000-0000-0000-0000-000000000000", 2)
	node, err := disp.Get(context.Background(), global)
	assert.Nil(t, node)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestGetTreatsNilValueAsMiss(t *testing.T) {
	reg, err := NewRegistry(NodeType{
		Name: "User",
		Loader: LoaderFunc(func(ctx context.Context, localID string) (any, error) {
			return nil, nil
		}),
	})
	require.NoError(t, err)
	disp, err := NewDispatcher(reg)
	require.NoError(t, err)

	node, err := disp.Get(context.Background(), EncodeID(testUUID, 1))
	assert.Nil(t, node)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestGetPassesThroughLoaderFailure(t *testing.T) {
	storeDown := errors.New("store: connection refused")
	reg, err := NewRegistry(NodeType{
		Name: "User",
		Loader: LoaderFunc(func(ctx context.Context, localID string) (any, error) {
			return nil, storeDown
		}),
	})
	require.NoError(t, err)
	disp, err := NewDispatcher(reg)
	require.NoError(t, err)

	node, err := disp.Get(context.Background(), EncodeID(testUUID, 1))
	assert.Nil(t, node)
	assert.ErrorIs(t, err, storeDown)
	assert.NotErrorIs(t, err, ErrNodeNotFound)
}

func TestGetHonorsCancellation(t *testing.T) {
	disp := testDispatcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	node, err := disp.Get(ctx, EncodeID(testUUID, 2))
	assert.Nil(t, node)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDispatcherRequiresRegistry(t *testing.T) {
	_, err := NewDispatcher(nil)
	assert.ErrorIs(t, err, ErrInvalidRegistry)
}

func TestGetRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	disp := testDispatcher(t,
		WithTracerProvider(tp),
		WithMeterProvider(noop.NewMeterProvider()),
	)

	_, err := disp.Get(context.Background(), EncodeID(testUUID, 2))
	require.NoError(t, err)
	_, err = disp.Get(context.Background(), "short")
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	for _, span := range spans {
		assert.Equal(t, "relay.node.get", span.Name())
	}

	outcomes := make([]string, 0, 2)
	for _, span := range spans {
		for _, attr := range span.Attributes() {
			if attr.Key == attribute.Key("relay.outcome") {
				outcomes = append(outcomes, attr.Value.AsString())
			}
		}
	}
	assert.ElementsMatch(t, []string{"ok", "malformed_id"}, outcomes)
}
