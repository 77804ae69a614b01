package quadtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestWithPreallocatedLevelsGrowsNodesBeforeInsert checks that
// WithPreallocatedLevels grows the node array at construction time, before
// any item is inserted.
func TestWithPreallocatedLevelsGrowsNodesBeforeInsert(t *testing.T) {
	without, err := New[int](1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, len(without.nodes))

	const n = 3
	with, err := New[int](1, 1, WithPreallocatedLevels(n))
	require.NoError(t, err)
	assert.Equal(t, levels[n]+(1<<uint(2*n)), len(with.nodes))

	clamped, err := New[int](1, 1, WithPreallocatedLevels(99))
	require.NoError(t, err)
	assert.Equal(t, FullCapacity, len(clamped.nodes))
}

// TestWithLoggerRoutesRecordsToScopedLogger checks that a Tree constructed
// with WithLogger emits its debug records through that logger instead of the
// package-level default.
func TestWithLoggerRoutesRecordsToScopedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	scoped := zap.New(core)

	tree, err := New[int](1, 1, WithLogger(scoped))
	require.NoError(t, err)

	tree.InsertChecked(1, BoundingBox[float32]{X0: 0, Y0: 0, X1: 1, Y1: 1}, nil)

	assert.Greater(t, logs.Len(), 0)
	assert.Equal(t, "quadtree: selected natural level", logs.All()[0].Message)
}

// TestSetLoggerRoutesRecordsToPackageLogger checks that SetLogger changes
// where records from a Tree constructed without WithLogger are emitted, and
// that passing nil restores the no-op default.
func TestSetLoggerRoutesRecordsToPackageLogger(t *testing.T) {
	defer SetLogger(nil)

	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))

	tree, err := New[int](1, 1)
	require.NoError(t, err)
	tree.InsertChecked(1, BoundingBox[float32]{X0: 0, Y0: 0, X1: 1, Y1: 1}, nil)

	assert.Greater(t, logs.Len(), 0)

	SetLogger(nil)
	assert.NotPanics(t, func() {
		tree2, err := New[int](1, 1)
		require.NoError(t, err)
		tree2.InsertChecked(2, BoundingBox[float32]{X0: 0, Y0: 0, X1: 1, Y1: 1}, nil)
	})
}
