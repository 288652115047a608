package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rutinasapp/rutinas-api/internal/domain"
)

func TestCurrentUser(t *testing.T) {
	t.Parallel()

	t.Run("round trips through the context", func(t *testing.T) {
		t.Parallel()
		stored := &domain.User{ID: 7, Username: "maria"}
		ctx := WithCurrentUser(context.Background(), stored)

		user, ok := CurrentUser(ctx)
		require.True(t, ok)
		assert.Equal(t, stored, user)
	})

	t.Run("missing user reports false", func(t *testing.T) {
		t.Parallel()
		user, ok := CurrentUser(context.Background())
		assert.False(t, ok)
		assert.Nil(t, user)
	})

	t.Run("nil user reports false", func(t *testing.T) {
		t.Parallel()
		ctx := WithCurrentUser(context.Background(), nil)
		_, ok := CurrentUser(ctx)
		assert.False(t, ok)
	})
}

func TestTraceID(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		ctx := SetTraceID(context.Background())

		traceID := GetTraceID(ctx)
		assert.Len(t, traceID, TraceIDLength*2)
	})

	t.Run("missing trace ID is empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, GetTraceID(context.Background()))
	})

	t.Run("trace IDs are unique", func(t *testing.T) {
		t.Parallel()
		first := GetTraceID(SetTraceID(context.Background()))
		second := GetTraceID(SetTraceID(context.Background()))
		assert.NotEqual(t, first, second)
	})
}
