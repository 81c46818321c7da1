package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClientAlwaysAllows(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	for i := 0; i < 3; i++ {
		ok, err := CheckAndSet(ctx, nil, id, "action_submit", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ttl, err := TTL(ctx, nil, id, "action_submit")
	require.NoError(t, err)
	assert.Zero(t, ttl)
	assert.NoError(t, Clear(ctx, nil, id, "action_submit"))
}

func TestKeyFormat(t *testing.T) {
	id := uuid.MustParse("8f14e45f-ceea-467f-a8f2-1f6a2c3b9d10")
	assert.Equal(t, "rate_limit:user:8f14e45f-ceea-467f-a8f2-1f6a2c3b9d10:mission_submit", key(id, "mission_submit"))
}
