package types

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))

	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
}
