package requestid

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, FromContext(ctx))

	id := New()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	assert.Equal(t, id, FromContext(WithID(ctx, id)))
	assert.NotEqual(t, id, New())
}
