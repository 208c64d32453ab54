package crypto

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword(context.Background(), "s3cret", MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, ComparePassword(hash, "s3cret"))
	assert.False(t, ComparePassword(hash, "S3cret"))
	assert.False(t, ComparePassword("not a hash", "s3cret"))
}

func TestHashPasswordTooLong(t *testing.T) {
	_, err := HashPassword(context.Background(), strings.Repeat("x", 100), MinCost)
	assert.Error(t, err)
}
