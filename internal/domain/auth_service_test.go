package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceDisabled(t *testing.T) {
	auth := NewAuthService("", "")
	assert.False(t, auth.Enabled())

	ok, err := auth.ValidateToken(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = auth.Login(context.Background(), "anything")
	assert.Error(t, err)
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService("s3cret", "hunter2")
	assert.True(t, auth.Enabled())

	_, err := auth.Login(ctx, "wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	token, err := auth.Login(ctx, "hunter2")
	require.NoError(t, err)
	assert.Len(t, token, 64)

	ok, _ := auth.ValidateToken(ctx, token)
	assert.True(t, ok)

	ok, _ = auth.ValidateToken(ctx, "forged")
	assert.False(t, ok)

	other := NewAuthService("other", "hunter2")
	ok, _ = other.ValidateToken(ctx, token)
	assert.False(t, ok)
}
