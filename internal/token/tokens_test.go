package token

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokens_GetRequestMetadata(t *testing.T) {
	md, err := NewTokens("secret").GetRequestMetadata(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]string{"authorization": "Bearer secret"}, md)

	md, err = NewTokens("").GetRequestMetadata(context.Background())
	require.NoError(t, err)
	require.Empty(t, md)

	require.False(t, NewTokens("secret").RequireTransportSecurity())
	require.True(t, NewTokens("secret").WithTransportSecurity().RequireTransportSecurity())
}

func TestValid(t *testing.T) {
	require.True(t, Valid([]string{"Bearer secret"}, "secret"))
	require.True(t, Valid([]string{"Bearer other", "Bearer secret"}, "secret"))
	require.False(t, Valid([]string{"Bearer other"}, "secret"))
	require.False(t, Valid([]string{"secret"}, "secret"))
	require.False(t, Valid(nil, "secret"))
}
