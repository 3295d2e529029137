package utils

import (
    "testing"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
    tok, err := NewAccessToken("secret", 7, "CUSTOMER", 5)
    require.NoError(t, err)
    require.NotEmpty(t, tok.Token)

    parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte("secret"), nil
    })
    require.NoError(t, err)
    require.True(t, parsed.Valid)

    claims := parsed.Claims.(jwt.MapClaims)
    assert.Equal(t, float64(7), claims["sub"])
    assert.Equal(t, "CUSTOMER", claims["role"])
}

func TestRefreshTokenHashing(t *testing.T) {
    a, err := NewRefreshToken(30)
    require.NoError(t, err)
    b, err := NewRefreshToken(30)
    require.NoError(t, err)

    assert.Len(t, a.Raw, 96)
    assert.NotEqual(t, a.Raw, b.Raw)

    assert.Equal(t, HashRefreshRaw(a.Raw), HashRefreshRaw(a.Raw))
    assert.NotEqual(t, HashRefreshRaw(a.Raw), HashRefreshRaw(b.Raw))
    assert.Len(t, HashRefreshRaw(a.Raw), 64)
}

func TestPasswordHashing(t *testing.T) {
    hash, err := HashPassword("hunter2", 4)
    require.NoError(t, err)
    assert.True(t, VerifyPassword(hash, "hunter2"))
    assert.False(t, VerifyPassword(hash, "hunter3"))
}
