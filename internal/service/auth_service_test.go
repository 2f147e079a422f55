package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsefeed/pulsefeed/config"
)

func authCfg() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour, CookieName: "token"}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.users, authCfg())
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3cret", user.Password, "password must be stored hashed")

	sub, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sub)

	_, _, err = svc.Register(ctx, "alice", "", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, loginToken, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)

	_, _, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.users, authCfg())

	_, err := svc.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	other := NewAuthService(f.users, config.AuthConfig{JWTSecret: "other-secret", TokenTTL: time.Hour})
	_, token, err := other.Register(context.Background(), "bob", "", "pw")
	require.NoError(t, err)
	_, err = svc.ParseToken(token)
	assert.Error(t, err, "token signed with another secret must fail")
}
