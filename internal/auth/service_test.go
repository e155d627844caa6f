package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simwarga/pkg/domainerr"
)

func newTestService(t *testing.T) (*Service, *InMemoryStore, *InMemoryTRL) {
	t.Helper()
	store := NewInMemoryStore()
	tokens := NewTokenService("test-signing-key", time.Hour)
	trl := NewInMemoryTRL()
	return NewService(store, tokens, trl), store, trl
}

func seedUser(t *testing.T, svc *Service, username, password string, role Role) {
	t.Helper()
	require.NoError(t, svc.EnsureUser(context.Background(), username, password, role))
}

func TestLogin_Success(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	seedUser(t, svc, "pak-rt", "rahasia123", RoleKetuaRT)

	result, err := svc.Login(ctx, "pak-rt", "rahasia123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, int64(3600), result.ExpiresIn)
	assert.Equal(t, "pak-rt", result.Username)
	assert.Equal(t, RoleKetuaRT, result.Role)
}

func TestLogin_BadCredentialsAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	seedUser(t, svc, "pak-rt", "rahasia123", RoleKetuaRT)

	_, err := svc.Login(ctx, "pak-rt", "salah")
	require.Error(t, err)
	_, err2 := svc.Login(ctx, "tidak-ada", "rahasia123")
	require.Error(t, err2)

	assert.Equal(t, err.Error(), err2.Error())
	assert.True(t, domainerr.Is(err, domainerr.CodeUnauthorized))
	assert.True(t, domainerr.Is(err2, domainerr.CodeUnauthorized))
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "", "rahasia123")
	require.Error(t, err)
	assert.True(t, domainerr.Is(err, domainerr.CodeBadRequest))

	_, err = svc.Login(context.Background(), "pak-rt", "")
	require.Error(t, err)
	assert.True(t, domainerr.Is(err, domainerr.CodeBadRequest))
}

func TestTokenRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	seedUser(t, svc, "admin", "admin-pass", RoleAdminSistem)

	result, err := svc.Login(ctx, "admin", "admin-pass")
	require.NoError(t, err)

	claims, err := svc.tokens.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, string(RoleAdminSistem), claims.Role)
	assert.NotEmpty(t, claims.JTI)
	assert.NotEmpty(t, claims.UserID)
}

func TestValidateToken_RejectsGarbageAndWrongKey(t *testing.T) {
	tokens := NewTokenService("key-one", time.Hour)
	other := NewTokenService("key-two", time.Hour)

	_, err := tokens.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.True(t, domainerr.Is(err, domainerr.CodeUnauthorized))

	signed, err := other.Generate(&User{Username: "admin", Role: RoleAdminSistem})
	require.NoError(t, err)
	_, err = tokens.ValidateToken(signed)
	require.Error(t, err)
	assert.True(t, domainerr.Is(err, domainerr.CodeUnauthorized))
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, _, trl := newTestService(t)
	ctx := context.Background()
	seedUser(t, svc, "pak-rw", "rahasia123", RoleKetuaRW)

	result, err := svc.Login(ctx, "pak-rw", "rahasia123")
	require.NoError(t, err)

	claims, err := svc.tokens.ValidateToken(result.Token)
	require.NoError(t, err)

	revoked, err := trl.IsRevoked(ctx, claims.JTI)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.Logout(ctx, result.Token))

	revoked, err = trl.IsRevoked(ctx, claims.JTI)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogout_RejectsInvalidToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Logout(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, domainerr.Is(err, domainerr.CodeUnauthorized))
}

func TestEnsureUser_Idempotent(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureUser(ctx, "admin", "first-pass", RoleAdminSistem))
	first, err := store.FindByUsername(ctx, "admin")
	require.NoError(t, err)

	// Second boot with a different password must not replace the account.
	require.NoError(t, svc.EnsureUser(ctx, "admin", "second-pass", RoleAdminSistem))
	second, err := store.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.PasswordHash, second.PasswordHash)
}

func TestEnsureUser_SkipsWhenUnconfigured(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureUser(ctx, "", "", RoleAdminSistem))
	_, err := store.FindByUsername(ctx, "admin")
	require.Error(t, err)
}

func TestEnsureUser_RejectsUnknownRole(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.EnsureUser(context.Background(), "admin", "pass", Role("superuser"))
	require.Error(t, err)
	assert.True(t, domainerr.Is(err, domainerr.CodeBadRequest))
}

func TestInMemoryTRL_ExpiryLapses(t *testing.T) {
	trl := NewInMemoryTRL()
	ctx := context.Background()

	require.NoError(t, trl.Revoke(ctx, "jti-1", -time.Second))
	revoked, err := trl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "an entry past its expiry no longer counts as revoked")
}
