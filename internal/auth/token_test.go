package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junalkadhav/library-management/internal/domain"
)

func TestTokenIssueVerifyRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 10)

	token, exp, err := tm.Issue("ada@example.com", "user-1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(10*time.Hour), exp, time.Minute)

	identity, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, domain.RoleAdmin, identity.Role)
}

func TestTokenVerifyRejectsExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Hour}

	token, _, err := tm.Issue("ada@example.com", "user-1", domain.RoleUser)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.Error(t, err)
}

func TestTokenVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 10)
	verifier := NewTokenManager("secret-b", 10)

	token, _, err := issuer.Issue("ada@example.com", "user-1", domain.RoleUser)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestTokenVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 10)

	_, err := tm.Verify("not-a-token")
	assert.Error(t, err)
}
