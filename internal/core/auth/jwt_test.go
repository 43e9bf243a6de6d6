package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatedesk/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "u-1",
		Name:     "Asha",
		Email:    domain.NullableStr("a@example.com"),
		Phone:    domain.NullableStr("+919876543210"),
		UserType: "seller",
	}
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "estatedesk"}

	tok, err := j.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UID)
	assert.Equal(t, "seller", c.UserType)
	assert.Equal(t, "a@example.com", c.Email)
	assert.Equal(t, "+919876543210", c.Phone)
	assert.Equal(t, "u-1", c.Subject)
}

func TestSessionExpiryDefaultsToSevenDays(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "estatedesk"}

	tok, err := j.Issue(testUser())
	require.NoError(t, err)
	c, err := j.Parse(tok)
	require.NoError(t, err)

	want := time.Now().Add(DefaultSessionTTL)
	assert.WithinDuration(t, want, c.ExpiresAt.Time, time.Minute)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "estatedesk"}
	tok, err := j.Issue(testUser())
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("someone-else"), Issuer: "estatedesk"}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "estatedesk"}
	tok, err := j.Issue(testUser())
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("test-secret"), Issuer: "other-app"}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestClaimsCarryNoSecrets(t *testing.T) {
	u := testUser()
	u.PasswordHash = "$2a$10$abcdefghijklmnopqrstuv"
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "estatedesk"}

	tok, err := j.Issue(u)
	require.NoError(t, err)
	assert.NotContains(t, tok, u.PasswordHash)
}
