package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVerifyError(t *testing.T) {
	cases := []struct {
		msg  string
		want error
	}{
		{"ID token has expired at: 1724800000", ErrTokenExpired},
		{"ID token has invalid 'aud' (audience) claim", ErrAudienceMismatch},
		{"project ID mismatch", ErrAudienceMismatch},
		{"failed to parse token: malformed jwt", ErrTokenMalformed},
		{"incorrect number of segments", ErrTokenMalformed},
		{"id token must be a non-empty string", ErrTokenMalformed},
		{"failed to verify token signature", ErrTokenMalformed},
		{"failed to fetch certificate from remote server", ErrProviderUnavailable},
		{"network error while calling google", ErrProviderUnavailable},
		{"service unavailable", ErrProviderUnavailable},
		{"something nobody anticipated", ErrTokenMalformed},
	}
	for _, tc := range cases {
		assert.ErrorIs(t, classifyVerifyError(errors.New(tc.msg)), tc.want, "msg=%q", tc.msg)
	}
}
