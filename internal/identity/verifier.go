package identity

import (
	"context"
	"strings"
	"time"

	fbauth "firebase.google.com/go/auth"
	"go.uber.org/zap"
)

// Claims is the verified identity extracted from a provider token.
type Claims struct {
	SubjectID string
	Email     string
	Phone     string
	Name      string
}

// TokenVerifier validates an opaque bearer token and extracts claims.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Claims, error)
}

// FirebaseVerifier verifies provider ID tokens against the configured
// project. Verification is pure apart from a best-effort read-only
// hydration lookup when the token omits email or display name.
type FirebaseVerifier struct {
	Cfg     ProviderConfig
	Log     *zap.Logger
	Timeout time.Duration // defaults to 10s
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Claims, error) {
	timeout := v.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := providerClient(ctx, v.Cfg)
	if err != nil {
		v.Log.Error("identity provider init failed", zap.Error(err))
		return nil, ErrProviderUnavailable
	}

	tok, err := client.VerifyIDToken(ctx, idToken)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrProviderUnavailable
		}
		return nil, classifyVerifyError(err)
	}
	if v.Cfg.ProjectID != "" && tok.Audience != v.Cfg.ProjectID {
		return nil, ErrAudienceMismatch
	}

	claims := &Claims{SubjectID: tok.UID}
	if s, ok := tok.Claims["email"].(string); ok {
		claims.Email = s
	}
	if s, ok := tok.Claims["phone_number"].(string); ok {
		claims.Phone = s
	}
	if s, ok := tok.Claims["name"].(string); ok {
		claims.Name = s
	}

	if claims.Email == "" || claims.Name == "" {
		v.hydrate(ctx, client, claims)
	}
	return claims, nil
}

// hydrate fills missing email/name from the provider's user record.
// Failure here is not fatal; the token claims already suffice.
func (v *FirebaseVerifier) hydrate(ctx context.Context, client *fbauth.Client, claims *Claims) {
	rec, err := client.GetUser(ctx, claims.SubjectID)
	if err != nil {
		v.Log.Warn("claims hydration failed",
			zap.String("subject", claims.SubjectID), zap.Error(err))
		return
	}
	if claims.Email == "" {
		claims.Email = rec.Email
	}
	if claims.Name == "" {
		claims.Name = rec.DisplayName
	}
	if claims.Phone == "" {
		claims.Phone = rec.PhoneNumber
	}
}

// classifyVerifyError maps the SDK's string-typed failures onto the
// package's error taxonomy.
func classifyVerifyError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "expired"):
		return ErrTokenExpired
	case strings.Contains(msg, "aud") && strings.Contains(msg, "claim"),
		strings.Contains(msg, "audience"),
		strings.Contains(msg, "project"):
		return ErrAudienceMismatch
	case strings.Contains(msg, "malformed"),
		strings.Contains(msg, "decode"),
		strings.Contains(msg, "parse"),
		strings.Contains(msg, "must be a non-empty string"),
		strings.Contains(msg, "incorrect number of segments"),
		strings.Contains(msg, "signature"):
		return ErrTokenMalformed
	case strings.Contains(msg, "certificate"),
		strings.Contains(msg, "network"),
		strings.Contains(msg, "unavailable"),
		strings.Contains(msg, "timeout"):
		return ErrProviderUnavailable
	default:
		return ErrTokenMalformed
	}
}
