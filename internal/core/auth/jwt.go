package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"estatedesk/internal/domain"
)

// SessionClaims is what downstream authenticated routes see. No password
// or provider secrets are ever embedded.
type SessionClaims struct {
	UID      string `json:"uid"`
	UserType string `json:"userType"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// JWTer mints and parses signed session tokens. Sessions expire after a
// fixed TTL (7 days by default) and are rejected afterwards.
type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

const DefaultSessionTTL = 7 * 24 * time.Hour

func (j *JWTer) Issue(u *domain.User) (string, error) {
	now := time.Now()
	ttl := j.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	claims := SessionClaims{
		UID:      u.ID,
		UserType: u.UserType,
		Email:    u.EmailValue(),
		Phone:    u.PhoneValue(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTer) Parse(tokenStr string) (*SessionClaims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(60*time.Second))

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*SessionClaims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}
