package identity

import "errors"

// Verification failures stay distinguishable so operators can tell a
// misconfigured project apart from expiry or garbage tokens. The HTTP
// layer collapses all of them to 401 and logs the specific reason.
var (
	ErrTokenExpired        = errors.New("identity: token expired")
	ErrTokenMalformed      = errors.New("identity: token malformed")
	ErrAudienceMismatch    = errors.New("identity: token audience does not match configured project")
	ErrProviderUnavailable = errors.New("identity: identity provider unavailable")

	// ErrUnaddressableIdentity rejects reconciliation when the verified
	// claims carry neither phone nor email.
	ErrUnaddressableIdentity = errors.New("identity: claims carry neither phone nor email")
)
