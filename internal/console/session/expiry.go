package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiry decides a session's lifetime at login. Preference order: the
// token's own exp claim when it is a parseable JWT, then the token
// response's expires_in, then the configured fallback.
func tokenExpiry(token string, issuedAt time.Time, expiresIn int, fallback time.Duration) time.Time {
	if exp, ok := jwtExpiry(token); ok {
		return exp
	}
	if expiresIn > 0 {
		return issuedAt.Add(time.Duration(expiresIn) * time.Second)
	}
	return issuedAt.Add(fallback)
}

// jwtExpiry extracts the exp claim from a JWT access token without
// verifying the signature. The console is not the token's audience and has
// no key material; it only wants to stop presenting tokens the backend
// will reject anyway. Opaque (non-JWT) tokens return ok=false.
func jwtExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time.UTC(), true
}
