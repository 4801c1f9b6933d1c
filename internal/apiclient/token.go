package apiclient

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NormalizeToken cleans a bearer token as it may have been stored or
// pasted: surrounding whitespace and quotes, a "Bearer " prefix, or a JSON
// object holding the token under token, accessToken or authToken.
// It returns "" when nothing usable remains.
func NormalizeToken(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "{") {
		var obj map[string]any
		if err := json.Unmarshal([]byte(s), &obj); err == nil {
			for _, k := range []string{"token", "accessToken", "authToken"} {
				if v, ok := obj[k].(string); ok && strings.TrimSpace(v) != "" {
					return stripBearer(strings.TrimSpace(v))
				}
			}
			return ""
		}
	}
	s = strings.Trim(s, `"`)
	return stripBearer(s)
}

func stripBearer(s string) string {
	if strings.HasPrefix(s, "Bearer ") {
		return strings.TrimSpace(s[len("Bearer "):])
	}
	return s
}

// TokenExpiry reads the exp claim of a JWT without verifying its
// signature. The console never trusts the claims for authorization; it
// only caps the session lifetime. ok is false for opaque tokens.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	nd, err := claims.GetExpirationTime()
	if err != nil || nd == nil {
		return time.Time{}, false
	}
	return nd.Time, true
}
