package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/golang-jwt/jwt"
)

type ownerKey struct{}

// AnonymousOwner is used when a request carries no identity at all.
const AnonymousOwner = "anonymous"

var ownerPattern = regexp.MustCompile(`^[A-Za-z0-9._@-]{1,128}$`)

// IdentityMiddleware resolves who owns the session collections touched by a
// request: the "sub" claim of a bearer JWT, else the X-Client-ID header, else
// AnonymousOwner. The token is not verified; it only partitions demo data.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := ownerFromRequest(r)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerKey{}, owner)))
	})
}

// OwnerFromContext returns the owner resolved by IdentityMiddleware.
func OwnerFromContext(ctx context.Context) string {
	if owner, ok := ctx.Value(ownerKey{}).(string); ok && owner != "" {
		return owner
	}
	return AnonymousOwner
}

func ownerFromRequest(r *http.Request) string {
	if sub, err := SubjectFromAuthorization(r.Header.Get("Authorization")); err == nil && ownerPattern.MatchString(sub) {
		return sub
	}
	if id := strings.TrimSpace(r.Header.Get("X-Client-ID")); ownerPattern.MatchString(id) {
		return id
	}
	return AnonymousOwner
}

// SubjectFromAuthorization extracts the sub claim of a "Bearer <jwt>" header.
func SubjectFromAuthorization(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errMissingAuthorization
	}

	jwtString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if jwtString == "" || jwtString == authHeader {
		return "", errInvalidAuthorization
	}

	token, _, err := new(jwt.Parser).ParseUnverified(jwtString, jwt.MapClaims{})
	if err != nil {
		return "", errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errMissingSubject
	}
	return sub, nil
}

type identityError string

func (e identityError) Error() string { return string(e) }

const (
	errMissingAuthorization identityError = "missing Authorization header"
	errInvalidAuthorization identityError = "invalid Authorization header"
	errInvalidToken         identityError = "invalid JWT format"
	errMissingSubject       identityError = "missing sub in token"
)
