package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"github.com/packline/packline-backend/internal/httpctx"
)

// Middleware validates bearer tokens and stamps the request context with the
// caller's identity.
type Middleware struct {
	jwtKey []byte
}

func NewMiddleware(jwtSecret string) *Middleware {
	return &Middleware{jwtKey: []byte(jwtSecret)}
}

// RequireAuth rejects requests without a valid bearer token.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.parse(r)
		if err != nil {
			deny(w, http.StatusUnauthorized, "authentication required")
			return
		}
		ctx := httpctx.WithUser(r.Context(), claims.Subject, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests unless the token carries the admin role.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.parse(r)
		if err != nil {
			deny(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if claims.Role != "admin" {
			deny(w, http.StatusForbidden, "admin access required")
			return
		}
		ctx := httpctx.WithUser(r.Context(), claims.Subject, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) parse(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" || tokenString == header {
		return nil, jwt.NewValidationError("missing bearer token", jwt.ValidationErrorMalformed)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.NewValidationError("unexpected signing method", jwt.ValidationErrorSignatureInvalid)
		}
		return m.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorSignatureInvalid)
	}
	return claims, nil
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
