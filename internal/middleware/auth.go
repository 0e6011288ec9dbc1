package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/routr/backend/internal/service"
)

// SessionCookie is the cookie the login endpoint sets; it carries the same
// token as the Authorization header.
const SessionCookie = "routr_session"

// TokenParser verifies a bearer token. *service.AuthService satisfies it.
type TokenParser interface {
	ParseToken(token string) (service.Claims, error)
}

// Principal is the authenticated caller.
type Principal struct {
	UserID  uuid.UUID
	IsStaff bool
}

type ctxKey int

const (
	principalKey ctxKey = iota
	holderKey
)

// principalHolder lets outer middleware (the request logger) see who the
// request was authenticated as once the inner chain has run.
type principalHolder struct {
	p   Principal
	set bool
}

func withPrincipalHolder(ctx context.Context, h *principalHolder) context.Context {
	return context.WithValue(ctx, holderKey, h)
}

// PrincipalFrom returns the caller stored by RequireAuth.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	if h, ok := ctx.Value(holderKey).(*principalHolder); ok {
		h.p, h.set = p, true
	}
	return context.WithValue(ctx, principalKey, p)
}

// RequireAuth rejects requests without a valid token with 401. The token is
// read from "Authorization: Bearer <token>" first, then from SessionCookie.
func RequireAuth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				writeUnauthorized(w, "authentication required")
				return
			}
			claims, err := tokens.ParseToken(raw)
			if err != nil {
				writeUnauthorized(w, "invalid or expired token")
				return
			}
			id, err := uuid.Parse(claims.Subject)
			if err != nil {
				writeUnauthorized(w, "invalid or expired token")
				return
			}
			ctx := WithPrincipal(r.Context(), Principal{UserID: id, IsStaff: claims.IsStaff})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="routr"`)
	writeError(w, http.StatusUnauthorized, "unauthorized", msg)
}

// writeError answers in the same {"error": {...}} shape the handlers use.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": msg},
	})
}
