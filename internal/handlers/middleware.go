package handlers

import (
	xhttp "github.com/skserveur/storefront/pkg/http"
)

// AuthMiddleware guards routes behind a live session. Require attaches the
// resolved user to the request context, RequireAdmin additionally checks the
// admin flag.
type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) Require(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		user, err := m.auth.Authenticate(ctx, sessionToken(ctx))
		if err != nil {
			writeRedirectError(ctx, xhttp.StatusUnauthorized, "not authenticated", "/api/v1/auth/login")
			return
		}
		ctx.SetUserValue(userCtxKey, user)
		next(ctx)
	}
}

func (m *AuthMiddleware) RequireAdmin(next xhttp.RequestHandler) xhttp.RequestHandler {
	return m.Require(func(ctx *xhttp.RequestCtx) {
		if user := currentUser(ctx); user == nil || !user.IsAdmin {
			writeError(ctx, xhttp.StatusForbidden, "admin access required")
			return
		}
		next(ctx)
	})
}
