package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/internal/services"
	"github.com/skserveur/storefront/internal/session"
	xhttp "github.com/skserveur/storefront/pkg/http"
)

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeRedirectError mirrors the screens that redirected instead of erroring:
// the JSON body carries the page the client should land on.
func writeRedirectError(ctx *xhttp.RequestCtx, status int, msg, redirect string) {
	writeJSON(ctx, status, map[string]string{"error": msg, "redirect": redirect})
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func pathInt64(ctx *xhttp.RequestCtx, name string) (int64, error) {
	v, _ := ctx.UserValue(name).(string)
	return strconv.ParseInt(v, 10, 64)
}

func pathString(ctx *xhttp.RequestCtx, name string) string {
	v, _ := ctx.UserValue(name).(string)
	return v
}

// writeServiceError maps service sentinel errors onto HTTP statuses. Unmapped
// errors become a 500 without leaking internals.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	var vErr *services.FieldValidationError

	switch {
	case errors.As(err, &vErr):
		writeJSON(ctx, xhttp.StatusBadRequest, map[string]any{
			"error":          "missing required fields",
			"missing_fields": vErr.Fields,
		})
	case errors.Is(err, services.ErrInsufficientFunds):
		writeRedirectError(ctx, xhttp.StatusPaymentRequired, "insufficient funds", "/api/v1/funds")
	case errors.Is(err, services.ErrNotFound):
		writeError(ctx, xhttp.StatusNotFound, "not found")
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrMethodTaken),
		errors.Is(err, services.ErrInvalidOwner),
		errors.Is(err, services.ErrInvalidProduct),
		errors.Is(err, services.ErrUnknownValueType):
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(ctx, xhttp.StatusUnauthorized, err.Error())
	case errors.Is(err, session.ErrSessionNotFound):
		writeError(ctx, xhttp.StatusUnauthorized, "not authenticated")
	default:
		writeError(ctx, xhttp.StatusInternalServerError, "internal error")
	}
}

// sessionToken pulls the token from the Authorization header, an explicit
// session header, or the session cookie, in that order.
func sessionToken(ctx *xhttp.RequestCtx) string {
	if auth := string(ctx.Request.Header.Peek("Authorization")); auth != "" {
		if strings.HasPrefix(auth, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		}
	}
	if v := string(ctx.Request.Header.Peek("X-Session-Token")); v != "" {
		return v
	}
	return string(ctx.Request.Header.Cookie("session"))
}

const userCtxKey = "authUser"

// currentUser returns the user attached by the auth middleware.
func currentUser(ctx *xhttp.RequestCtx) *model.User {
	u, _ := ctx.UserValue(userCtxKey).(*model.User)
	return u
}

// Authenticator resolves a session token into a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}
