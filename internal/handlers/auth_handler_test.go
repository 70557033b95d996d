package handlers

import (
	"encoding/json"
	"testing"

	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/internal/services"
	xhttp "github.com/skserveur/storefront/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		svc := new(MockAuthService)
		handler := NewAuthHandler(svc)

		body, _ := json.Marshal(model.RegisterRequest{
			Username: "amadou", Email: "a@example.com", Password: "longenough", Password2: "longenough",
		})

		svc.On("Register", mock.Anything, mock.MatchedBy(func(p model.RegisterRequest) bool {
			return p.Username == "amadou"
		})).Return(&model.User{ID: 1, Username: "amadou"}, nil)

		ctx := setupTestContext("POST", "/api/v1/auth/register", body)
		handler.Register(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("password mismatch maps to 400", func(t *testing.T) {
		svc := new(MockAuthService)
		handler := NewAuthHandler(svc)

		body, _ := json.Marshal(model.RegisterRequest{Username: "a", Password: "x", Password2: "y"})
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, services.ErrPasswordMismatch)

		ctx := setupTestContext("POST", "/api/v1/auth/register", body)
		handler.Register(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("blank username maps to 400", func(t *testing.T) {
		svc := new(MockAuthService)
		handler := NewAuthHandler(svc)

		body, _ := json.Marshal(model.RegisterRequest{Password: "longenough", Password2: "longenough"})
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, services.ErrUsernameRequired)

		ctx := setupTestContext("POST", "/api/v1/auth/register", body)
		handler.Register(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("invalid JSON", func(t *testing.T) {
		handler := NewAuthHandler(new(MockAuthService))

		ctx := setupTestContext("POST", "/api/v1/auth/register", []byte("not json"))
		handler.Register(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns user and token", func(t *testing.T) {
		svc := new(MockAuthService)
		handler := NewAuthHandler(svc)

		body, _ := json.Marshal(model.LoginRequest{Username: "amadou", Password: "longenough"})
		svc.On("Login", mock.Anything, mock.Anything).
			Return(&model.User{ID: 1}, "token-1", nil)

		ctx := setupTestContext("POST", "/api/v1/auth/login", body)
		handler.Login(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var resp loginResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
		assert.Equal(t, "token-1", resp.Token)
	})

	t.Run("bad credentials map to 401", func(t *testing.T) {
		svc := new(MockAuthService)
		handler := NewAuthHandler(svc)

		body, _ := json.Marshal(model.LoginRequest{Username: "amadou", Password: "wrong"})
		svc.On("Login", mock.Anything, mock.Anything).
			Return(nil, "", services.ErrInvalidCredentials)

		ctx := setupTestContext("POST", "/api/v1/auth/login", body)
		handler.Login(ctx)

		assert.Equal(t, 401, ctx.Response.StatusCode())
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("rejects missing session", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Authenticate", mock.Anything, "").Return(nil, services.ErrInvalidCredentials)
		m := NewAuthMiddleware(auth)

		called := false
		h := m.Require(func(ctx *xhttp.RequestCtx) { called = true })

		ctx := setupTestContext("GET", "/api/v1/dashboard", nil)
		h(ctx)

		assert.False(t, called)
		assert.Equal(t, 401, ctx.Response.StatusCode())
	})

	t.Run("passes user through on valid token", func(t *testing.T) {
		auth := new(MockAuthenticator)
		user := &model.User{ID: 3}
		auth.On("Authenticate", mock.Anything, "tok").Return(user, nil)
		m := NewAuthMiddleware(auth)

		var seen *model.User
		h := m.Require(func(ctx *xhttp.RequestCtx) { seen = currentUser(ctx) })

		ctx := setupTestContext("GET", "/api/v1/dashboard", nil)
		ctx.Request.Header.Set("Authorization", "Bearer tok")
		h(ctx)

		assert.Equal(t, user, seen)
	})

	t.Run("admin gate blocks non-admins", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Authenticate", mock.Anything, "tok").Return(&model.User{ID: 3, IsAdmin: false}, nil)
		m := NewAuthMiddleware(auth)

		called := false
		h := m.RequireAdmin(func(ctx *xhttp.RequestCtx) { called = true })

		ctx := setupTestContext("GET", "/api/v1/admin/orders/pending", nil)
		ctx.Request.Header.Set("Authorization", "Bearer tok")
		h(ctx)

		assert.False(t, called)
		assert.Equal(t, 403, ctx.Response.StatusCode())
	})
}
