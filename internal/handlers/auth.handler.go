package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/skserveur/storefront/internal/model"
	xhttp "github.com/skserveur/storefront/pkg/http"
)

type AuthService interface {
	Register(ctx context.Context, p model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, p model.LoginRequest) (*model.User, string, error)
	Logout(token string) error
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		svc: authService,
	}
}

func RegisterAuthRoutes(e *router.Group, h *AuthHandler, m *AuthMiddleware) {
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/logout", m.Require(h.Logout))
}

type loginResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (h *AuthHandler) Register(ctx *xhttp.RequestCtx) {
	var req model.RegisterRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	user, err := h.svc.Register(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, user)
}

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	var req model.LoginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	user, token, err := h.svc.Login(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, loginResponse{User: user, Token: token})
}

func (h *AuthHandler) Logout(ctx *xhttp.RequestCtx) {
	if err := h.svc.Logout(sessionToken(ctx)); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "logged out"})
}
