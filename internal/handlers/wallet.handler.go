package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/internal/services"
	xhttp "github.com/skserveur/storefront/pkg/http"
)

type WalletService interface {
	Overview(ctx context.Context, userID int64) (*services.FundsOverview, error)
	Topup(ctx context.Context, userID int64, p model.TopupRequest) (*model.Transaction, error)
}

type WalletHandler struct {
	svc WalletService
}

func NewWalletHandler(walletService WalletService) *WalletHandler {
	return &WalletHandler{
		svc: walletService,
	}
}

func RegisterWalletRoutes(e *router.Group, h *WalletHandler, m *AuthMiddleware) {
	e.GET("/funds", m.Require(h.Funds))
	e.POST("/funds/topup", m.Require(h.Topup))
}

func (h *WalletHandler) Funds(ctx *xhttp.RequestCtx) {
	user := currentUser(ctx)

	overview, err := h.svc.Overview(ctx, user.ID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, overview)
}

func (h *WalletHandler) Topup(ctx *xhttp.RequestCtx) {
	user := currentUser(ctx)

	var req model.TopupRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	created, err := h.svc.Topup(ctx, user.ID, req)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}
