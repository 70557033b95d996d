package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/internal/services"
	xhttp "github.com/skserveur/storefront/pkg/http"
)

type CatalogBrowseService interface {
	Browse(ctx context.Context, q string) (*model.Catalog, error)
}

type DashboardService interface {
	Get(ctx context.Context, userID int64, q string) (*services.Dashboard, error)
}

type CatalogHandler struct {
	svc       CatalogBrowseService
	dashboard DashboardService
}

func NewCatalogHandler(catalogService CatalogBrowseService, dashboardService DashboardService) *CatalogHandler {
	return &CatalogHandler{
		svc:       catalogService,
		dashboard: dashboardService,
	}
}

func RegisterCatalogRoutes(e *router.Group, h *CatalogHandler, m *AuthMiddleware) {
	e.GET("/catalog", h.Browse)
	e.GET("/dashboard", m.Require(h.Dashboard))
}

// Browse is public: anyone can read the catalog, with an optional ?q= search.
func (h *CatalogHandler) Browse(ctx *xhttp.RequestCtx) {
	catalog, err := h.svc.Browse(ctx, query(ctx, "q"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, catalog)
}

func (h *CatalogHandler) Dashboard(ctx *xhttp.RequestCtx) {
	user := currentUser(ctx)

	dashboard, err := h.dashboard.Get(ctx, user.ID, query(ctx, "q"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, dashboard)
}
