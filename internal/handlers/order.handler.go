package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/skserveur/storefront/internal/model"
	xhttp "github.com/skserveur/storefront/pkg/http"
)

type OrderService interface {
	Create(ctx context.Context, userID int64, p model.OrderCreateRequest) (*model.Order, error)
	Get(ctx context.Context, userID, orderID int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, status model.OrderStatus) ([]*model.Order, error)
}

type ProductFormService interface {
	GetProduct(ctx context.Context, productType model.ProductType, id int64) (*model.Product, error)
	FieldsFor(ctx context.Context, p *model.Product) (model.FieldSet, error)
}

type OrderHandler struct {
	svc     OrderService
	catalog ProductFormService
}

func NewOrderHandler(orderService OrderService, catalogService ProductFormService) *OrderHandler {
	return &OrderHandler{
		svc:     orderService,
		catalog: catalogService,
	}
}

func RegisterOrderRoutes(e *router.Group, h *OrderHandler, m *AuthMiddleware) {
	e.GET("/orders", m.Require(h.List))
	e.GET("/orders/{id}", m.Require(h.Get))
	e.GET("/orders/{type}/{id}/form", m.Require(h.Form))
	e.POST("/orders/{type}/{id}", m.Require(h.Create))
}

type orderFormResponse struct {
	Product *model.Product `json:"product"`
	Fields  model.FieldSet `json:"fields"`
}

type createOrderRequest struct {
	Fields map[string]string `json:"fields"`
}

// Form describes the product and the fields its order form must collect. The
// same field set validates the submission, so the form can never drift from
// what Create accepts.
func (h *OrderHandler) Form(ctx *xhttp.RequestCtx) {
	productType := model.ProductType(pathString(ctx, "type"))
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusNotFound, "not found")
		return
	}

	product, err := h.catalog.GetProduct(ctx, productType, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	fields, err := h.catalog.FieldsFor(ctx, product)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, orderFormResponse{Product: product, Fields: fields})
}

func (h *OrderHandler) Create(ctx *xhttp.RequestCtx) {
	user := currentUser(ctx)

	productType := model.ProductType(pathString(ctx, "type"))
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusNotFound, "not found")
		return
	}

	var req createOrderRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	created, err := h.svc.Create(ctx, user.ID, model.OrderCreateRequest{
		ProductType: productType,
		ProductID:   id,
		Fields:      req.Fields,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *OrderHandler) Get(ctx *xhttp.RequestCtx) {
	user := currentUser(ctx)

	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusNotFound, "not found")
		return
	}

	order, err := h.svc.Get(ctx, user.ID, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, order)
}

func (h *OrderHandler) List(ctx *xhttp.RequestCtx) {
	user := currentUser(ctx)

	status := model.OrderStatus(query(ctx, "status"))
	orders, err := h.svc.ListByUser(ctx, user.ID, status)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string][]*model.Order{"items": orders})
}
