package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/skserveur/storefront/internal/model"
	xhttp "github.com/skserveur/storefront/pkg/http"
)

type AdminService interface {
	ListPendingOrders(ctx context.Context) ([]*model.Order, error)
	ListPendingTopups(ctx context.Context) ([]*model.Transaction, error)
	ApproveOrders(ctx context.Context, ids []int64) []model.BatchResult
	RejectOrders(ctx context.Context, ids []int64) []model.BatchResult
	ApproveTopups(ctx context.Context, ids []int64) []model.BatchResult
	RejectTopups(ctx context.Context, ids []int64) []model.BatchResult
}

type AdminCatalogService interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	CreateLicence(ctx context.Context, l *model.Licence) (*model.Licence, error)
	UpdateLicence(ctx context.Context, l *model.Licence) error
	DeleteLicence(ctx context.Context, id int64) error

	CreateImeiService(ctx context.Context, s *model.ImeiService) (*model.ImeiService, error)
	UpdateImeiService(ctx context.Context, s *model.ImeiService) error
	DeleteImeiService(ctx context.Context, id int64) error

	CreateGeneralService(ctx context.Context, s *model.GeneralService) (*model.GeneralService, error)
	UpdateGeneralService(ctx context.Context, s *model.GeneralService) error
	DeleteGeneralService(ctx context.Context, id int64) error

	ListCustomFields(ctx context.Context) ([]*model.CustomField, error)
	CreateCustomField(ctx context.Context, f *model.CustomField) (*model.CustomField, error)
	UpdateCustomField(ctx context.Context, f *model.CustomField) error
	DeleteCustomField(ctx context.Context, id int64) error
}

type AdminPaymentService interface {
	List(ctx context.Context) ([]*model.PaymentConfig, error)
	Create(ctx context.Context, pc *model.PaymentConfig) (*model.PaymentConfig, error)
	Update(ctx context.Context, pc *model.PaymentConfig) error
	Delete(ctx context.Context, id int64) error
}

type AdminHandler struct {
	svc      AdminService
	catalog  AdminCatalogService
	payments AdminPaymentService
}

func NewAdminHandler(adminService AdminService, catalogService AdminCatalogService, paymentService AdminPaymentService) *AdminHandler {
	return &AdminHandler{
		svc:      adminService,
		catalog:  catalogService,
		payments: paymentService,
	}
}

func RegisterAdminRoutes(e *router.Group, h *AdminHandler, m *AuthMiddleware) {
	admin := e.Group("/admin")

	admin.GET("/orders/pending", m.RequireAdmin(h.ListPendingOrders))
	admin.POST("/orders/approve", m.RequireAdmin(h.ApproveOrders))
	admin.POST("/orders/reject", m.RequireAdmin(h.RejectOrders))

	admin.GET("/topups/pending", m.RequireAdmin(h.ListPendingTopups))
	admin.POST("/topups/approve", m.RequireAdmin(h.ApproveTopups))
	admin.POST("/topups/reject", m.RequireAdmin(h.RejectTopups))

	admin.GET("/categories", m.RequireAdmin(h.ListCategories))
	admin.POST("/categories", m.RequireAdmin(h.CreateCategory))
	admin.PUT("/categories/{id}", m.RequireAdmin(h.UpdateCategory))
	admin.DELETE("/categories/{id}", m.RequireAdmin(h.DeleteCategory))

	admin.POST("/licences", m.RequireAdmin(h.CreateLicence))
	admin.PUT("/licences/{id}", m.RequireAdmin(h.UpdateLicence))
	admin.DELETE("/licences/{id}", m.RequireAdmin(h.DeleteLicence))

	admin.POST("/imei-services", m.RequireAdmin(h.CreateImeiService))
	admin.PUT("/imei-services/{id}", m.RequireAdmin(h.UpdateImeiService))
	admin.DELETE("/imei-services/{id}", m.RequireAdmin(h.DeleteImeiService))

	admin.POST("/general-services", m.RequireAdmin(h.CreateGeneralService))
	admin.PUT("/general-services/{id}", m.RequireAdmin(h.UpdateGeneralService))
	admin.DELETE("/general-services/{id}", m.RequireAdmin(h.DeleteGeneralService))

	admin.GET("/custom-fields", m.RequireAdmin(h.ListCustomFields))
	admin.POST("/custom-fields", m.RequireAdmin(h.CreateCustomField))
	admin.PUT("/custom-fields/{id}", m.RequireAdmin(h.UpdateCustomField))
	admin.DELETE("/custom-fields/{id}", m.RequireAdmin(h.DeleteCustomField))

	admin.GET("/payment-configs", m.RequireAdmin(h.ListPaymentConfigs))
	admin.POST("/payment-configs", m.RequireAdmin(h.CreatePaymentConfig))
	admin.PUT("/payment-configs/{id}", m.RequireAdmin(h.UpdatePaymentConfig))
	admin.DELETE("/payment-configs/{id}", m.RequireAdmin(h.DeletePaymentConfig))
}

type batchRequest struct {
	IDs []int64 `json:"ids"`
}

type batchResponse struct {
	Results []model.BatchResult `json:"results"`
	Applied int                 `json:"applied"`
}

func (h *AdminHandler) readBatch(ctx *xhttp.RequestCtx) ([]int64, bool) {
	var req batchRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return nil, false
	}
	if len(req.IDs) == 0 {
		writeError(ctx, xhttp.StatusBadRequest, "ids are required")
		return nil, false
	}
	return req.IDs, true
}

func writeBatch(ctx *xhttp.RequestCtx, results []model.BatchResult) {
	writeJSON(ctx, xhttp.StatusOK, batchResponse{
		Results: results,
		Applied: model.AppliedCount(results),
	})
}

func (h *AdminHandler) ListPendingOrders(ctx *xhttp.RequestCtx) {
	orders, err := h.svc.ListPendingOrders(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string][]*model.Order{"items": orders})
}

func (h *AdminHandler) ApproveOrders(ctx *xhttp.RequestCtx) {
	ids, ok := h.readBatch(ctx)
	if !ok {
		return
	}
	writeBatch(ctx, h.svc.ApproveOrders(ctx, ids))
}

func (h *AdminHandler) RejectOrders(ctx *xhttp.RequestCtx) {
	ids, ok := h.readBatch(ctx)
	if !ok {
		return
	}
	writeBatch(ctx, h.svc.RejectOrders(ctx, ids))
}

func (h *AdminHandler) ListPendingTopups(ctx *xhttp.RequestCtx) {
	topups, err := h.svc.ListPendingTopups(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string][]*model.Transaction{"items": topups})
}

func (h *AdminHandler) ApproveTopups(ctx *xhttp.RequestCtx) {
	ids, ok := h.readBatch(ctx)
	if !ok {
		return
	}
	writeBatch(ctx, h.svc.ApproveTopups(ctx, ids))
}

func (h *AdminHandler) RejectTopups(ctx *xhttp.RequestCtx) {
	ids, ok := h.readBatch(ctx)
	if !ok {
		return
	}
	writeBatch(ctx, h.svc.RejectTopups(ctx, ids))
}

func (h *AdminHandler) ListCategories(ctx *xhttp.RequestCtx) {
	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string][]*model.Category{"items": categories})
}

func (h *AdminHandler) CreateCategory(ctx *xhttp.RequestCtx) {
	var c model.Category
	if err := readJSON(ctx, &c); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	created, err := h.catalog.CreateCategory(ctx, &c)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *AdminHandler) UpdateCategory(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusNotFound, "not found")
		return
	}
	var c model.Category
	if err := readJSON(ctx, &c); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	c.ID = id
	if err := h.catalog.UpdateCategory(ctx, &c); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, c)
}

func (h *AdminHandler) DeleteCategory(ctx *xhttp.RequestCtx) {
	h.deleteByID(ctx, h.catalog.DeleteCategory)
}

func (h *AdminHandler) CreateLicence(ctx *xhttp.RequestCtx) {
	var l model.Licence
	if err := readJSON(ctx, &l); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	created, err := h.catalog.CreateLicence(ctx, &l)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *AdminHandler) UpdateLicence(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusNotFound, "not found")
		return
	}
	var l model.Licence
	if err := readJSON(ctx, &l); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	l.ID = id
	if err := h.catalog.UpdateLicence(ctx, &l); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, l)
}

func (h *AdminHandler) DeleteLicence(ctx *xhttp.RequestCtx) {
	h.deleteByID(ctx, h.catalog.DeleteLicence)
}

func (h *AdminHandler) CreateImeiService(ctx *xhttp.RequestCtx) {
	var s model.ImeiService
	if err := readJSON(ctx, &s); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	created, err := h.catalog.CreateImeiService(ctx, &s)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *AdminHandler) UpdateImeiService(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusNotFound, "not found")
		return
	}
	var s model.ImeiService
	if err := readJSON(ctx, &s); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	s.ID = id
	if err := h.catalog.UpdateImeiService(ctx, &s); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, s)
}

func (h *AdminHandler) DeleteImeiService(ctx *xhttp.RequestCtx) {
	h.deleteByID(ctx, h.catalog.DeleteImeiService)
}

func (h *AdminHandler) CreateGeneralService(ctx *xhttp.RequestCtx) {
	var s model.GeneralService
	if err := readJSON(ctx, &s); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	created, err := h.catalog.CreateGeneralService(ctx, &s)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *AdminHandler) UpdateGeneralService(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusNotFound, "not found")
		return
	}
	var s model.GeneralService
	if err := readJSON(ctx, &s); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	s.ID = id
	if err := h.catalog.UpdateGeneralService(ctx, &s); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, s)
}

func (h *AdminHandler) DeleteGeneralService(ctx *xhttp.RequestCtx) {
	h.deleteByID(ctx, h.catalog.DeleteGeneralService)
}

func (h *AdminHandler) ListCustomFields(ctx *xhttp.RequestCtx) {
	fields, err := h.catalog.ListCustomFields(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string][]*model.CustomField{"items": fields})
}

func (h *AdminHandler) CreateCustomField(ctx *xhttp.RequestCtx) {
	var f model.CustomField
	if err := readJSON(ctx, &f); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	created, err := h.catalog.CreateCustomField(ctx, &f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *AdminHandler) UpdateCustomField(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusNotFound, "not found")
		return
	}
	var f model.CustomField
	if err := readJSON(ctx, &f); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	f.ID = id
	if err := h.catalog.UpdateCustomField(ctx, &f); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, f)
}

func (h *AdminHandler) DeleteCustomField(ctx *xhttp.RequestCtx) {
	h.deleteByID(ctx, h.catalog.DeleteCustomField)
}

func (h *AdminHandler) ListPaymentConfigs(ctx *xhttp.RequestCtx) {
	configs, err := h.payments.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string][]*model.PaymentConfig{"items": configs})
}

func (h *AdminHandler) CreatePaymentConfig(ctx *xhttp.RequestCtx) {
	var pc model.PaymentConfig
	if err := readJSON(ctx, &pc); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if !pc.Method.IsValid() {
		writeError(ctx, xhttp.StatusBadRequest, "unknown payment method")
		return
	}
	created, err := h.payments.Create(ctx, &pc)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *AdminHandler) UpdatePaymentConfig(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusNotFound, "not found")
		return
	}
	var pc model.PaymentConfig
	if err := readJSON(ctx, &pc); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if !pc.Method.IsValid() {
		writeError(ctx, xhttp.StatusBadRequest, "unknown payment method")
		return
	}
	pc.ID = id
	if err := h.payments.Update(ctx, &pc); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, pc)
}

func (h *AdminHandler) DeletePaymentConfig(ctx *xhttp.RequestCtx) {
	h.deleteByID(ctx, h.payments.Delete)
}

func (h *AdminHandler) deleteByID(ctx *xhttp.RequestCtx, del func(ctx context.Context, id int64) error) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusNotFound, "not found")
		return
	}
	if err := del(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "deleted"})
}
