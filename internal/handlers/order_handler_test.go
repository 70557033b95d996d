package handlers

import (
	"encoding/json"
	"testing"

	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderHandler_Create(t *testing.T) {
	user := &model.User{ID: 9}

	t.Run("successful order creation", func(t *testing.T) {
		svc := new(MockOrderService)
		handler := NewOrderHandler(svc, new(MockProductFormService))

		body, _ := json.Marshal(createOrderRequest{Fields: map[string]string{
			"email":            "b@example.com",
			"service_username": "b01",
		}})

		svc.On("Create", mock.Anything, int64(9), mock.MatchedBy(func(p model.OrderCreateRequest) bool {
			return p.ProductType == model.ProductTypeLicence && p.ProductID == 3
		})).Return(&model.Order{ID: 1, Status: model.OrderStatusPending}, nil)

		ctx := setupAuthedContext("POST", "/api/v1/orders/licence/3", body, user)
		ctx.SetUserValue("type", "licence")
		ctx.SetUserValue("id", "3")
		handler.Create(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("insufficient funds returns 402 with funds redirect", func(t *testing.T) {
		svc := new(MockOrderService)
		handler := NewOrderHandler(svc, new(MockProductFormService))

		body, _ := json.Marshal(createOrderRequest{Fields: map[string]string{}})
		svc.On("Create", mock.Anything, int64(9), mock.Anything).
			Return(nil, services.ErrInsufficientFunds)

		ctx := setupAuthedContext("POST", "/api/v1/orders/licence/3", body, user)
		ctx.SetUserValue("type", "licence")
		ctx.SetUserValue("id", "3")
		handler.Create(ctx)

		assert.Equal(t, 402, ctx.Response.StatusCode())

		var resp map[string]string
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
		assert.Equal(t, "/api/v1/funds", resp["redirect"])
	})

	t.Run("missing fields listed in response", func(t *testing.T) {
		svc := new(MockOrderService)
		handler := NewOrderHandler(svc, new(MockProductFormService))

		body, _ := json.Marshal(createOrderRequest{Fields: map[string]string{}})
		svc.On("Create", mock.Anything, int64(9), mock.Anything).
			Return(nil, &services.FieldValidationError{Fields: []string{"email", "imei"}})

		ctx := setupAuthedContext("POST", "/api/v1/orders/service/3", body, user)
		ctx.SetUserValue("type", "service")
		ctx.SetUserValue("id", "3")
		handler.Create(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())

		var resp struct {
			Missing []string `json:"missing_fields"`
		}
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
		assert.Equal(t, []string{"email", "imei"}, resp.Missing)
	})

	t.Run("unknown product returns 404", func(t *testing.T) {
		svc := new(MockOrderService)
		handler := NewOrderHandler(svc, new(MockProductFormService))

		body, _ := json.Marshal(createOrderRequest{})
		svc.On("Create", mock.Anything, int64(9), mock.Anything).
			Return(nil, services.ErrNotFound)

		ctx := setupAuthedContext("POST", "/api/v1/orders/licence/404", body, user)
		ctx.SetUserValue("type", "licence")
		ctx.SetUserValue("id", "404")
		handler.Create(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})
}

func TestOrderHandler_Form(t *testing.T) {
	user := &model.User{ID: 9}

	t.Run("returns product and field schema", func(t *testing.T) {
		catalog := new(MockProductFormService)
		handler := NewOrderHandler(new(MockOrderService), catalog)

		product := &model.Product{Type: model.ProductTypeImeiService, ID: 3, Name: "iCloud Unlock", Price: 7500}
		fields := model.FieldSet{
			{Name: "email", ValueType: "email", Required: true, Builtin: true},
			{Name: "imei", ValueType: "text", Required: true, Builtin: true},
		}
		catalog.On("GetProduct", mock.Anything, model.ProductTypeImeiService, int64(3)).Return(product, nil)
		catalog.On("FieldsFor", mock.Anything, product).Return(fields, nil)

		ctx := setupAuthedContext("GET", "/api/v1/orders/service/3/form", nil, user)
		ctx.SetUserValue("type", "service")
		ctx.SetUserValue("id", "3")
		handler.Form(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var resp orderFormResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
		assert.Equal(t, "iCloud Unlock", resp.Product.Name)
		require.Len(t, resp.Fields, 2)
	})

	t.Run("non-numeric id returns 404", func(t *testing.T) {
		handler := NewOrderHandler(new(MockOrderService), new(MockProductFormService))

		ctx := setupAuthedContext("GET", "/api/v1/orders/service/abc/form", nil, user)
		ctx.SetUserValue("type", "service")
		ctx.SetUserValue("id", "abc")
		handler.Form(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})
}

func TestAdminHandler_Batch(t *testing.T) {
	admin := &model.User{ID: 1, IsAdmin: true}

	t.Run("approve orders returns per-row outcomes", func(t *testing.T) {
		svc := new(MockAdminService)
		handler := NewAdminHandler(svc, nil, nil)

		body, _ := json.Marshal(batchRequest{IDs: []int64{1, 2}})
		svc.On("ApproveOrders", mock.Anything, []int64{1, 2}).Return([]model.BatchResult{
			{ID: 1, Applied: true},
			{ID: 2, Applied: false, Reason: "not pending"},
		})

		ctx := setupAuthedContext("POST", "/api/v1/admin/orders/approve", body, admin)
		handler.ApproveOrders(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var resp batchResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
		assert.Equal(t, 1, resp.Applied)
		require.Len(t, resp.Results, 2)
		assert.False(t, resp.Results[1].Applied)
	})

	t.Run("empty ids rejected", func(t *testing.T) {
		svc := new(MockAdminService)
		handler := NewAdminHandler(svc, nil, nil)

		body, _ := json.Marshal(batchRequest{})
		ctx := setupAuthedContext("POST", "/api/v1/admin/orders/approve", body, admin)
		handler.ApproveOrders(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "ApproveOrders", mock.Anything, mock.Anything)
	})
}

func TestAdminHandler_PaymentConfigs(t *testing.T) {
	admin := &model.User{ID: 1, IsAdmin: true}

	t.Run("updating a missing row returns 404", func(t *testing.T) {
		payments := new(MockAdminPaymentService)
		handler := NewAdminHandler(nil, nil, payments)

		payments.On("Update", mock.Anything, mock.Anything).Return(services.ErrNotFound)

		body, _ := json.Marshal(model.PaymentConfig{Method: model.MethodWave, Number: "+221770000001"})
		ctx := setupAuthedContext("PUT", "/api/v1/admin/payment-configs/404", body, admin)
		ctx.SetUserValue("id", "404")
		handler.UpdatePaymentConfig(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})

	t.Run("duplicate method returns 400", func(t *testing.T) {
		payments := new(MockAdminPaymentService)
		handler := NewAdminHandler(nil, nil, payments)

		payments.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrMethodTaken)

		body, _ := json.Marshal(model.PaymentConfig{Method: model.MethodWave, Number: "+221770000001"})
		ctx := setupAuthedContext("POST", "/api/v1/admin/payment-configs", body, admin)
		handler.CreatePaymentConfig(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("unknown method rejected before the service", func(t *testing.T) {
		payments := new(MockAdminPaymentService)
		handler := NewAdminHandler(nil, nil, payments)

		body, _ := json.Marshal(model.PaymentConfig{Method: "cash", Number: "+221770000001"})
		ctx := setupAuthedContext("POST", "/api/v1/admin/payment-configs", body, admin)
		handler.CreatePaymentConfig(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
