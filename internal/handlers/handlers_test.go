package handlers

import (
	"context"

	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/internal/services"
	xhttp "github.com/skserveur/storefront/pkg/http"
	"github.com/stretchr/testify/mock"
	"github.com/valyala/fasthttp"
)

func setupTestContext(method, path string, body []byte) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

// setupAuthedContext pre-attaches a user the way the auth middleware would.
func setupAuthedContext(method, path string, body []byte, user *model.User) *xhttp.RequestCtx {
	ctx := setupTestContext(method, path, body)
	ctx.SetUserValue(userCtxKey, user)
	return ctx
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, p model.RegisterRequest) (*model.User, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, p model.LoginRequest) (*model.User, string, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, userID int64, p model.OrderCreateRequest) (*model.Order, error) {
	args := m.Called(ctx, userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ListByUser(ctx context.Context, userID int64, status model.OrderStatus) ([]*model.Order, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Order), args.Error(1)
}

type MockProductFormService struct {
	mock.Mock
}

func (m *MockProductFormService) GetProduct(ctx context.Context, productType model.ProductType, id int64) (*model.Product, error) {
	args := m.Called(ctx, productType, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductFormService) FieldsFor(ctx context.Context, p *model.Product) (model.FieldSet, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.FieldSet), args.Error(1)
}

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) Overview(ctx context.Context, userID int64) (*services.FundsOverview, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.FundsOverview), args.Error(1)
}

func (m *MockWalletService) Topup(ctx context.Context, userID int64, p model.TopupRequest) (*model.Transaction, error) {
	args := m.Called(ctx, userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

type MockAdminPaymentService struct {
	mock.Mock
}

func (m *MockAdminPaymentService) List(ctx context.Context) ([]*model.PaymentConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PaymentConfig), args.Error(1)
}

func (m *MockAdminPaymentService) Create(ctx context.Context, pc *model.PaymentConfig) (*model.PaymentConfig, error) {
	args := m.Called(ctx, pc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentConfig), args.Error(1)
}

func (m *MockAdminPaymentService) Update(ctx context.Context, pc *model.PaymentConfig) error {
	args := m.Called(ctx, pc)
	return args.Error(0)
}

func (m *MockAdminPaymentService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListPendingOrders(ctx context.Context) ([]*model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Order), args.Error(1)
}

func (m *MockAdminService) ListPendingTopups(ctx context.Context) ([]*model.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transaction), args.Error(1)
}

func (m *MockAdminService) ApproveOrders(ctx context.Context, ids []int64) []model.BatchResult {
	args := m.Called(ctx, ids)
	return args.Get(0).([]model.BatchResult)
}

func (m *MockAdminService) RejectOrders(ctx context.Context, ids []int64) []model.BatchResult {
	args := m.Called(ctx, ids)
	return args.Get(0).([]model.BatchResult)
}

func (m *MockAdminService) ApproveTopups(ctx context.Context, ids []int64) []model.BatchResult {
	args := m.Called(ctx, ids)
	return args.Get(0).([]model.BatchResult)
}

func (m *MockAdminService) RejectTopups(ctx context.Context, ids []int64) []model.BatchResult {
	args := m.Called(ctx, ids)
	return args.Get(0).([]model.BatchResult)
}
