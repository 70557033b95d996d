package e2e

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/skserveur/storefront/internal/mailer"
	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/internal/repository"
	"github.com/skserveur/storefront/internal/services"
	"github.com/skserveur/storefront/internal/session"
	"github.com/skserveur/storefront/pkg/pg"
	xredis "github.com/skserveur/storefront/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testDB = pg.DB

// recordingNotifier captures outbound mail instead of delivering it.
type recordingNotifier struct {
	mu     sync.Mutex
	emails []*mailer.Email
}

func (n *recordingNotifier) Enqueue(email *mailer.Email) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, email)
}

func (n *recordingNotifier) all() []*mailer.Email {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*mailer.Email, len(n.emails))
	copy(out, n.emails)
	return out
}

type TestEnvironment struct {
	DB             *pg.DB
	Redis          *miniredis.Miniredis
	Sessions       *session.Store
	Notifier       *recordingNotifier
	UserRepo       *repository.UserRepository
	WalletRepo     *repository.WalletRepository
	AuthService    *services.AuthService
	CatalogService *services.CatalogService
	WalletService  *services.WalletService
	OrderService   *services.OrderService
	AdminService   *services.AdminService
}

func setupE2EEnvironment(t *testing.T) *TestEnvironment {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.UserEntity{},
		&repository.CategoryEntity{},
		&repository.LicenceEntity{},
		&repository.ImeiServiceEntity{},
		&repository.GeneralServiceEntity{},
		&repository.CustomFieldEntity{},
		&repository.WalletEntity{},
		&repository.TransactionEntity{},
		&repository.OrderEntity{},
		&repository.OrderFieldValueEntity{},
		&repository.HistoryEntity{},
		&repository.PaymentConfigEntity{},
	)
	require.NoError(t, err)

	pgDB := &testDB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Use unique connection name per test to avoid global adapter caching issues
	connName := fmt.Sprintf("test-%d", time.Now().UnixNano())
	redisAdapter, err := xredis.NewRedisAdapter(connName, "", &redis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	sessions := session.NewStore(redisAdapter, time.Hour)
	notifier := &recordingNotifier{}

	userRepo := repository.NewUserRepository(pgDB)
	catalogRepo := repository.NewCatalogRepository(pgDB)
	walletRepo := repository.NewWalletRepository(pgDB)
	transactionRepo := repository.NewTransactionRepository(pgDB)
	orderRepo := repository.NewOrderRepository(pgDB)
	historyRepo := repository.NewHistoryRepository(pgDB)
	paymentRepo := repository.NewPaymentConfigRepository(pgDB)

	catalogService := services.NewCatalogService(catalogRepo)

	return &TestEnvironment{
		DB:             pgDB,
		Redis:          mr,
		Sessions:       sessions,
		Notifier:       notifier,
		UserRepo:       userRepo,
		WalletRepo:     walletRepo,
		AuthService:    services.NewAuthService(userRepo, sessions),
		CatalogService: catalogService,
		WalletService:  services.NewWalletService(walletRepo, transactionRepo, paymentRepo),
		OrderService:   services.NewOrderService(orderRepo, walletRepo, catalogService, pgDB, notifier, "admin@example.com"),
		AdminService:   services.NewAdminService(orderRepo, transactionRepo, walletRepo, historyRepo, userRepo, pgDB, notifier),
	}
}

func (env *TestEnvironment) Cleanup() {
	if env.Redis != nil {
		env.Redis.Close()
	}
}

func (env *TestEnvironment) seedLicence(t *testing.T, ctx context.Context, price uint) *repository.LicenceEntity {
	category := &repository.CategoryEntity{Name: "unlocking"}
	require.NoError(t, env.DB.Write(ctx).Create(category).Error)

	licence := &repository.LicenceEntity{
		CategoryID: category.ID,
		Name:       "Sigma Pro Licence",
		Price:      price,
	}
	require.NoError(t, env.DB.Write(ctx).Create(licence).Error)
	return licence
}

func TestE2E_FullOrderLifecycle(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	user, err := env.AuthService.Register(ctx, model.RegisterRequest{
		Username:  "amadou",
		Email:     "amadou@example.com",
		Password:  "longenough",
		Password2: "longenough",
	})
	require.NoError(t, err)

	_, token, err := env.AuthService.Login(ctx, model.LoginRequest{
		Username: "amadou",
		Password: "longenough",
	})
	require.NoError(t, err)

	authed, err := env.AuthService.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	// declare a recharge and have the admin approve it
	txn, err := env.WalletService.Topup(ctx, user.ID, model.TopupRequest{
		Amount:    10000,
		Method:    model.MethodWave,
		Reference: "WV-123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TransactionStatusPending, txn.Status)

	balance, err := env.WalletService.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(0), balance)

	results := env.AdminService.ApproveTopups(ctx, []int64{txn.ID})
	require.Len(t, results, 1)
	assert.True(t, results[0].Applied)

	balance, err = env.WalletService.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(10000), balance)

	licence := env.seedLicence(t, ctx, 7500)

	order, err := env.OrderService.Create(ctx, user.ID, model.OrderCreateRequest{
		ProductType: model.ProductTypeLicence,
		ProductID:   licence.ID,
		Fields: map[string]string{
			"email":            "amadou@example.com",
			"service_username": "amadou01",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "Sigma Pro Licence", order.ProductName)
	assert.Equal(t, uint(7500), order.Price)

	balance, err = env.WalletService.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2500), balance)

	emails := env.Notifier.all()
	require.Len(t, emails, 1)
	assert.Equal(t, "admin@example.com", emails[0].To)

	orderResults := env.AdminService.ApproveOrders(ctx, []int64{order.ID})
	require.Len(t, orderResults, 1)
	assert.True(t, orderResults[0].Applied)

	updated, err := env.OrderService.Get(ctx, user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusSuccess, updated.Status)

	var history repository.HistoryEntity
	err = env.DB.Read(ctx).Where("user_id = ?", user.ID).First(&history).Error
	require.NoError(t, err)
	assert.Equal(t, "success", history.Outcome)
	assert.Equal(t, "Sigma Pro Licence", history.ServiceName)

	// buyer gets the outcome mail
	emails = env.Notifier.all()
	require.Len(t, emails, 2)
	assert.Equal(t, "amadou@example.com", emails[1].To)
}

func TestE2E_InsufficientFunds(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	user, err := env.AuthService.Register(ctx, model.RegisterRequest{
		Username:  "broke",
		Email:     "broke@example.com",
		Password:  "longenough",
		Password2: "longenough",
	})
	require.NoError(t, err)

	licence := env.seedLicence(t, ctx, 5000)

	order, err := env.OrderService.Create(ctx, user.ID, model.OrderCreateRequest{
		ProductType: model.ProductTypeLicence,
		ProductID:   licence.ID,
		Fields: map[string]string{
			"email":            "broke@example.com",
			"service_username": "broke01",
		},
	})
	assert.ErrorIs(t, err, services.ErrInsufficientFunds)
	assert.Nil(t, order)

	var count int64
	env.DB.Read(ctx).Model(&repository.OrderEntity{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	assert.Empty(t, env.Notifier.all())
}

func TestE2E_MissingRequiredFields(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	user, err := env.AuthService.Register(ctx, model.RegisterRequest{
		Username:  "forgetful",
		Email:     "forgetful@example.com",
		Password:  "longenough",
		Password2: "longenough",
	})
	require.NoError(t, err)

	err = env.WalletRepo.Credit(ctx, user.ID, 10000)
	require.NoError(t, err)

	licence := env.seedLicence(t, ctx, 5000)

	order, err := env.OrderService.Create(ctx, user.ID, model.OrderCreateRequest{
		ProductType: model.ProductTypeLicence,
		ProductID:   licence.ID,
		Fields:      map[string]string{},
	})
	require.Error(t, err)
	assert.Nil(t, order)

	var fieldErr *services.FieldValidationError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, []string{"email", "service_username"}, fieldErr.Fields)

	// wallet untouched when validation fails
	balance, err := env.WalletService.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(10000), balance)
}

func TestE2E_RejectedOrderIsRefunded(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	user, err := env.AuthService.Register(ctx, model.RegisterRequest{
		Username:  "refundme",
		Email:     "refundme@example.com",
		Password:  "longenough",
		Password2: "longenough",
	})
	require.NoError(t, err)

	err = env.WalletRepo.Credit(ctx, user.ID, 8000)
	require.NoError(t, err)

	licence := env.seedLicence(t, ctx, 8000)

	order, err := env.OrderService.Create(ctx, user.ID, model.OrderCreateRequest{
		ProductType: model.ProductTypeLicence,
		ProductID:   licence.ID,
		Fields: map[string]string{
			"email":            "refundme@example.com",
			"service_username": "refundme01",
		},
	})
	require.NoError(t, err)

	balance, err := env.WalletService.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(0), balance)

	results := env.AdminService.RejectOrders(ctx, []int64{order.ID})
	require.Len(t, results, 1)
	assert.True(t, results[0].Applied)

	balance, err = env.WalletService.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(8000), balance)

	var history repository.HistoryEntity
	err = env.DB.Read(ctx).Where("user_id = ?", user.ID).First(&history).Error
	require.NoError(t, err)
	assert.Equal(t, "failure", history.Outcome)

	// rejecting again must not refund twice
	results = env.AdminService.RejectOrders(ctx, []int64{order.ID})
	require.Len(t, results, 1)
	assert.False(t, results[0].Applied)

	balance, err = env.WalletService.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(8000), balance)
}

func TestE2E_SessionLogout(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	_, err := env.AuthService.Register(ctx, model.RegisterRequest{
		Username:  "transient",
		Email:     "transient@example.com",
		Password:  "longenough",
		Password2: "longenough",
	})
	require.NoError(t, err)

	_, token, err := env.AuthService.Login(ctx, model.LoginRequest{
		Username: "transient",
		Password: "longenough",
	})
	require.NoError(t, err)

	_, err = env.AuthService.Authenticate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, env.AuthService.Logout(token))

	_, err = env.AuthService.Authenticate(ctx, token)
	assert.Error(t, err)
}
