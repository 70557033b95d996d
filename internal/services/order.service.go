package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skserveur/storefront/internal/mailer"
	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/internal/repository"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

// FieldValidationError lists the required fields the submission left blank,
// in form order.
type FieldValidationError struct {
	Fields []string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	Get(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, status model.OrderStatus) ([]*model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]*model.Order, error)
	MarkStatus(ctx context.Context, id int64, from, to model.OrderStatus) (bool, error)
}

type HistoryRepository interface {
	Append(ctx context.Context, userID int64, serviceName string, price uint, outcome model.HistoryOutcome) (*model.HistoryEntry, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.HistoryEntry, error)
}

// ProductCatalog is the slice of the catalog service the order path needs.
type ProductCatalog interface {
	GetProduct(ctx context.Context, productType model.ProductType, id int64) (*model.Product, error)
	FieldsFor(ctx context.Context, p *model.Product) (model.FieldSet, error)
}

// TxRunner runs a function inside one database transaction.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier schedules a best-effort email. Implementations must never block.
type Notifier interface {
	Enqueue(email *mailer.Email)
}

type OrderService struct {
	orderRepo  OrderRepository
	walletRepo WalletRepository
	catalog    ProductCatalog
	tx         TxRunner
	notifier   Notifier
	adminEmail string
}

func NewOrderService(orderRepo OrderRepository, walletRepo WalletRepository, catalog ProductCatalog, tx TxRunner, notifier Notifier, adminEmail string) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		walletRepo: walletRepo,
		catalog:    catalog,
		tx:         tx,
		notifier:   notifier,
		adminEmail: adminEmail,
	}
}

// Create places an order: validate the submitted fields against the product's
// schema, then debit the wallet and insert the order in one transaction. The
// stored name and price are snapshots, later catalog edits don't touch them.
func (s *OrderService) Create(ctx context.Context, userID int64, p model.OrderCreateRequest) (*model.Order, error) {
	product, err := s.catalog.GetProduct(ctx, p.ProductType, p.ProductID)
	if err != nil {
		return nil, err
	}

	fields, err := s.catalog.FieldsFor(ctx, product)
	if err != nil {
		return nil, err
	}

	if missing := fields.Missing(p.Fields); len(missing) > 0 {
		return nil, &FieldValidationError{Fields: missing}
	}

	value := func(name string) string {
		return strings.TrimSpace(p.Fields[name])
	}

	order := &model.Order{
		UserID:          userID,
		ProductType:     product.Type,
		ProductName:     product.Name,
		Price:           product.Price,
		Email:           value(model.FieldEmail),
		ServiceUsername: value(model.FieldUsername),
		Imei:            value(model.FieldImei),
		PhotoLink:       value(model.FieldPhoto),
		Status:          model.OrderStatusPending,
		FieldValues:     fields.CustomAnswers(p.Fields),
	}

	var created *model.Order
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.walletRepo.Debit(ctx, userID, product.Price); err != nil {
			if errors.Is(err, repository.ErrInsufficientFunds) {
				return ErrInsufficientFunds
			}
			return fmt.Errorf("debit wallet: %w", err)
		}

		c, err := s.orderRepo.Create(ctx, order)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notification is fire-and-forget, a mail outage must not undo the order.
	s.notifier.Enqueue(&mailer.Email{
		To:      s.adminEmail,
		Subject: fmt.Sprintf("New order #%d: %s", created.ID, created.ProductName),
		Body:    adminOrderMailBody(created),
	})

	return created, nil
}

// adminOrderMailBody carries everything the admin needs to fulfil the order
// without opening the dashboard: the snapshot, the builtin answers and the
// custom ones.
func adminOrderMailBody(o *model.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d placed by user %d, status pending.\n", o.ID, o.UserID)
	fmt.Fprintf(&b, "Product: %s (%s), price %d\n", o.ProductName, o.ProductType, o.Price)

	builtins := []struct{ name, value string }{
		{model.FieldEmail, o.Email},
		{model.FieldUsername, o.ServiceUsername},
		{model.FieldImei, o.Imei},
		{model.FieldPhoto, o.PhotoLink},
	}
	for _, f := range builtins {
		if f.value != "" {
			fmt.Fprintf(&b, "%s: %s\n", f.name, f.value)
		}
	}
	for _, fv := range o.FieldValues {
		fmt.Fprintf(&b, "%s: %s\n", fv.Name, fv.Value)
	}
	return b.String()
}

func (s *OrderService) Get(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := s.orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID int64, status model.OrderStatus) ([]*model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID, status)
}
