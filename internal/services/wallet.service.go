package services

import (
	"context"

	"github.com/skserveur/storefront/internal/model"
)

type WalletRepository interface {
	GetOrCreate(ctx context.Context, userID int64) (*model.Wallet, error)
	Debit(ctx context.Context, userID int64, amount uint) error
	Credit(ctx context.Context, userID int64, amount uint) error
	GetBalance(ctx context.Context, userID int64) (uint, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Transaction, error)
	ListByStatus(ctx context.Context, status model.TransactionStatus) ([]*model.Transaction, error)
	MarkStatus(ctx context.Context, id int64, from, to model.TransactionStatus) (bool, error)
	Get(ctx context.Context, id int64) (*model.Transaction, error)
}

type PaymentConfigRepository interface {
	List(ctx context.Context) ([]*model.PaymentConfig, error)
	ListActive(ctx context.Context) ([]*model.PaymentConfig, error)
	Create(ctx context.Context, pc *model.PaymentConfig) (*model.PaymentConfig, error)
	Update(ctx context.Context, pc *model.PaymentConfig) error
	Delete(ctx context.Context, id int64) error
}

// FundsOverview is the funds page payload: balance, where to send money, and
// past recharge declarations.
type FundsOverview struct {
	Wallet         *model.Wallet          `json:"wallet"`
	PaymentMethods []*model.PaymentConfig `json:"payment_methods"`
	Transactions   []*model.Transaction   `json:"transactions"`
}

type WalletService struct {
	walletRepo      WalletRepository
	transactionRepo TransactionRepository
	paymentRepo     PaymentConfigRepository
}

func NewWalletService(walletRepo WalletRepository, transactionRepo TransactionRepository, paymentRepo PaymentConfigRepository) *WalletService {
	return &WalletService{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		paymentRepo:     paymentRepo,
	}
}

func (s *WalletService) Overview(ctx context.Context, userID int64) (*FundsOverview, error) {
	wallet, err := s.walletRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	methods, err := s.paymentRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &FundsOverview{
		Wallet:         wallet,
		PaymentMethods: methods,
		Transactions:   transactions,
	}, nil
}

// Topup records a recharge declaration. The reference is taken at face value,
// nothing verifies the payment until an admin approves it.
func (s *WalletService) Topup(ctx context.Context, userID int64, p model.TopupRequest) (*model.Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return s.transactionRepo.Create(ctx, &model.Transaction{
		UserID:    userID,
		Amount:    p.Amount,
		Method:    p.Method,
		Reference: p.Reference,
		Status:    model.TransactionStatusPending,
	})
}

func (s *WalletService) Balance(ctx context.Context, userID int64) (uint, error) {
	return s.walletRepo.GetBalance(ctx, userID)
}
