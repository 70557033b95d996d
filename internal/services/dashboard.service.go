package services

import (
	"context"

	"github.com/skserveur/storefront/internal/model"
)

// Dashboard is the landing payload after login: the catalog plus the user's
// wallet, in-flight orders and resolved history.
type Dashboard struct {
	Catalog       *model.Catalog        `json:"catalog"`
	Wallet        *model.Wallet         `json:"wallet"`
	PendingOrders []*model.Order        `json:"pending_orders"`
	History       []*model.HistoryEntry `json:"history"`
}

type CatalogBrowser interface {
	Browse(ctx context.Context, q string) (*model.Catalog, error)
}

type DashboardService struct {
	catalog     CatalogBrowser
	walletRepo  WalletRepository
	orderRepo   OrderRepository
	historyRepo HistoryRepository
}

func NewDashboardService(catalog CatalogBrowser, walletRepo WalletRepository, orderRepo OrderRepository, historyRepo HistoryRepository) *DashboardService {
	return &DashboardService{
		catalog:     catalog,
		walletRepo:  walletRepo,
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
	}
}

func (s *DashboardService) Get(ctx context.Context, userID int64, q string) (*Dashboard, error) {
	catalog, err := s.catalog.Browse(ctx, q)
	if err != nil {
		return nil, err
	}

	wallet, err := s.walletRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending, err := s.orderRepo.ListByUser(ctx, userID, model.OrderStatusPending)
	if err != nil {
		return nil, err
	}

	history, err := s.historyRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Catalog:       catalog,
		Wallet:        wallet,
		PendingOrders: pending,
		History:       history,
	}, nil
}
