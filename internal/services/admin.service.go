package services

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/skserveur/storefront/internal/mailer"
	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/pkg/prom"
)

const skippedReason = "not pending"

// AdminService implements the bulk moderation actions. Every row is processed
// in its own transaction: one bad row never aborts the rest of the batch, and
// rows that already reached a terminal state are skipped silently.
type AdminService struct {
	orderRepo       OrderRepository
	transactionRepo TransactionRepository
	walletRepo      WalletRepository
	historyRepo     HistoryRepository
	userRepo        AuthUserRepository
	tx              TxRunner
	notifier        Notifier

	ordersResolved *prometheus.CounterVec
	topupsResolved *prometheus.CounterVec
}

func NewAdminService(orderRepo OrderRepository, transactionRepo TransactionRepository, walletRepo WalletRepository, historyRepo HistoryRepository, userRepo AuthUserRepository, tx TxRunner, notifier Notifier) *AdminService {
	return &AdminService{
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
		walletRepo:      walletRepo,
		historyRepo:     historyRepo,
		userRepo:        userRepo,
		tx:              tx,
		notifier:        notifier,
		ordersResolved:  prom.CounterVec("admin", "orders_resolved_total", "Orders resolved by admin action", []string{"action"}),
		topupsResolved:  prom.CounterVec("admin", "topups_resolved_total", "Recharges resolved by admin action", []string{"action"}),
	}
}

func (s *AdminService) ListPendingOrders(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.ListByStatus(ctx, model.OrderStatusPending)
}

func (s *AdminService) ListPendingTopups(ctx context.Context) ([]*model.Transaction, error) {
	return s.transactionRepo.ListByStatus(ctx, model.TransactionStatusPending)
}

// ApproveOrders marks pending orders as success and appends a success history
// row. The wallet is untouched, the debit happened at order creation.
func (s *AdminService) ApproveOrders(ctx context.Context, ids []int64) []model.BatchResult {
	results := make([]model.BatchResult, 0, len(ids))

	for _, id := range ids {
		var order *model.Order
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			o, err := s.orderRepo.Get(ctx, id)
			if err != nil {
				return err
			}

			applied, err := s.orderRepo.MarkStatus(ctx, id, model.OrderStatusPending, model.OrderStatusSuccess)
			if err != nil {
				return err
			}
			if !applied {
				return errSkipped
			}

			if _, err := s.historyRepo.Append(ctx, o.UserID, o.ProductName, o.Price, model.HistoryOutcomeSuccess); err != nil {
				return err
			}
			order = o
			return nil
		})

		results = append(results, s.orderResult(id, err))
		if err != nil {
			continue
		}

		prom.IncCounter(s.ordersResolved, "approve")
		s.notifyBuyer(ctx, order.UserID, order.Email,
			fmt.Sprintf("Order #%d completed", order.ID),
			fmt.Sprintf("Your order for %s was completed successfully.", order.ProductName))
	}
	return results
}

// RejectOrders marks pending orders as rejected, refunds the stored price and
// appends a failure history row.
func (s *AdminService) RejectOrders(ctx context.Context, ids []int64) []model.BatchResult {
	results := make([]model.BatchResult, 0, len(ids))

	for _, id := range ids {
		var order *model.Order
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			o, err := s.orderRepo.Get(ctx, id)
			if err != nil {
				return err
			}

			applied, err := s.orderRepo.MarkStatus(ctx, id, model.OrderStatusPending, model.OrderStatusRejected)
			if err != nil {
				return err
			}
			if !applied {
				return errSkipped
			}

			// Refund exactly what was debited at creation time.
			if err := s.walletRepo.Credit(ctx, o.UserID, o.Price); err != nil {
				return err
			}

			if _, err := s.historyRepo.Append(ctx, o.UserID, o.ProductName, o.Price, model.HistoryOutcomeFailure); err != nil {
				return err
			}
			order = o
			return nil
		})

		results = append(results, s.orderResult(id, err))
		if err != nil {
			continue
		}

		prom.IncCounter(s.ordersResolved, "reject")
		s.notifyBuyer(ctx, order.UserID, order.Email,
			fmt.Sprintf("Order #%d rejected", order.ID),
			fmt.Sprintf("Your order for %s was rejected. %d was returned to your wallet.", order.ProductName, order.Price))
	}
	return results
}

// ApproveTopups credits each pending recharge onto the declaring user's wallet.
func (s *AdminService) ApproveTopups(ctx context.Context, ids []int64) []model.BatchResult {
	results := make([]model.BatchResult, 0, len(ids))

	for _, id := range ids {
		var txn *model.Transaction
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			t, err := s.transactionRepo.Get(ctx, id)
			if err != nil {
				return err
			}

			applied, err := s.transactionRepo.MarkStatus(ctx, id, model.TransactionStatusPending, model.TransactionStatusApproved)
			if err != nil {
				return err
			}
			if !applied {
				return errSkipped
			}

			if err := s.walletRepo.Credit(ctx, t.UserID, t.Amount); err != nil {
				return err
			}
			txn = t
			return nil
		})

		results = append(results, s.orderResult(id, err))
		if err != nil {
			continue
		}

		prom.IncCounter(s.topupsResolved, "approve")
		s.notifyBuyer(ctx, txn.UserID, "",
			"Recharge approved",
			fmt.Sprintf("Your recharge of %d (%s) was approved and credited.", txn.Amount, txn.Method))
	}
	return results
}

// RejectTopups marks pending recharges as rejected. No wallet mutation, the
// money was never credited.
func (s *AdminService) RejectTopups(ctx context.Context, ids []int64) []model.BatchResult {
	results := make([]model.BatchResult, 0, len(ids))

	for _, id := range ids {
		var txn *model.Transaction
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			t, err := s.transactionRepo.Get(ctx, id)
			if err != nil {
				return err
			}

			applied, err := s.transactionRepo.MarkStatus(ctx, id, model.TransactionStatusPending, model.TransactionStatusRejected)
			if err != nil {
				return err
			}
			if !applied {
				return errSkipped
			}
			txn = t
			return nil
		})

		results = append(results, s.orderResult(id, err))
		if err != nil {
			continue
		}

		prom.IncCounter(s.topupsResolved, "reject")
		s.notifyBuyer(ctx, txn.UserID, "",
			"Recharge rejected",
			fmt.Sprintf("Your recharge declaration of %d (%s) was rejected.", txn.Amount, txn.Method))
	}
	return results
}

func (s *AdminService) orderResult(id int64, err error) model.BatchResult {
	switch {
	case err == nil:
		return model.BatchResult{ID: id, Applied: true}
	case errorsIsSkipped(err):
		return model.BatchResult{ID: id, Applied: false, Reason: skippedReason}
	case isRepoNotFound(err):
		return model.BatchResult{ID: id, Applied: false, Reason: "not found"}
	default:
		return model.BatchResult{ID: id, Applied: false, Reason: err.Error()}
	}
}

// notifyBuyer sends a best-effort notification to the user's account email,
// falling back to the address typed on the order.
func (s *AdminService) notifyBuyer(ctx context.Context, userID int64, fallback, subject, body string) {
	to := fallback
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil && user.Email != "" {
		to = user.Email
	}
	if to == "" {
		return
	}
	s.notifier.Enqueue(&mailer.Email{To: to, Subject: subject, Body: body})
}
