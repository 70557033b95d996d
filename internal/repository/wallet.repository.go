package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrConcurrentUpdate   = errors.New("concurrent update detected")
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

type WalletRepository struct {
	*pg.DB
}

func NewWalletRepository(db *pg.DB) *WalletRepository {
	return &WalletRepository{
		db,
	}
}

// GetOrCreate returns the user's wallet, creating a zero-balance one on first
// access. Safe to call on every page view.
func (r *WalletRepository) GetOrCreate(ctx context.Context, userID int64) (*model.Wallet, error) {
	entity := WalletEntity{UserID: userID}
	err := r.Write(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(&entity).Error
	if err != nil {
		return nil, err
	}
	return toWalletModel(&entity), nil
}

// Debit performs an atomic balance deduction with automatic retry. The check
// and the decrement run under SELECT FOR UPDATE, so two concurrent orders can
// never both pass the balance check.
func (r *WalletRepository) Debit(ctx context.Context, userID int64, amount uint) error {
	const maxRetries = 3
	const baseDelay = 2 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := r.debitAttempt(ctx, userID, amount)

		if err == nil {
			return nil
		}

		// Don't retry on permanent errors
		if errors.Is(err, ErrInsufficientFunds) {
			return err
		}

		if attempt < maxRetries {
			delay := baseDelay * time.Duration(1<<attempt) // 2ms, 4ms, 8ms
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				continue
			}
		}
	}

	return fmt.Errorf("%w: failed after %d attempts", ErrMaxRetriesExceeded, maxRetries+1)
}

func (r *WalletRepository) debitAttempt(ctx context.Context, userID int64, amount uint) error {
	entity, err := r.lockWallet(ctx, userID)
	if err != nil {
		return err
	}

	if entity.Balance < amount {
		return ErrInsufficientFunds
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&WalletEntity{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance - ?", amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}

// Credit performs an atomic balance addition under the same row lock. Used for
// recharge approval and order-rejection refunds.
func (r *WalletRepository) Credit(ctx context.Context, userID int64, amount uint) error {
	const maxRetries = 3
	const baseDelay = 2 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := r.creditAttempt(ctx, userID, amount)

		if err == nil {
			return nil
		}

		if attempt < maxRetries {
			delay := baseDelay * time.Duration(1<<attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				continue
			}
		}
	}

	return fmt.Errorf("%w: failed after %d attempts", ErrMaxRetriesExceeded, maxRetries+1)
}

func (r *WalletRepository) creditAttempt(ctx context.Context, userID int64, amount uint) error {
	if _, err := r.lockWallet(ctx, userID); err != nil {
		return err
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&WalletEntity{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}

// lockWallet takes the row lock, lazily creating the wallet so that debit and
// credit work for users who never visited the funds page.
func (r *WalletRepository) lockWallet(ctx context.Context, userID int64) (*WalletEntity, error) {
	var entity WalletEntity

	err := r.Write(ctx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&entity).
		Error

	if err == nil {
		return &entity, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entity = WalletEntity{UserID: userID}
	if err := r.Write(ctx).WithContext(ctx).Create(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *WalletRepository) GetBalance(ctx context.Context, userID int64) (uint, error) {
	var entity WalletEntity
	err := r.Read(ctx).WithContext(ctx).
		Select("balance").
		Where("user_id = ?", userID).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return entity.Balance, nil
}
