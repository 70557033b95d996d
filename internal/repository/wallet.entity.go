package repository

import (
	"github.com/skserveur/storefront/internal/model"
)

type WalletEntity struct {
	ID      int64 `db:"id"      gorm:"primaryKey;autoIncrement;column:id"`
	UserID  int64 `db:"user_id" gorm:"column:user_id;not null;uniqueIndex"`
	Balance uint  `db:"balance" gorm:"column:balance;not null;default:0"`
}

func (WalletEntity) TableName() string {
	return "wallets"
}

func toWalletModel(e *WalletEntity) *model.Wallet {
	if e == nil {
		return nil
	}
	return &model.Wallet{
		ID:      e.ID,
		UserID:  e.UserID,
		Balance: e.Balance,
	}
}
