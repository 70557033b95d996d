package repository

import (
	"time"

	"github.com/skserveur/storefront/internal/model"
)

type UserEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `db:"username"      gorm:"column:username;not null;unique"`
	Email        string    `db:"email"         gorm:"column:email;not null"`
	PasswordHash string    `db:"password_hash" gorm:"column:password_hash;not null"`
	IsAdmin      bool      `db:"is_admin"      gorm:"column:is_admin;not null;default:false"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
}

func (UserEntity) TableName() string {
	return "users"
}

func toUserEntity(m *model.User) *UserEntity {
	if m == nil {
		return nil
	}
	return &UserEntity{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsAdmin:      m.IsAdmin,
		CreatedAt:    m.CreatedAt,
	}
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	return &model.User{
		ID:           e.ID,
		Username:     e.Username,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		IsAdmin:      e.IsAdmin,
		CreatedAt:    e.CreatedAt,
	}
}
