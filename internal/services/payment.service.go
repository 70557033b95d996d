package services

import (
	"context"
	"errors"

	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/internal/repository"
)

var ErrMethodTaken = errors.New("payment method already configured")

// PaymentService manages the receiving accounts buyers send recharges to.
type PaymentService struct {
	paymentRepo PaymentConfigRepository
}

func NewPaymentService(paymentRepo PaymentConfigRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
	}
}

func (s *PaymentService) List(ctx context.Context) ([]*model.PaymentConfig, error) {
	return s.paymentRepo.List(ctx)
}

func (s *PaymentService) Create(ctx context.Context, pc *model.PaymentConfig) (*model.PaymentConfig, error) {
	created, err := s.paymentRepo.Create(ctx, pc)
	if err != nil {
		return nil, mapPaymentError(err)
	}
	return created, nil
}

func (s *PaymentService) Update(ctx context.Context, pc *model.PaymentConfig) error {
	return mapPaymentError(s.paymentRepo.Update(ctx, pc))
}

func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	return mapPaymentError(s.paymentRepo.Delete(ctx, id))
}

func mapPaymentError(err error) error {
	if errors.Is(err, repository.ErrDuplicatePaymentMethod) {
		return ErrMethodTaken
	}
	return mapNotFound(err)
}
