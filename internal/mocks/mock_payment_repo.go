package mocks

import (
	"context"

	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
)

type MockPaymentRepo struct {
	domain.PaymentRepository
	GetByIdFunc            func(ctx context.Context, id int) (*domain.Payment, error)
	SetCheckoutSessionFunc func(ctx context.Context, paymentId int, checkoutSessionId string) error
	UpdateStatusFunc       func(ctx context.Context, checkoutSessionID string, status domain.PaymentStatus, errMsg string) (int, error)
}

func (m *MockPaymentRepo) GetById(ctx context.Context, id int) (*domain.Payment, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockPaymentRepo) SetCheckoutSession(ctx context.Context, paymentId int, checkoutSessionId string) error {
	return m.SetCheckoutSessionFunc(ctx, paymentId, checkoutSessionId)
}

func (m *MockPaymentRepo) UpdateStatus(ctx context.Context, checkoutSessionID string, status domain.PaymentStatus, errMsg string) (int, error) {
	return m.UpdateStatusFunc(ctx, checkoutSessionID, status, errMsg)
}
