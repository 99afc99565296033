package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID                int
	UserID            int
	CheckoutSessionId *string
	Amount            decimal.Decimal
	Currency          string
	Status            PaymentStatus
	ErrorMsg          *string
	PaymentDate       *time.Time
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

type PaymentRepository interface {
	GetById(ctx context.Context, id int) (*Payment, error)
	SetCheckoutSession(ctx context.Context, paymentId int, checkoutSessionId string) error
	UpdateStatus(ctx context.Context, checkoutSessionID string, status PaymentStatus, errMsg string) (int, error)
}
