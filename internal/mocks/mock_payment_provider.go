package mocks

import (
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

type MockPaymentProvider struct {
	CreateCheckoutSessionFunc func(user *domain.User, booking *domain.Booking, description string) (*stripe.CheckoutSession, error)
}

func (m *MockPaymentProvider) CreateCheckoutSession(user *domain.User, booking *domain.Booking, description string) (*stripe.CheckoutSession, error) {
	return m.CreateCheckoutSessionFunc(user, booking, description)
}
