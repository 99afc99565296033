package payment

import (
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

type MockPaymentProvider struct {
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{}
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	user *domain.User,
	booking *domain.Booking,
	description string) (*stripe.CheckoutSession, error) {

	return &stripe.CheckoutSession{
		ID:  "cs_test_mock",
		URL: "https://checkout.stripe.test/pay/cs_test_mock",
	}, nil
}
