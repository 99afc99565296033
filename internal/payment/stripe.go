package payment

import (
	"fmt"
	"strconv"

	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

type StripePaymentProvider struct {
	failureUrl string
	successUrl string
}

func NewStripePaymentProvider(failureUrl, successUrl string) *StripePaymentProvider {
	return &StripePaymentProvider{
		failureUrl: failureUrl,
		successUrl: successUrl,
	}
}

// CreateCheckoutSession opens a Stripe checkout session for the booking's
// total price. The booking is a single line item; the breakdown lives on the
// booking snapshot, not in Stripe.
func (s *StripePaymentProvider) CreateCheckoutSession(
	user *domain.User,
	booking *domain.Booking,
	description string) (*stripe.CheckoutSession, error) {

	totalCents := booking.Snapshot.TotalPrice.Mul(decimal.NewFromInt(100)).IntPart()

	lineItem := &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(booking.Snapshot.Currency),
			UnitAmount: stripe.Int64(totalCents),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(fmt.Sprintf("Booking %s", booking.Reference)),
				Description: stripe.String(fmt.Sprintf(
					"%s • %s → %s • %d guest(s), %d room(s)",
					description,
					booking.CheckIn.Format("Jan 2, 2006"),
					booking.CheckOut.Format("Jan 2, 2006"),
					booking.Guests,
					booking.Rooms,
				)),
			},
		},
		Quantity: stripe.Int64(1),
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:  []*stripe.CheckoutSessionLineItemParams{lineItem},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.successUrl),
		CancelURL:  stripe.String(s.failureUrl),
		Metadata: map[string]string{
			"booking_id":        strconv.Itoa(booking.ID),
			"booking_reference": booking.Reference,
			"user_id":           strconv.Itoa(user.ID),
			"payment_id":        strconv.Itoa(booking.PaymentID),
		},
		CustomerEmail:     &user.Email,
		ClientReferenceID: stripe.String(strconv.Itoa(user.ID)),
	}

	return session.New(params)
}
