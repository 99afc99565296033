package app

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const maxWebhookBodyBytes = 65536

// StripeWebhookHandler settles payments from Stripe checkout events. A
// completed session confirms the booking and emails the guest; an expired
// session fails the payment and cancels the booking. Stripe retries on
// non-2xx, so repository errors surface as 500s.
func (app *Application) StripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), app.config.Stripe.WebhookSecret)
	if err != nil {
		logger.Warn("webhook signature verification failed", "error", err)
		app.badRequestResponse(w, r, errors.New("invalid webhook signature"))
		return
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		err = app.handleCheckoutCompleted(r, event)
	case stripe.EventTypeCheckoutSessionExpired:
		err = app.handleCheckoutExpired(r, event)
	default:
		logger.Info("ignoring webhook event", "type", event.Type)
	}

	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (app *Application) handleCheckoutCompleted(r *http.Request, event stripe.Event) error {
	var checkoutSession stripe.CheckoutSession

	err := json.Unmarshal(event.Data.Raw, &checkoutSession)
	if err != nil {
		return err
	}

	paymentId, err := app.paymentRepo.UpdateStatus(r.Context(), checkoutSession.ID, domain.PaymentStatusCompleted, "")
	if err != nil {
		return err
	}

	err = app.bookingRepo.UpdateStatusByPaymentId(r.Context(), paymentId, domain.BookingStatusConfirmed)
	if err != nil {
		return err
	}

	app.sendBookingConfirmation(r, paymentId)

	return nil
}

func (app *Application) handleCheckoutExpired(r *http.Request, event stripe.Event) error {
	var checkoutSession stripe.CheckoutSession

	err := json.Unmarshal(event.Data.Raw, &checkoutSession)
	if err != nil {
		return err
	}

	paymentId, err := app.paymentRepo.UpdateStatus(r.Context(), checkoutSession.ID, domain.PaymentStatusFailed, "checkout session expired")
	if err != nil {
		return err
	}

	return app.bookingRepo.UpdateStatusByPaymentId(r.Context(), paymentId, domain.BookingStatusCancelled)
}

// sendBookingConfirmation is best effort. The booking is already confirmed,
// so a failed lookup or send only logs; Stripe must not retry the event over
// a missing email.
func (app *Application) sendBookingConfirmation(r *http.Request, paymentId int) {
	logger := app.contextGetLogger(r)

	booking, err := app.bookingRepo.GetDetailByPaymentId(r.Context(), paymentId)
	if err != nil {
		logger.Error("failed to load booking for confirmation email", "paymentId", paymentId, "error", err)
		return
	}

	user, err := app.userRepo.GetById(r.Context(), booking.UserID)
	if err != nil {
		logger.Error("failed to load user for confirmation email", "userId", booking.UserID, "error", err)
		return
	}

	app.sendMailAsync(r, user.Email, "booking_confirmation.tmpl", map[string]any{
		"reference":     booking.Reference,
		"accommodation": booking.AccommodationName,
		"roomType":      booking.RoomTypeName,
		"checkIn":       booking.CheckIn.Format("2006-01-02"),
		"checkOut":      booking.CheckOut.Format("2006-01-02"),
		"currency":      booking.Snapshot.Currency,
		"total":         booking.Snapshot.TotalPrice.StringFixed(2),
	})
}
