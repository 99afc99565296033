package repository

import (
	"context"
	"errors"

	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

func (p *PostgresPaymentRepository) GetById(ctx context.Context, id int) (*domain.Payment, error) {
	query := `
		SELECT id, user_id, stripe_checkout_session_id, amount, currency, status, error_message, payment_date, created_at
		FROM payments
		WHERE id = $1
	`

	var payment domain.Payment

	err := p.db.QueryRow(ctx, query, id).Scan(
		&payment.ID,
		&payment.UserID,
		&payment.CheckoutSessionId,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.ErrorMsg,
		&payment.PaymentDate,
		&payment.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &payment, nil
}

func (p *PostgresPaymentRepository) SetCheckoutSession(
	ctx context.Context,
	paymentId int,
	checkoutSessionId string) error {

	query := `UPDATE payments
		SET stripe_checkout_session_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := p.db.Exec(ctx, query, checkoutSessionId, paymentId)

	return err
}

// UpdateStatus transitions a payment by its checkout session id and returns
// the payment id so the caller can move the linked booking along with it.
func (p *PostgresPaymentRepository) UpdateStatus(
	ctx context.Context,
	checkoutSessionID string,
	status domain.PaymentStatus,
	errMsg string) (int, error) {

	query := `UPDATE payments
		SET status = $1,
			error_message = NULLIF($2, ''),
			payment_date = CASE WHEN $1 = 'completed' THEN NOW() ELSE payment_date END,
			updated_at = NOW()
		WHERE stripe_checkout_session_id = $3
		RETURNING id
	`

	var paymentId int

	err := p.db.QueryRow(ctx, query, status, errMsg, checkoutSessionID).Scan(&paymentId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrRecordNotFound
		}

		return 0, err
	}

	return paymentId, nil
}
