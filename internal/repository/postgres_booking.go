package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create persists the booking, its price snapshot, the selected extras and
// the pending payment in one transaction. The room type row is locked for
// the duration of the transaction so that concurrent bookings of the same
// room type serialize on the availability check.
func (p *PostgresBookingRepository) Create(
	ctx context.Context,
	booking *domain.Booking,
	payment *domain.Payment) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var totalRooms int

		err := tx.QueryRow(
			ctx,
			"SELECT total_rooms FROM room_types WHERE id = $1 FOR UPDATE",
			booking.RoomTypeID,
		).Scan(&totalRooms)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}
			return err
		}

		bookedRooms, err := bookedRoomsInTx(ctx, tx, booking.RoomTypeID, booking.CheckIn, booking.CheckOut)
		if err != nil {
			return err
		}

		if bookedRooms+booking.Rooms > totalRooms {
			return domain.ErrRoomsUnavailable
		}

		query := `
			INSERT INTO payments (user_id, amount, currency, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			payment.UserID,
			payment.Amount,
			payment.Currency,
			payment.Status,
		).Scan(&payment.ID, &payment.CreatedAt)

		if err != nil {
			return err
		}

		booking.PaymentID = payment.ID

		query = `
			INSERT INTO bookings (
				reference, user_id, room_type_id, payment_id,
				check_in, check_out, guests, rooms, status,
				nights, base_price_total, extras_total, tax, service_fee, total_price,
				tax_rate, currency
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			RETURNING id, created_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			booking.Reference,
			booking.UserID,
			booking.RoomTypeID,
			booking.PaymentID,
			booking.CheckIn,
			booking.CheckOut,
			booking.Guests,
			booking.Rooms,
			booking.Status,
			booking.Snapshot.Nights,
			booking.Snapshot.BasePriceTotal,
			booking.Snapshot.ExtrasTotal,
			booking.Snapshot.Tax,
			booking.Snapshot.ServiceFee,
			booking.Snapshot.TotalPrice,
			booking.Snapshot.TaxRate,
			booking.Snapshot.Currency,
		).Scan(&booking.ID, &booking.CreatedAt)

		if err != nil {
			return err
		}

		if len(booking.Extras) == 0 {
			return nil
		}

		rows := make([][]any, 0, len(booking.Extras))
		for _, extra := range booking.Extras {
			rows = append(rows, []any{
				booking.ID,
				extra.ExtraID,
				extra.Quantity,
				extra.LineTotal,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_extras"},
			[]string{"booking_id", "extra_id", "quantity", "line_total"},
			pgx.CopyFromRows(rows),
		)

		return err
	})
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

const bookingDetailQuery = `
	SELECT
		b.id,
		b.reference,
		b.user_id,
		b.room_type_id,
		b.payment_id,
		b.check_in,
		b.check_out,
		b.guests,
		b.rooms,
		b.status,
		b.nights,
		b.base_price_total,
		b.extras_total,
		b.tax,
		b.service_fee,
		b.total_price,
		b.tax_rate,
		b.currency,
		b.created_at,
		rt.name,
		a.name
	FROM bookings b
	JOIN room_types rt ON b.room_type_id = rt.id
	JOIN accommodations a ON rt.accommodation_id = a.id
`

func (p *PostgresBookingRepository) GetByIdAndUserId(
	ctx context.Context,
	bookingId,
	userId int) (*domain.BookingDetail, error) {

	query := bookingDetailQuery + `WHERE b.id = $1 AND b.user_id = $2`

	return p.queryBookingDetail(ctx, query, bookingId, userId)
}

// GetDetailByPaymentId resolves a booking from its payment, which is how the
// payment webhook finds the booking it just settled.
func (p *PostgresBookingRepository) GetDetailByPaymentId(
	ctx context.Context,
	paymentId int) (*domain.BookingDetail, error) {

	query := bookingDetailQuery + `WHERE b.payment_id = $1`

	return p.queryBookingDetail(ctx, query, paymentId)
}

func (p *PostgresBookingRepository) queryBookingDetail(
	ctx context.Context,
	query string,
	args ...any) (*domain.BookingDetail, error) {

	var detail domain.BookingDetail

	err := p.db.QueryRow(ctx, query, args...).Scan(
		&detail.ID,
		&detail.Reference,
		&detail.UserID,
		&detail.RoomTypeID,
		&detail.PaymentID,
		&detail.CheckIn,
		&detail.CheckOut,
		&detail.Guests,
		&detail.Rooms,
		&detail.Status,
		&detail.Snapshot.Nights,
		&detail.Snapshot.BasePriceTotal,
		&detail.Snapshot.ExtrasTotal,
		&detail.Snapshot.Tax,
		&detail.Snapshot.ServiceFee,
		&detail.Snapshot.TotalPrice,
		&detail.Snapshot.TaxRate,
		&detail.Snapshot.Currency,
		&detail.CreatedAt,
		&detail.RoomTypeName,
		&detail.AccommodationName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	extras, err := p.retrieveBookingExtras(ctx, detail.ID)
	if err != nil {
		return nil, err
	}

	detail.Extras = extras

	return &detail, nil
}

func (p *PostgresBookingRepository) retrieveBookingExtras(
	ctx context.Context,
	bookingId int) ([]domain.BookingExtra, error) {

	query := `
		SELECT be.booking_id, be.extra_id, oe.name, oe.price_type, be.quantity, be.line_total
		FROM booking_extras be
		JOIN optional_extras oe ON be.extra_id = oe.id
		WHERE be.booking_id = $1
		ORDER BY be.extra_id
	`

	rows, err := p.db.Query(ctx, query, bookingId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	extras := make([]domain.BookingExtra, 0)

	for rows.Next() {
		var extra domain.BookingExtra

		err := rows.Scan(
			&extra.BookingID,
			&extra.ExtraID,
			&extra.Name,
			&extra.PriceType,
			&extra.Quantity,
			&extra.LineTotal,
		)
		if err != nil {
			return nil, err
		}

		extras = append(extras, extra)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return extras, nil
}

func (p *PostgresBookingRepository) GetSummariesByUserId(
	ctx context.Context,
	userId int,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			count(*) OVER(),
			b.id,
			b.reference,
			a.name,
			rt.name,
			b.check_in,
			b.check_out,
			b.status,
			b.total_price,
			b.created_at
		FROM bookings b
		JOIN room_types rt ON b.room_type_id = rt.id
		JOIN accommodations a ON rt.accommodation_id = a.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	return p.queryBookingSummaries(ctx, query, pagination, userId, pagination.Limit(), pagination.Offset())
}

func (p *PostgresBookingRepository) GetAll(
	ctx context.Context,
	filters domain.BookingFilters) ([]domain.BookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			count(*) OVER(),
			b.id,
			b.reference,
			a.name,
			rt.name,
			b.check_in,
			b.check_out,
			b.status,
			b.total_price,
			b.created_at
		FROM bookings b
		JOIN room_types rt ON b.room_type_id = rt.id
		JOIN accommodations a ON rt.accommodation_id = a.id
		WHERE ($1::text IS NULL OR b.status = $1)
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	return p.queryBookingSummaries(
		ctx,
		query,
		filters.Pagination,
		filters.Status,
		filters.Limit(),
		filters.Offset(),
	)
}

func (p *PostgresBookingRepository) queryBookingSummaries(
	ctx context.Context,
	query string,
	pagination domain.Pagination,
	args ...any) ([]domain.BookingSummary, *domain.Metadata, error) {

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings := make([]domain.BookingSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var booking domain.BookingSummary

		err := rows.Scan(
			&totalRecords,
			&booking.BookingID,
			&booking.Reference,
			&booking.AccommodationName,
			&booking.RoomTypeName,
			&booking.CheckIn,
			&booking.CheckOut,
			&booking.Status,
			&booking.TotalPrice,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return bookings, metadata, nil
}

// bookedRoomsInTx counts rooms held by pending or confirmed bookings whose
// date range overlaps [checkIn, checkOut). Cancelled bookings release their
// rooms. Must run inside the transaction holding the room type lock.
func bookedRoomsInTx(
	ctx context.Context,
	tx pgx.Tx,
	roomTypeId int,
	checkIn,
	checkOut time.Time) (int, error) {

	query := `
		SELECT COALESCE(SUM(rooms), 0)
		FROM bookings
		WHERE room_type_id = $1
			AND status IN ('pending', 'confirmed')
			AND check_in < $3
			AND check_out > $2
	`

	var booked int

	err := tx.QueryRow(ctx, query, roomTypeId, checkIn, checkOut).Scan(&booked)
	if err != nil {
		return 0, err
	}

	return booked, nil
}

func (p *PostgresBookingRepository) UpdateStatusByPaymentId(
	ctx context.Context,
	paymentId int,
	status domain.BookingStatus) error {

	result, err := p.db.Exec(
		ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE payment_id = $2`,
		status,
		paymentId,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("no booking for payment %d: %w", paymentId, domain.ErrRecordNotFound)
	}

	return nil
}
