package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking carries the stay, the selected extras and a persisted copy of the
// PriceBreakdown computed at creation time. The snapshot is the source of
// truth for what the guest pays; later catalog or rate changes never touch it.
type Booking struct {
	ID         int
	Reference  string
	UserID     int
	RoomTypeID int
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	Rooms      int
	Status     BookingStatus
	PaymentID  int
	Extras     []BookingExtra
	Snapshot   PriceSnapshot
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type BookingExtra struct {
	BookingID int
	ExtraID   int
	Name      string
	PriceType PriceType
	Quantity  int
	LineTotal decimal.Decimal
}

type PriceSnapshot struct {
	Nights         int
	BasePriceTotal decimal.Decimal
	ExtrasTotal    decimal.Decimal
	Tax            decimal.Decimal
	ServiceFee     decimal.Decimal
	TotalPrice     decimal.Decimal
	TaxRate        decimal.Decimal
	Currency       string
}

// NewPriceSnapshot freezes a computed breakdown together with the tax rate
// and currency that produced it.
func NewPriceSnapshot(breakdown PriceBreakdown, taxRate decimal.Decimal, currency string) PriceSnapshot {
	return PriceSnapshot{
		Nights:         breakdown.Nights,
		BasePriceTotal: breakdown.BasePriceTotal,
		ExtrasTotal:    breakdown.ExtrasTotal,
		Tax:            breakdown.Tax,
		ServiceFee:     breakdown.ServiceFee,
		TotalPrice:     breakdown.TotalPrice,
		TaxRate:        taxRate,
		Currency:       currency,
	}
}

// Matches reports whether a freshly computed breakdown agrees with the
// snapshot. Used for audit on booking display, never to rewrite the snapshot.
func (s PriceSnapshot) Matches(breakdown PriceBreakdown) bool {
	return s.Nights == breakdown.Nights &&
		s.BasePriceTotal.Equal(breakdown.BasePriceTotal) &&
		s.ExtrasTotal.Equal(breakdown.ExtrasTotal) &&
		s.Tax.Equal(breakdown.Tax) &&
		s.ServiceFee.Equal(breakdown.ServiceFee) &&
		s.TotalPrice.Equal(breakdown.TotalPrice)
}

type BookingSummary struct {
	BookingID         int
	Reference         string
	AccommodationName string
	RoomTypeName      string
	CheckIn           time.Time
	CheckOut          time.Time
	Status            BookingStatus
	TotalPrice        decimal.Decimal
	CreatedAt         time.Time
}

type BookingDetail struct {
	Booking
	AccommodationName string
	RoomTypeName      string
}

type BookingFilters struct {
	Pagination
	Status *BookingStatus
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking, payment *Payment) error
	GetByIdAndUserId(ctx context.Context, bookingId, userId int) (*BookingDetail, error)
	GetDetailByPaymentId(ctx context.Context, paymentId int) (*BookingDetail, error)
	GetSummariesByUserId(ctx context.Context, userId int, pagination Pagination) ([]BookingSummary, *Metadata, error)
	GetAll(ctx context.Context, filters BookingFilters) ([]BookingSummary, *Metadata, error)
	UpdateStatusByPaymentId(ctx context.Context, paymentId int, status BookingStatus) error
}
