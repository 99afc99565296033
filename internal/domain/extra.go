package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PriceType string

const (
	PerPerson  PriceType = "per_person"
	PerBooking PriceType = "per_booking"
)

// OptionalExtra is an add-on service a guest can attach to a booking, e.g.
// airport pickup or breakfast. Per-person extras are charged per guest per
// night; per-booking extras are charged once per quantity.
type OptionalExtra struct {
	ID              int
	AccommodationID int
	Name            string
	Description     string
	Price           decimal.Decimal
	PriceType       PriceType
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int
}

type OptionalExtraRepository interface {
	GetByAccommodationId(ctx context.Context, accommodationId int) ([]OptionalExtra, error)
	GetById(ctx context.Context, id int) (*OptionalExtra, error)
	Create(ctx context.Context, extra *OptionalExtra) error
	Update(ctx context.Context, extra *OptionalExtra) error
	Delete(ctx context.Context, id int) error
}
