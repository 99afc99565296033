package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type RoomType struct {
	ID              int
	AccommodationID int
	Name            string
	PricePerNight   decimal.Decimal
	MaxGuests       int
	TotalRooms      int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int
}

type RoomTypeRepository interface {
	GetByAccommodationId(ctx context.Context, accommodationId int) ([]RoomType, error)
	GetById(ctx context.Context, id int) (*RoomType, error)
	Create(ctx context.Context, roomType *RoomType) error
	Update(ctx context.Context, roomType *RoomType) error
	Delete(ctx context.Context, id int) error
}
