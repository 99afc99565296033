package domain

import (
	"context"
	"time"
)

type Accommodation struct {
	ID          int
	Name        string
	Location    string
	Description string
	Amenities   []string
	Images      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int
}

type AccommodationFilters struct {
	Pagination
}

type AccommodationRepository interface {
	GetAll(ctx context.Context, filters AccommodationFilters) ([]*Accommodation, *Metadata, error)
	GetById(ctx context.Context, id int) (*Accommodation, error)
	Create(ctx context.Context, accommodation *Accommodation) error
	Update(ctx context.Context, accommodation *Accommodation) error
	Delete(ctx context.Context, id int) error
}
