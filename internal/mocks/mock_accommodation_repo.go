package mocks

import (
	"context"

	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
)

type MockAccommodationRepo struct {
	domain.AccommodationRepository
	GetAllFunc  func(ctx context.Context, filters domain.AccommodationFilters) ([]*domain.Accommodation, *domain.Metadata, error)
	GetByIdFunc func(ctx context.Context, id int) (*domain.Accommodation, error)
	CreateFunc  func(ctx context.Context, accommodation *domain.Accommodation) error
	UpdateFunc  func(ctx context.Context, accommodation *domain.Accommodation) error
	DeleteFunc  func(ctx context.Context, id int) error
}

func (m *MockAccommodationRepo) GetAll(ctx context.Context, filters domain.AccommodationFilters) ([]*domain.Accommodation, *domain.Metadata, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *MockAccommodationRepo) GetById(ctx context.Context, id int) (*domain.Accommodation, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockAccommodationRepo) Create(ctx context.Context, accommodation *domain.Accommodation) error {
	return m.CreateFunc(ctx, accommodation)
}

func (m *MockAccommodationRepo) Update(ctx context.Context, accommodation *domain.Accommodation) error {
	return m.UpdateFunc(ctx, accommodation)
}

func (m *MockAccommodationRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
