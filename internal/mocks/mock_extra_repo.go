package mocks

import (
	"context"

	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
)

type MockOptionalExtraRepo struct {
	domain.OptionalExtraRepository
	GetByAccommodationIdFunc func(ctx context.Context, accommodationId int) ([]domain.OptionalExtra, error)
	GetByIdFunc              func(ctx context.Context, id int) (*domain.OptionalExtra, error)
	CreateFunc               func(ctx context.Context, extra *domain.OptionalExtra) error
	UpdateFunc               func(ctx context.Context, extra *domain.OptionalExtra) error
	DeleteFunc               func(ctx context.Context, id int) error
}

func (m *MockOptionalExtraRepo) GetByAccommodationId(ctx context.Context, accommodationId int) ([]domain.OptionalExtra, error) {
	return m.GetByAccommodationIdFunc(ctx, accommodationId)
}

func (m *MockOptionalExtraRepo) GetById(ctx context.Context, id int) (*domain.OptionalExtra, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockOptionalExtraRepo) Create(ctx context.Context, extra *domain.OptionalExtra) error {
	return m.CreateFunc(ctx, extra)
}

func (m *MockOptionalExtraRepo) Update(ctx context.Context, extra *domain.OptionalExtra) error {
	return m.UpdateFunc(ctx, extra)
}

func (m *MockOptionalExtraRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
