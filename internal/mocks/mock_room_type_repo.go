package mocks

import (
	"context"

	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
)

type MockRoomTypeRepo struct {
	domain.RoomTypeRepository
	GetByAccommodationIdFunc func(ctx context.Context, accommodationId int) ([]domain.RoomType, error)
	GetByIdFunc              func(ctx context.Context, id int) (*domain.RoomType, error)
	CreateFunc               func(ctx context.Context, roomType *domain.RoomType) error
	UpdateFunc               func(ctx context.Context, roomType *domain.RoomType) error
	DeleteFunc               func(ctx context.Context, id int) error
}

func (m *MockRoomTypeRepo) GetByAccommodationId(ctx context.Context, accommodationId int) ([]domain.RoomType, error) {
	return m.GetByAccommodationIdFunc(ctx, accommodationId)
}

func (m *MockRoomTypeRepo) GetById(ctx context.Context, id int) (*domain.RoomType, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockRoomTypeRepo) Create(ctx context.Context, roomType *domain.RoomType) error {
	return m.CreateFunc(ctx, roomType)
}

func (m *MockRoomTypeRepo) Update(ctx context.Context, roomType *domain.RoomType) error {
	return m.UpdateFunc(ctx, roomType)
}

func (m *MockRoomTypeRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
