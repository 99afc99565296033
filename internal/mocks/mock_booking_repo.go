package mocks

import (
	"context"

	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
)

type MockBookingRepo struct {
	domain.BookingRepository
	CreateFunc                  func(ctx context.Context, booking *domain.Booking, payment *domain.Payment) error
	GetByIdAndUserIdFunc        func(ctx context.Context, bookingId, userId int) (*domain.BookingDetail, error)
	GetDetailByPaymentIdFunc    func(ctx context.Context, paymentId int) (*domain.BookingDetail, error)
	GetSummariesByUserIdFunc    func(ctx context.Context, userId int, pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error)
	GetAllFunc                  func(ctx context.Context, filters domain.BookingFilters) ([]domain.BookingSummary, *domain.Metadata, error)
	UpdateStatusByPaymentIdFunc func(ctx context.Context, paymentId int, status domain.BookingStatus) error
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking, payment *domain.Payment) error {
	return m.CreateFunc(ctx, booking, payment)
}

func (m *MockBookingRepo) GetByIdAndUserId(ctx context.Context, bookingId, userId int) (*domain.BookingDetail, error) {
	return m.GetByIdAndUserIdFunc(ctx, bookingId, userId)
}

func (m *MockBookingRepo) GetDetailByPaymentId(ctx context.Context, paymentId int) (*domain.BookingDetail, error) {
	return m.GetDetailByPaymentIdFunc(ctx, paymentId)
}

func (m *MockBookingRepo) GetSummariesByUserId(ctx context.Context, userId int, pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {
	return m.GetSummariesByUserIdFunc(ctx, userId, pagination)
}

func (m *MockBookingRepo) GetAll(ctx context.Context, filters domain.BookingFilters) ([]domain.BookingSummary, *domain.Metadata, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *MockBookingRepo) UpdateStatusByPaymentId(ctx context.Context, paymentId int, status domain.BookingStatus) error {
	return m.UpdateStatusByPaymentIdFunc(ctx, paymentId, status)
}
