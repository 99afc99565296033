package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PricingErrorKind string

const (
	InvalidDateRange      PricingErrorKind = "invalid_date_range"
	InvalidQuantity       PricingErrorKind = "invalid_quantity"
	CapacityExceeded      PricingErrorKind = "capacity_exceeded"
	GuestCapacityExceeded PricingErrorKind = "guest_capacity_exceeded"
	UnknownExtra          PricingErrorKind = "unknown_extra"
)

// PricingError reports the first validation rule a stay or extra selection
// violated. Validation is fail-fast: ComputeBreakdown returns at most one.
type PricingError struct {
	Kind    PricingErrorKind
	Message string
}

func (e *PricingError) Error() string {
	return e.Message
}

func newPricingError(kind PricingErrorKind, format string, args ...any) *PricingError {
	return &PricingError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

type StayRequest struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	Rooms    int
}

type ExtraSelection struct {
	ExtraID  int
	Quantity int
}

// PriceBreakdown is the priced result of a stay. It is computed fresh on
// every request and never mutated; bookings persist a copy as a snapshot.
type PriceBreakdown struct {
	Nights         int
	BasePriceTotal decimal.Decimal
	ExtrasTotal    decimal.Decimal
	Tax            decimal.Decimal
	ServiceFee     decimal.Decimal
	TotalPrice     decimal.Decimal
}

// ServiceFeePolicy computes the platform service fee from the taxable
// subtotal (base price plus extras). The authoritative fee rule belongs to
// configuration, so the calculator only ever sees it through this interface.
type ServiceFeePolicy interface {
	Fee(subtotal decimal.Decimal) decimal.Decimal
}

type FlatServiceFee struct {
	Amount decimal.Decimal
}

func (f FlatServiceFee) Fee(decimal.Decimal) decimal.Decimal {
	return f.Amount
}

type PercentServiceFee struct {
	Rate decimal.Decimal
}

func (p PercentServiceFee) Fee(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.Rate)
}

const currencyPrecision = 2

// Nights returns the whole-day length of a stay, midnight to midnight.
// Check-in and check-out carry date-only semantics, so the clock portion of
// either timestamp is discarded rather than rounded.
func Nights(checkIn, checkOut time.Time) int {
	in := truncateToDay(checkIn)
	out := truncateToDay(checkOut)

	return int(out.Sub(in).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ComputeBreakdown prices a stay against a room type and the selected
// optional extras. It is a pure function: no I/O, no shared state, safe to
// call concurrently. Validation short-circuits on the first violation and
// the error is always a *PricingError.
//
// Pricing rules:
//
//	basePriceTotal = pricePerNight x nights x rooms
//	per_booking extra line = price x quantity
//	per_person extra line = price x quantity x guests x nights
//	tax = taxRate x (basePriceTotal + extrasTotal), rounded once
//	totalPrice = basePriceTotal + extrasTotal + tax + serviceFee
//
// Tax, fee and total are rounded to currency precision (2 decimal places,
// half-up). Line items are not rounded individually so rounding error does
// not compound across extras.
func ComputeBreakdown(
	stay StayRequest,
	room RoomType,
	selections []ExtraSelection,
	catalog map[int]OptionalExtra,
	taxRate decimal.Decimal,
	feePolicy ServiceFeePolicy) (*PriceBreakdown, error) {

	nights := Nights(stay.CheckIn, stay.CheckOut)
	if nights < 1 {
		return nil, newPricingError(InvalidDateRange, "check-out must be after check-in")
	}

	if stay.Guests < 1 || stay.Rooms < 1 {
		return nil, newPricingError(InvalidQuantity, "guests and rooms must be positive")
	}

	if stay.Rooms > room.TotalRooms {
		return nil, newPricingError(
			CapacityExceeded,
			"%d room(s) requested but only %d exist",
			stay.Rooms,
			room.TotalRooms,
		)
	}

	if stay.Guests > room.MaxGuests*stay.Rooms {
		return nil, newPricingError(
			GuestCapacityExceeded,
			"%d guest(s) exceed the capacity of %d room(s)",
			stay.Guests,
			stay.Rooms,
		)
	}

	nightsDec := decimal.NewFromInt(int64(nights))
	basePriceTotal := room.PricePerNight.
		Mul(nightsDec).
		Mul(decimal.NewFromInt(int64(stay.Rooms)))

	extrasTotal := decimal.Zero

	for _, selection := range selections {
		extra, ok := catalog[selection.ExtraID]
		if !ok {
			return nil, newPricingError(UnknownExtra, "unknown optional extra: %d", selection.ExtraID)
		}

		quantity := selection.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 0 {
			return nil, newPricingError(InvalidQuantity, "extra %d has a negative quantity", selection.ExtraID)
		}

		extrasTotal = extrasTotal.Add(ExtraLineTotal(extra, quantity, stay.Guests, nights))
	}

	subtotal := basePriceTotal.Add(extrasTotal)
	tax := subtotal.Mul(taxRate).Round(currencyPrecision)
	serviceFee := feePolicy.Fee(subtotal).Round(currencyPrecision)
	totalPrice := subtotal.Add(tax).Add(serviceFee).Round(currencyPrecision)

	return &PriceBreakdown{
		Nights:         nights,
		BasePriceTotal: basePriceTotal,
		ExtrasTotal:    extrasTotal,
		Tax:            tax,
		ServiceFee:     serviceFee,
		TotalPrice:     totalPrice,
	}, nil
}

// ExtraLineTotal prices a single extra line. Per-person extras repeat for
// every guest on every night; per-booking extras are charged once per
// quantity.
func ExtraLineTotal(extra OptionalExtra, quantity, guests, nights int) decimal.Decimal {
	lineTotal := extra.Price.Mul(decimal.NewFromInt(int64(quantity)))

	if extra.PriceType == PerPerson {
		lineTotal = lineTotal.
			Mul(decimal.NewFromInt(int64(guests))).
			Mul(decimal.NewFromInt(int64(nights)))
	}

	return lineTotal
}
