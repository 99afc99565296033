package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dipika-maharjan/tripwise-nepal-api/api"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"
)

// QuoteBooking prices a stay without creating anything. It is public so the
// booking form can show a live breakdown before the guest signs in.
func (app *Application) QuoteBooking(w http.ResponseWriter, r *http.Request) {
	var input api.BookingQuoteRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	breakdown, _, _, err := app.priceStay(r, input)
	if err != nil {
		app.pricingFailureResponse(w, r, err)
		return
	}

	resp := api.BookingQuoteResponse{Breakdown: app.toApiBreakdown(breakdown)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// priceStay resolves the room type and extras catalog for a quote or booking
// request and runs the price calculation. The returned catalog is keyed by
// extra ID so callers can build booking lines from the same data the
// calculation saw.
func (app *Application) priceStay(r *http.Request, input api.BookingQuoteRequest) (
	*domain.PriceBreakdown, *domain.RoomType, map[int]domain.OptionalExtra, error) {

	roomType, err := app.roomTypeRepo.GetById(r.Context(), input.RoomTypeId)
	if err != nil {
		return nil, nil, nil, err
	}

	extras, err := app.getExtrasCatalog(r.Context(), roomType.AccommodationID)
	if err != nil {
		return nil, nil, nil, err
	}

	catalog := make(map[int]domain.OptionalExtra, len(extras))
	for _, extra := range extras {
		catalog[extra.ID] = extra
	}

	stay := domain.StayRequest{
		CheckIn:  input.CheckIn.Time,
		CheckOut: input.CheckOut.Time,
		Guests:   input.Guests,
		Rooms:    input.Rooms,
	}

	selections := make([]domain.ExtraSelection, len(input.Extras))
	for i, selection := range input.Extras {
		selections[i] = domain.ExtraSelection{
			ExtraID:  selection.ExtraId,
			Quantity: selection.Quantity,
		}
	}

	breakdown, err := domain.ComputeBreakdown(stay, *roomType, selections, catalog, app.taxRate, app.feePolicy)
	if err != nil {
		return nil, nil, nil, err
	}

	return breakdown, roomType, catalog, nil
}

func (app *Application) pricingFailureResponse(w http.ResponseWriter, r *http.Request, err error) {
	var pricingErr *domain.PricingError

	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	case errors.As(err, &pricingErr):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, pricingErr.Message)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	user, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	breakdown, roomType, catalog, err := app.priceStay(r, input)
	if err != nil {
		app.pricingFailureResponse(w, r, err)
		return
	}

	checkIn := input.CheckIn.Time
	checkOut := input.CheckOut.Time

	booking := &domain.Booking{
		Reference:  uuid.New().String(),
		UserID:     userId,
		RoomTypeID: roomType.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     input.Guests,
		Rooms:      input.Rooms,
		Status:     domain.BookingStatusPending,
		Extras:     toBookingExtras(input.Extras, catalog, input.Guests, breakdown.Nights),
		Snapshot:   domain.NewPriceSnapshot(*breakdown, app.taxRate, app.config.Booking.Currency),
	}

	payment := &domain.Payment{
		UserID:   userId,
		Amount:   breakdown.TotalPrice,
		Currency: app.config.Booking.Currency,
		Status:   domain.PaymentStatusPending,
	}

	// The capacity check inside the calculator is static. The repository
	// re-checks availability against overlapping pending and confirmed
	// bookings while holding a lock on the room type, so two concurrent
	// requests for the last room cannot both succeed.
	err = app.bookingRepo.Create(r.Context(), booking, payment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomsUnavailable):
			app.editConflictResponseWithErr(w, r, err)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	description := fmt.Sprintf("Booking %s: %d room(s), %d night(s)", booking.Reference, booking.Rooms, breakdown.Nights)

	checkoutSession, err := app.paymentProvider.CreateCheckoutSession(user, booking, description)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.paymentRepo.SetCheckoutSession(r.Context(), booking.PaymentID, checkoutSession.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.CreateBookingResponse{
		BookingId:   booking.ID,
		Reference:   booking.Reference,
		Status:      string(booking.Status),
		Breakdown:   app.toApiBreakdown(breakdown),
		RedirectUrl: checkoutSession.URL,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// toBookingExtras materializes the selected extras into persisted booking
// lines, pricing each line the same way the calculator does.
func toBookingExtras(selections []api.ExtraSelection, catalog map[int]domain.OptionalExtra, guests, nights int) []domain.BookingExtra {
	bookingExtras := make([]domain.BookingExtra, 0, len(selections))

	for _, selection := range selections {
		extra := catalog[selection.ExtraId]

		quantity := selection.Quantity
		if quantity == 0 {
			quantity = 1
		}

		bookingExtras = append(bookingExtras, domain.BookingExtra{
			ExtraID:   extra.ID,
			Name:      extra.Name,
			PriceType: extra.PriceType,
			Quantity:  quantity,
			LineTotal: domain.ExtraLineTotal(extra, quantity, guests, nights),
		})
	}

	return bookingExtras
}

func (app *Application) GetBookingsOfUser(w http.ResponseWriter, r *http.Request) {
	params := api.ListParams{
		Page:     readIntQuery(r, "page"),
		PageSize: readIntQuery(r, "pageSize"),
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	summaries, metadata, err := app.bookingRepo.GetSummariesByUserId(r.Context(), userId, toPagination(params))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.BookingListResponse{
		Bookings: toApiBookingSummaries(summaries),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookingById(w http.ResponseWriter, r *http.Request) {
	bookingId, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	booking, err := app.bookingRepo.GetByIdAndUserId(r.Context(), bookingId, userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	extraLines := make([]api.BookingExtraLine, len(booking.Extras))
	for i, extra := range booking.Extras {
		extraLines[i] = api.BookingExtraLine{
			Name:      extra.Name,
			PriceType: string(extra.PriceType),
			Quantity:  extra.Quantity,
			LineTotal: extra.LineTotal,
		}
	}

	resp := api.BookingDetailResponse{
		Id:                booking.ID,
		Reference:         booking.Reference,
		AccommodationName: booking.AccommodationName,
		RoomTypeName:      booking.RoomTypeName,
		CheckIn:           types.Date{Time: booking.CheckIn},
		CheckOut:          types.Date{Time: booking.CheckOut},
		Guests:            booking.Guests,
		Rooms:             booking.Rooms,
		Status:            string(booking.Status),
		Extras:            extraLines,
		Breakdown:         toApiSnapshotBreakdown(booking.Snapshot),
		PriceVerified:     app.verifyBookingPrice(r, &booking.Booking),
		CreatedAt:         booking.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// verifyBookingPrice recomputes the breakdown against the current catalog and
// compares it with the persisted snapshot. The snapshot is never rewritten;
// a mismatch only means the catalog has drifted since the booking was made.
func (app *Application) verifyBookingPrice(r *http.Request, booking *domain.Booking) bool {
	roomType, err := app.roomTypeRepo.GetById(r.Context(), booking.RoomTypeID)
	if err != nil {
		return false
	}

	extras, err := app.getExtrasCatalog(r.Context(), roomType.AccommodationID)
	if err != nil {
		return false
	}

	catalog := make(map[int]domain.OptionalExtra, len(extras))
	for _, extra := range extras {
		catalog[extra.ID] = extra
	}

	stay := domain.StayRequest{
		CheckIn:  booking.CheckIn,
		CheckOut: booking.CheckOut,
		Guests:   booking.Guests,
		Rooms:    booking.Rooms,
	}

	selections := make([]domain.ExtraSelection, len(booking.Extras))
	for i, extra := range booking.Extras {
		selections[i] = domain.ExtraSelection{
			ExtraID:  extra.ExtraID,
			Quantity: extra.Quantity,
		}
	}

	breakdown, err := domain.ComputeBreakdown(stay, *roomType, selections, catalog, booking.Snapshot.TaxRate, app.feePolicy)
	if err != nil {
		return false
	}

	return booking.Snapshot.Matches(*breakdown)
}

// GetBookings is the admin back-office booking listing.
func (app *Application) GetBookings(w http.ResponseWriter, r *http.Request) {
	params := api.ListParams{
		Page:     readIntQuery(r, "page"),
		PageSize: readIntQuery(r, "pageSize"),
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := domain.BookingFilters{Pagination: toPagination(params)}

	if status := readStringQuery(r, "status"); status != nil {
		bookingStatus := domain.BookingStatus(*status)

		switch bookingStatus {
		case domain.BookingStatusPending, domain.BookingStatusConfirmed, domain.BookingStatusCancelled:
			filters.Status = &bookingStatus
		default:
			app.badRequestResponse(w, r, fmt.Errorf("invalid status %q", *status))
			return
		}
	}

	summaries, metadata, err := app.bookingRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.BookingListResponse{
		Bookings: toApiBookingSummaries(summaries),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiBookingSummaries(summaries []domain.BookingSummary) []api.BookingSummary {
	apiSummaries := make([]api.BookingSummary, len(summaries))

	for i, summary := range summaries {
		apiSummaries[i] = api.BookingSummary{
			Id:                summary.BookingID,
			Reference:         summary.Reference,
			AccommodationName: summary.AccommodationName,
			RoomTypeName:      summary.RoomTypeName,
			CheckIn:           types.Date{Time: summary.CheckIn},
			CheckOut:          types.Date{Time: summary.CheckOut},
			Status:            string(summary.Status),
			TotalPrice:        summary.TotalPrice,
			CreatedAt:         summary.CreatedAt,
		}
	}

	return apiSummaries
}

func (app *Application) toApiBreakdown(breakdown *domain.PriceBreakdown) api.PriceBreakdown {
	return api.PriceBreakdown{
		Nights:         breakdown.Nights,
		BasePriceTotal: breakdown.BasePriceTotal,
		ExtrasTotal:    breakdown.ExtrasTotal,
		Tax:            breakdown.Tax,
		ServiceFee:     breakdown.ServiceFee,
		TotalPrice:     breakdown.TotalPrice,
		Currency:       app.config.Booking.Currency,
	}
}

func toApiSnapshotBreakdown(snapshot domain.PriceSnapshot) api.PriceBreakdown {
	return api.PriceBreakdown{
		Nights:         snapshot.Nights,
		BasePriceTotal: snapshot.BasePriceTotal,
		ExtrasTotal:    snapshot.ExtrasTotal,
		Tax:            snapshot.Tax,
		ServiceFee:     snapshot.ServiceFee,
		TotalPrice:     snapshot.TotalPrice,
		Currency:       snapshot.Currency,
	}
}
