package app

import (
	"errors"
	"net/http"

	"github.com/dipika-maharjan/tripwise-nepal-api/api"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"
)

func (app *Application) GetAccommodations(w http.ResponseWriter, r *http.Request) {
	params := api.GetAccommodationsParams{
		Term:     readStringQuery(r, "term"),
		Page:     readIntQuery(r, "page"),
		PageSize: readIntQuery(r, "pageSize"),
		Sort:     readStringQuery(r, "sort"),
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := toAccommodationFilters(params)

	accommodations, metadata, err := app.accommodationRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	summaries := make([]api.AccommodationSummary, len(accommodations))
	for i, accommodation := range accommodations {
		summaries[i] = api.AccommodationSummary{
			Id:       accommodation.ID,
			Name:     accommodation.Name,
			Location: accommodation.Location,
			Images:   accommodation.Images,
		}
	}

	resp := api.AccommodationListResponse{
		Accommodations: summaries,
		Metadata:       toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toAccommodationFilters(params api.GetAccommodationsParams) domain.AccommodationFilters {
	filters := domain.AccommodationFilters{
		Pagination: domain.Pagination{
			Page:     DefaultPage,
			PageSize: DefaultPageSize,
			Sort:     DefaultSort,
		},
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}
	if params.Sort != nil {
		filters.Sort = *params.Sort
	}
	if params.Term != nil {
		filters.Term = *params.Term
	}

	return filters
}

// GetAccommodationById returns the accommodation together with its room
// types and optional extras, which is everything the booking form needs.
func (app *Application) GetAccommodationById(w http.ResponseWriter, r *http.Request) {
	accommodationId, err := app.readIDParam(r, "accommodationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	accommodation, err := app.accommodationRepo.GetById(r.Context(), accommodationId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	roomTypes, err := app.roomTypeRepo.GetByAccommodationId(r.Context(), accommodationId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	extras, err := app.getExtrasCatalog(r.Context(), accommodationId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.AccommodationDetailResponse{
		Id:          accommodation.ID,
		Name:        accommodation.Name,
		Location:    accommodation.Location,
		Description: accommodation.Description,
		Amenities:   accommodation.Amenities,
		Images:      accommodation.Images,
		RoomTypes:   toApiRoomTypes(roomTypes),
		Extras:      toApiExtras(extras),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiRoomTypes(roomTypes []domain.RoomType) []api.RoomType {
	apiRoomTypes := make([]api.RoomType, len(roomTypes))

	for i, roomType := range roomTypes {
		apiRoomTypes[i] = api.RoomType{
			Id:            roomType.ID,
			Name:          roomType.Name,
			PricePerNight: roomType.PricePerNight,
			MaxGuests:     roomType.MaxGuests,
			TotalRooms:    roomType.TotalRooms,
		}
	}

	return apiRoomTypes
}

func toApiExtras(extras []domain.OptionalExtra) []api.OptionalExtra {
	apiExtras := make([]api.OptionalExtra, len(extras))

	for i, extra := range extras {
		apiExtras[i] = api.OptionalExtra{
			Id:          extra.ID,
			Name:        extra.Name,
			Description: extra.Description,
			Price:       extra.Price,
			PriceType:   string(extra.PriceType),
		}
	}

	return apiExtras
}

func (app *Application) CreateAccommodation(w http.ResponseWriter, r *http.Request) {
	var input api.CreateAccommodationRequest

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

	accommodation := domain.Accommodation{
		Name:        input.Name,
		Location:    input.Location,
		Description: input.Description,
		Amenities:   input.Amenities,
		Images:      input.Images,
	}

	err = app.accommodationRepo.Create(r.Context(), &accommodation)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.AccommodationDetailResponse{
		Id:          accommodation.ID,
		Name:        accommodation.Name,
		Location:    accommodation.Location,
		Description: accommodation.Description,
		Amenities:   accommodation.Amenities,
		Images:      accommodation.Images,
		RoomTypes:   []api.RoomType{},
		Extras:      []api.OptionalExtra{},
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	accommodationId, err := app.readIDParam(r, "accommodationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.UpdateAccommodationRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	accommodation, err := app.accommodationRepo.GetById(r.Context(), accommodationId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if input.Name != nil {
		accommodation.Name = *input.Name
	}
	if input.Location != nil {
		accommodation.Location = *input.Location
	}
	if input.Description != nil {
		accommodation.Description = *input.Description
	}
	if input.Amenities != nil {
		accommodation.Amenities = *input.Amenities
	}
	if input.Images != nil {
		accommodation.Images = *input.Images
	}

	err = app.accommodationRepo.Update(r.Context(), accommodation)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.AccommodationDetailResponse{
		Id:          accommodation.ID,
		Name:        accommodation.Name,
		Location:    accommodation.Location,
		Description: accommodation.Description,
		Amenities:   accommodation.Amenities,
		Images:      accommodation.Images,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteAccommodation(w http.ResponseWriter, r *http.Request) {
	accommodationId, err := app.readIDParam(r, "accommodationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.accommodationRepo.Delete(r.Context(), accommodationId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrAccommodationInUse):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateExtrasCatalog(r.Context(), accommodationId)

	w.WriteHeader(http.StatusNoContent)
}
