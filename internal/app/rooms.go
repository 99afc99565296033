package app

import (
	"errors"
	"net/http"

	"github.com/dipika-maharjan/tripwise-nepal-api/api"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
)

func (app *Application) CreateRoomType(w http.ResponseWriter, r *http.Request) {
	accommodationId, err := app.readIDParam(r, "accommodationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.CreateRoomTypeRequest

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

	// The parent lookup doubles as the 404 for unknown accommodations.
	_, err = app.accommodationRepo.GetById(r.Context(), accommodationId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	roomType := domain.RoomType{
		AccommodationID: accommodationId,
		Name:            input.Name,
		PricePerNight:   input.PricePerNight,
		MaxGuests:       input.MaxGuests,
		TotalRooms:      input.TotalRooms,
	}

	err = app.roomTypeRepo.Create(r.Context(), &roomType)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.RoomType{
		Id:            roomType.ID,
		Name:          roomType.Name,
		PricePerNight: roomType.PricePerNight,
		MaxGuests:     roomType.MaxGuests,
		TotalRooms:    roomType.TotalRooms,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateRoomType(w http.ResponseWriter, r *http.Request) {
	accommodationId, err := app.readIDParam(r, "accommodationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	roomTypeId, err := app.readIDParam(r, "roomTypeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.UpdateRoomTypeRequest

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

	roomType, err := app.roomTypeRepo.GetById(r.Context(), roomTypeId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if roomType.AccommodationID != accommodationId {
		app.notFoundResponse(w, r)
		return
	}

	if input.Name != nil {
		roomType.Name = *input.Name
	}
	if input.PricePerNight != nil {
		roomType.PricePerNight = *input.PricePerNight
	}
	if input.MaxGuests != nil {
		roomType.MaxGuests = *input.MaxGuests
	}
	if input.TotalRooms != nil {
		roomType.TotalRooms = *input.TotalRooms
	}

	err = app.roomTypeRepo.Update(r.Context(), roomType)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.RoomType{
		Id:            roomType.ID,
		Name:          roomType.Name,
		PricePerNight: roomType.PricePerNight,
		MaxGuests:     roomType.MaxGuests,
		TotalRooms:    roomType.TotalRooms,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteRoomType(w http.ResponseWriter, r *http.Request) {
	accommodationId, err := app.readIDParam(r, "accommodationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	roomTypeId, err := app.readIDParam(r, "roomTypeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	roomType, err := app.roomTypeRepo.GetById(r.Context(), roomTypeId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if roomType.AccommodationID != accommodationId {
		app.notFoundResponse(w, r)
		return
	}

	err = app.roomTypeRepo.Delete(r.Context(), roomTypeId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrRoomTypeInUse):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
