package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dipika-maharjan/tripwise-nepal-api/api"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const extrasCatalogTTL = 5 * time.Minute

func extrasCatalogKey(accommodationId int) string {
	return fmt.Sprintf("extras_catalog:%d", accommodationId)
}

// getExtrasCatalog returns the optional extras of an accommodation, serving
// from Redis when possible. The catalog is read on every quote and booking,
// so it is worth keeping hot. Cache failures fall through to Postgres.
func (app *Application) getExtrasCatalog(ctx context.Context, accommodationId int) ([]domain.OptionalExtra, error) {
	key := extrasCatalogKey(accommodationId)

	cached, err := app.redis.Get(ctx, key).Bytes()
	if err == nil {
		var extras []domain.OptionalExtra
		if err = json.Unmarshal(cached, &extras); err == nil {
			return extras, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		app.logger.Warn("extras catalog cache read failed", "error", err)
	}

	extras, err := app.extraRepo.GetByAccommodationId(ctx, accommodationId)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(extras)
	if err != nil {
		return nil, err
	}

	err = app.redis.Set(ctx, key, payload, extrasCatalogTTL).Err()
	if err != nil {
		app.logger.Warn("extras catalog cache write failed", "error", err)
	}

	return extras, nil
}

func (app *Application) invalidateExtrasCatalog(ctx context.Context, accommodationId int) {
	err := app.redis.Del(ctx, extrasCatalogKey(accommodationId)).Err()
	if err != nil {
		app.logger.Warn("extras catalog cache invalidation failed", "error", err)
	}
}

func (app *Application) CreateOptionalExtra(w http.ResponseWriter, r *http.Request) {
	accommodationId, err := app.readIDParam(r, "accommodationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.CreateOptionalExtraRequest

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

	extra := domain.OptionalExtra{
		AccommodationID: accommodationId,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		PriceType:       domain.PriceType(input.PriceType),
	}

	err = app.extraRepo.Create(r.Context(), &extra)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.invalidateExtrasCatalog(r.Context(), accommodationId)

	resp := api.OptionalExtra{
		Id:          extra.ID,
		Name:        extra.Name,
		Description: extra.Description,
		Price:       extra.Price,
		PriceType:   string(extra.PriceType),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateOptionalExtra(w http.ResponseWriter, r *http.Request) {
	accommodationId, err := app.readIDParam(r, "accommodationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	extraId, err := app.readIDParam(r, "extraId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.UpdateOptionalExtraRequest

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

	extra, err := app.extraRepo.GetById(r.Context(), extraId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if extra.AccommodationID != accommodationId {
		app.notFoundResponse(w, r)
		return
	}

	if input.Name != nil {
		extra.Name = *input.Name
	}
	if input.Description != nil {
		extra.Description = *input.Description
	}
	if input.Price != nil {
		extra.Price = *input.Price
	}
	if input.PriceType != nil {
		extra.PriceType = domain.PriceType(*input.PriceType)
	}

	err = app.extraRepo.Update(r.Context(), extra)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateExtrasCatalog(r.Context(), accommodationId)

	resp := api.OptionalExtra{
		Id:          extra.ID,
		Name:        extra.Name,
		Description: extra.Description,
		Price:       extra.Price,
		PriceType:   string(extra.PriceType),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteOptionalExtra(w http.ResponseWriter, r *http.Request) {
	accommodationId, err := app.readIDParam(r, "accommodationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	extraId, err := app.readIDParam(r, "extraId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	extra, err := app.extraRepo.GetById(r.Context(), extraId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if extra.AccommodationID != accommodationId {
		app.notFoundResponse(w, r)
		return
	}

	err = app.extraRepo.Delete(r.Context(), extraId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrExtraInUse):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateExtrasCatalog(r.Context(), accommodationId)

	w.WriteHeader(http.StatusNoContent)
}
