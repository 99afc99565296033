package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/dipika-maharjan/tripwise-nepal-api/api"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/mocks"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func decimalComparer() cmp.Option {
	return cmp.Comparer(func(a, b decimal.Decimal) bool {
		return a.Equal(b)
	})
}

func TestGetAccommodations(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		getAllFunc     func(context.Context, domain.AccommodationFilters) ([]*domain.Accommodation, *domain.Metadata, error)
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.AccommodationListResponse
	}{
		{
			name: "successful retrieval with default parameters",
			url:  "/accommodations",
			getAllFunc: func(ctx context.Context, filters domain.AccommodationFilters) ([]*domain.Accommodation, *domain.Metadata, error) {
				if filters.Page != DefaultPage || filters.PageSize != DefaultPageSize || filters.Sort != DefaultSort {
					t.Errorf("unexpected default filters: %+v", filters.Pagination)
				}

				accommodations := []*domain.Accommodation{
					{
						ID:       1,
						Name:     "Himalayan Lodge",
						Location: "Pokhara",
						Images:   []string{"https://example.com/lodge.jpg"},
					},
					{
						ID:       2,
						Name:     "Everest View Hotel",
						Location: "Namche Bazaar",
					},
				}
				metadata := &domain.Metadata{
					CurrentPage:  1,
					FirstPage:    1,
					LastPage:     1,
					PageSize:     10,
					TotalRecords: 2,
				}
				return accommodations, metadata, nil
			},
			wantStatus: http.StatusOK,
			wantResponse: &api.AccommodationListResponse{
				Accommodations: []api.AccommodationSummary{
					{
						Id:       1,
						Name:     "Himalayan Lodge",
						Location: "Pokhara",
						Images:   []string{"https://example.com/lodge.jpg"},
					},
					{
						Id:       2,
						Name:     "Everest View Hotel",
						Location: "Namche Bazaar",
					},
				},
				Metadata: &api.Metadata{
					CurrentPage:  1,
					FirstPage:    1,
					LastPage:     1,
					PageSize:     10,
					TotalRecords: 2,
				},
			},
		},
		{
			name: "search term and custom paging reach the repository",
			url:  "/accommodations?term=pokhara&page=2&pageSize=5&sort=-name",
			getAllFunc: func(ctx context.Context, filters domain.AccommodationFilters) ([]*domain.Accommodation, *domain.Metadata, error) {
				if filters.Term != "pokhara" || filters.Page != 2 || filters.PageSize != 5 || filters.Sort != "-name" {
					t.Errorf("unexpected filters: %+v", filters.Pagination)
				}

				return []*domain.Accommodation{}, &domain.Metadata{}, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name:           "validation error - negative page",
			url:            "/accommodations?page=-1",
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at least 1",
		},
		{
			name:           "validation error - invalid sort column",
			url:            "/accommodations?sort=id;+DROP+TABLE+accommodations",
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be one of: id name location -id -name -location",
		},
		{
			name:           "validation error - term too long",
			url:            "/accommodations?term=" + strings.Repeat("a", 101),
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at most 100",
		},
		{
			name: "database error",
			url:  "/accommodations",
			getAllFunc: func(ctx context.Context, filters domain.AccommodationFilters) ([]*domain.Accommodation, *domain.Metadata, error) {
				return nil, nil, fmt.Errorf("database connection error")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.accommodationRepo = &mocks.MockAccommodationRepo{
					GetAllFunc: tt.getAllFunc,
				}
			})

			w, r := executeRequest(t, http.MethodGet, tt.url, nil)

			app.GetAccommodations(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("GetAccommodations() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantResponse != nil {
				var response api.AccommodationListResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				if err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if diff := cmp.Diff(tt.wantResponse, &response); diff != "" {
					t.Errorf("GetAccommodations() response mismatch (-want +got):\n%s", diff)
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestGetAccommodationById(t *testing.T) {
	lodge := &domain.Accommodation{
		ID:          1,
		Name:        "Himalayan Lodge",
		Location:    "Pokhara",
		Description: "Lakeside lodge with mountain views",
		Amenities:   []string{"wifi", "breakfast"},
	}

	roomTypes := []domain.RoomType{
		{
			ID:              10,
			AccommodationID: 1,
			Name:            "Deluxe Double",
			PricePerNight:   decimal.NewFromInt(3000),
			MaxGuests:       2,
			TotalRooms:      5,
		},
	}

	extras := []domain.OptionalExtra{
		{
			ID:              20,
			AccommodationID: 1,
			Name:            "Breakfast",
			Price:           decimal.NewFromInt(400),
			PriceType:       domain.PerPerson,
		},
	}

	tests := []struct {
		name           string
		url            string
		getByIdFunc    func(ctx context.Context, id int) (*domain.Accommodation, error)
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.AccommodationDetailResponse
	}{
		{
			name: "successful retrieval with room types and extras",
			url:  "/accommodations/1",
			getByIdFunc: func(ctx context.Context, id int) (*domain.Accommodation, error) {
				return lodge, nil
			},
			wantStatus: http.StatusOK,
			wantResponse: &api.AccommodationDetailResponse{
				Id:          1,
				Name:        "Himalayan Lodge",
				Location:    "Pokhara",
				Description: "Lakeside lodge with mountain views",
				Amenities:   []string{"wifi", "breakfast"},
				RoomTypes: []api.RoomType{
					{
						Id:            10,
						Name:          "Deluxe Double",
						PricePerNight: decimal.NewFromInt(3000),
						MaxGuests:     2,
						TotalRooms:    5,
					},
				},
				Extras: []api.OptionalExtra{
					{
						Id:        20,
						Name:      "Breakfast",
						Price:     decimal.NewFromInt(400),
						PriceType: "per_person",
					},
				},
			},
		},
		{
			name: "accommodation not found",
			url:  "/accommodations/99",
			getByIdFunc: func(ctx context.Context, id int) (*domain.Accommodation, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.accommodationRepo = &mocks.MockAccommodationRepo{
					GetByIdFunc: tt.getByIdFunc,
				}
				a.roomTypeRepo = &mocks.MockRoomTypeRepo{
					GetByAccommodationIdFunc: func(ctx context.Context, accommodationId int) ([]domain.RoomType, error) {
						return roomTypes, nil
					},
				}
				a.extraRepo = &mocks.MockOptionalExtraRepo{
					GetByAccommodationIdFunc: func(ctx context.Context, accommodationId int) ([]domain.OptionalExtra, error) {
						return extras, nil
					},
				}
			})

			w, r := executeRequest(t, http.MethodGet, tt.url, nil)
			r = withChiURLParam(r, "accommodationId", strings.TrimPrefix(tt.url, "/accommodations/"))

			app.GetAccommodationById(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("GetAccommodationById() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantResponse != nil {
				var response api.AccommodationDetailResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				if err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if diff := cmp.Diff(tt.wantResponse, &response, decimalComparer()); diff != "" {
					t.Errorf("GetAccommodationById() response mismatch (-want +got):\n%s", diff)
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}
