// Package api holds the request and response types of the TripWiseNepal HTTP API.
package api

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

// --- auth / users ---

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,alpha,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,alpha,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,password"`
}

type UserActivationRequest struct {
	Token string `json:"token" validate:"required,len=43"`
}

type UserActivationResponse struct {
	Activated bool `json:"activated"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AlreadyLoggedInResponse struct {
	Message string `json:"message"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetCompletionRequest struct {
	Token    string `json:"token" validate:"required,len=43"`
	Password string `json:"password" validate:"required,password"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,alpha,min=2,max=50"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,alpha,min=2,max=50"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Activated bool      `json:"activated"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Metadata *Metadata      `json:"metadata,omitempty"`
}

// --- accommodations ---

type GetAccommodationsParams struct {
	Term     *string `validate:"omitempty,max=100"`
	Page     *int    `validate:"omitempty,min=1"`
	PageSize *int    `validate:"omitempty,min=1,max=50"`
	Sort     *string `validate:"omitempty,oneof=id name location -id -name -location"`
}

type AccommodationSummary struct {
	Id       int      `json:"id"`
	Name     string   `json:"name"`
	Location string   `json:"location"`
	Images   []string `json:"images,omitempty"`
}

type AccommodationListResponse struct {
	Accommodations []AccommodationSummary `json:"accommodations"`
	Metadata       *Metadata              `json:"metadata,omitempty"`
}

type AccommodationDetailResponse struct {
	Id          int             `json:"id"`
	Name        string          `json:"name"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Amenities   []string        `json:"amenities,omitempty"`
	Images      []string        `json:"images,omitempty"`
	RoomTypes   []RoomType      `json:"roomTypes"`
	Extras      []OptionalExtra `json:"optionalExtras"`
}

type CreateAccommodationRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=120"`
	Location    string   `json:"location" validate:"required,min=2,max=120"`
	Description string   `json:"description" validate:"required,max=2000"`
	Amenities   []string `json:"amenities" validate:"dive,max=60"`
	Images      []string `json:"images" validate:"dive,url"`
}

type UpdateAccommodationRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Location    *string   `json:"location,omitempty" validate:"omitempty,min=2,max=120"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Amenities   *[]string `json:"amenities,omitempty" validate:"omitempty,dive,max=60"`
	Images      *[]string `json:"images,omitempty" validate:"omitempty,dive,url"`
}

// --- room types ---

type RoomType struct {
	Id            int             `json:"id"`
	Name          string          `json:"name"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	MaxGuests     int             `json:"maxGuests"`
	TotalRooms    int             `json:"totalRooms"`
}

type CreateRoomTypeRequest struct {
	Name          string          `json:"name" validate:"required,min=2,max=120"`
	PricePerNight decimal.Decimal `json:"pricePerNight" validate:"required"`
	MaxGuests     int             `json:"maxGuests" validate:"required,min=1"`
	TotalRooms    int             `json:"totalRooms" validate:"required,min=1"`
}

type UpdateRoomTypeRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	PricePerNight *decimal.Decimal `json:"pricePerNight,omitempty"`
	MaxGuests     *int             `json:"maxGuests,omitempty" validate:"omitempty,min=1"`
	TotalRooms    *int             `json:"totalRooms,omitempty" validate:"omitempty,min=1"`
}

// --- optional extras ---

type OptionalExtra struct {
	Id          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	PriceType   string          `json:"priceType"`
}

type CreateOptionalExtraRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=120"`
	Description string          `json:"description" validate:"max=500"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	PriceType   string          `json:"priceType" validate:"required,price_type"`
}

type UpdateOptionalExtraRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	PriceType   *string          `json:"priceType,omitempty" validate:"omitempty,price_type"`
}

// --- bookings ---

type ExtraSelection struct {
	ExtraId  int `json:"extraId" validate:"required,min=1"`
	Quantity int `json:"quantity" validate:"omitempty,min=1"`
}

type BookingQuoteRequest struct {
	RoomTypeId int              `json:"roomTypeId" validate:"required,min=1"`
	CheckIn    types.Date       `json:"checkIn" validate:"required"`
	CheckOut   types.Date       `json:"checkOut" validate:"required"`
	Guests     int              `json:"guests" validate:"required,min=1"`
	Rooms      int              `json:"rooms" validate:"required,min=1"`
	Extras     []ExtraSelection `json:"extras" validate:"dive"`
}

type CreateBookingRequest = BookingQuoteRequest

type PriceBreakdown struct {
	Nights         int             `json:"nights"`
	BasePriceTotal decimal.Decimal `json:"basePriceTotal"`
	ExtrasTotal    decimal.Decimal `json:"extrasTotal"`
	Tax            decimal.Decimal `json:"tax"`
	ServiceFee     decimal.Decimal `json:"serviceFee"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	Currency       string          `json:"currency"`
}

type BookingQuoteResponse struct {
	Breakdown PriceBreakdown `json:"breakdown"`
}

type CreateBookingResponse struct {
	BookingId   int            `json:"bookingId"`
	Reference   string         `json:"reference"`
	Status      string         `json:"status"`
	Breakdown   PriceBreakdown `json:"breakdown"`
	RedirectUrl string         `json:"redirectUrl"`
}

type BookingSummary struct {
	Id                int             `json:"id"`
	Reference         string          `json:"reference"`
	AccommodationName string          `json:"accommodationName"`
	RoomTypeName      string          `json:"roomTypeName"`
	CheckIn           types.Date      `json:"checkIn"`
	CheckOut          types.Date      `json:"checkOut"`
	Status            string          `json:"status"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	CreatedAt         time.Time       `json:"createdAt"`
}

type BookingListResponse struct {
	Bookings []BookingSummary `json:"bookings"`
	Metadata *Metadata        `json:"metadata,omitempty"`
}

type BookingExtraLine struct {
	Name      string          `json:"name"`
	PriceType string          `json:"priceType"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type BookingDetailResponse struct {
	Id                int                `json:"id"`
	Reference         string             `json:"reference"`
	AccommodationName string             `json:"accommodationName"`
	RoomTypeName      string             `json:"roomTypeName"`
	CheckIn           types.Date         `json:"checkIn"`
	CheckOut          types.Date         `json:"checkOut"`
	Guests            int                `json:"guests"`
	Rooms             int                `json:"rooms"`
	Status            string             `json:"status"`
	Extras            []BookingExtraLine `json:"extras"`
	Breakdown         PriceBreakdown     `json:"breakdown"`
	// PriceVerified reports whether recomputing the breakdown against the
	// current catalog still matches the persisted snapshot. The snapshot
	// stays authoritative either way.
	PriceVerified bool      `json:"priceVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ListParams struct {
	Page     *int `validate:"omitempty,min=1"`
	PageSize *int `validate:"omitempty,min=1,max=50"`
}
