package integration_test

import "github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"

const (
	// User related constants
	TestUserId        = 1
	TestUserFirstName = "Dipika"
	TestUserLastName  = "Maharjan"
	TestUserEmail     = "test@example.com"
	TestUserPassword  = "Test123!@#"

	TestAdminEmail    = "admin@example.com"
	TestAdminPassword = "Admin123!@#"

	// Token related constants
	TestToken      = "r8zEhnVzNTZDf8WypfYBTU_FkFUm9jXnTmMrK-WuFQ8"
	TestTokenScope = domain.UserActivationScope

	// Catalog related constants
	TestAccommodationId          = 1
	TestAccommodationName        = "Himalayan Lodge"
	TestAccommodationLocation    = "Pokhara"
	TestAccommodationDescription = "A lakeside lodge with views of the Annapurna range."

	TestRoomTypeId            = 1
	TestRoomTypeName          = "Deluxe Double"
	TestRoomTypePricePerNight = "3000"
	TestRoomTypeMaxGuests     = 2
	TestRoomTypeTotalRooms    = 5

	TestExtraBreakfastId    = 1
	TestExtraBreakfastName  = "Breakfast"
	TestExtraBreakfastPrice = "400"

	TestExtraPickupId    = 2
	TestExtraPickupName  = "Airport Pickup"
	TestExtraPickupPrice = "1000"

	// Booking related constants
	TestBookingCheckIn   = "2026-10-10"
	TestBookingCheckOut  = "2026-10-12"
	TestBookingReference = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)
