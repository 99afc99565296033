package integration_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BookingTestSuite struct {
	BaseSuite
}

func TestBookingSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(BookingTestSuite))
}

func quoteRequestBody(rooms, guests int) string {
	return fmt.Sprintf(`{
		"roomTypeId": %d,
		"checkIn": "%s",
		"checkOut": "%s",
		"guests": %d,
		"rooms": %d,
		"extras": [
			{"extraId": %d, "quantity": 1},
			{"extraId": %d, "quantity": 1}
		]
	}`, TestRoomTypeId, TestBookingCheckIn, TestBookingCheckOut, guests, rooms, TestExtraBreakfastId, TestExtraPickupId)
}

const expectedBreakdown = `{
	"nights": 2,
	"basePriceTotal": "6000",
	"extrasTotal": "2600",
	"tax": "1118",
	"serviceFee": "100",
	"totalPrice": "9818",
	"currency": "NPR"
}`

func (s *BookingTestSuite) TestQuoteBooking() {
	seed := func(t testing.TB, app *TestApp) {
		truncateBookings(t, app.DB)
		truncateCatalog(t, app.DB)
		seedCatalog(t, app.DB)
		flushExtrasCache(t, app)
	}

	scenarios := []Scenario{
		{
			Name:           "returns 422 for missing guests",
			Method:         "POST",
			URL:            "/bookings/quote",
			Body:           strings.NewReader(quoteRequestBody(1, 0)),
			ExpectedStatus: 422,
			ExpectedResponse: `{
				"message": "One or more fields are invalid",
				"validationErrors": [
					{"field": "Guests", "issue": "is required"}
				]
			}`,
		},
		{
			Name:           "returns 404 for unknown room type",
			Method:         "POST",
			URL:            "/bookings/quote",
			Body:           strings.NewReader(quoteRequestBody(1, 2)),
			ExpectedStatus: 404,
			ExpectedResponse: `{
				"message": "The requested resource not found"
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				truncateBookings(t, app.DB)
				truncateCatalog(t, app.DB)
			},
		},
		{
			Name:   "returns 422 when check-out is before check-in",
			Method: "POST",
			URL:    "/bookings/quote",
			Body: strings.NewReader(fmt.Sprintf(`{
				"roomTypeId": %d,
				"checkIn": "%s",
				"checkOut": "%s",
				"guests": 2,
				"rooms": 1
			}`, TestRoomTypeId, TestBookingCheckOut, TestBookingCheckIn)),
			ExpectedStatus: 422,
			ExpectedResponse: `{
				"message": "check-out must be after check-in"
			}`,
			BeforeTestFunc: seed,
		},
		{
			Name:           "returns 422 when more rooms are requested than exist",
			Method:         "POST",
			URL:            "/bookings/quote",
			Body:           strings.NewReader(quoteRequestBody(6, 2)),
			ExpectedStatus: 422,
			ExpectedResponse: `{
				"message": "6 room(s) requested but only 5 exist"
			}`,
			BeforeTestFunc: seed,
		},
		{
			Name:   "returns 422 for unknown optional extra",
			Method: "POST",
			URL:    "/bookings/quote",
			Body: strings.NewReader(fmt.Sprintf(`{
				"roomTypeId": %d,
				"checkIn": "%s",
				"checkOut": "%s",
				"guests": 2,
				"rooms": 1,
				"extras": [{"extraId": 99, "quantity": 1}]
			}`, TestRoomTypeId, TestBookingCheckIn, TestBookingCheckOut)),
			ExpectedStatus: 422,
			ExpectedResponse: `{
				"message": "unknown optional extra: 99"
			}`,
			BeforeTestFunc: seed,
		},
		{
			Name:             "successfully quotes a stay with extras",
			Method:           "POST",
			URL:              "/bookings/quote",
			Body:             strings.NewReader(quoteRequestBody(1, 2)),
			ExpectedStatus:   200,
			ExpectedResponse: fmt.Sprintf(`{"breakdown": %s}`, expectedBreakdown),
			BeforeTestFunc:   seed,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *BookingTestSuite) TestCreateBooking() {
	seed := func(t testing.TB, app *TestApp) {
		truncateBookings(t, app.DB)
		truncateCatalog(t, app.DB)
		seedCatalog(t, app.DB)
		flushExtrasCache(t, app)
	}

	scenarios := []Scenario{
		{
			Name:           "returns 401 when user is not logged in",
			Method:         "POST",
			URL:            "/bookings",
			Body:           strings.NewReader(quoteRequestBody(1, 2)),
			ExpectedStatus: 401,
			ExpectedResponse: `{
				"message": "You must be authenticated to access this resource"
			}`,
		},
		{
			Name:           "returns 409 when overlapping bookings consume the rooms",
			Method:         "POST",
			URL:            "/bookings",
			Body:           strings.NewReader(quoteRequestBody(1, 2)),
			ExpectedStatus: 409,
			ExpectedResponse: `{
				"message": "not enough rooms available for the requested dates"
			}`,
			Cookies: s.app.authenticatedUserCookies(s.T()),
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seed(t, app)
				insertTestBooking(t, app.DB, bookingSeed{Status: "confirmed", Rooms: TestRoomTypeTotalRooms})
			},
		},
		{
			Name:           "successfully creates a pending booking with a checkout session",
			Method:         "POST",
			URL:            "/bookings",
			Body:           strings.NewReader(quoteRequestBody(1, 2)),
			ExpectedStatus: 201,
			ExpectedResponse: fmt.Sprintf(`{
				"bookingId": 1,
				"status": "pending",
				"breakdown": %s,
				"redirectUrl": "https://checkout.stripe.test/pay/cs_test_mock"
			}`, expectedBreakdown),
			Cookies:        s.app.authenticatedUserCookies(s.T()),
			BeforeTestFunc: seed,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				ctx := context.Background()

				var booking struct {
					Status     string
					Nights     int
					TotalPrice string
					TaxRate    string
					Currency   string
				}
				err := app.DB.QueryRow(ctx,
					`SELECT status, nights, total_price::text, tax_rate::text, currency FROM bookings WHERE id = 1`,
				).Scan(&booking.Status, &booking.Nights, &booking.TotalPrice, &booking.TaxRate, &booking.Currency)
				require.NoError(t, err)
				require.Equal(t, "pending", booking.Status)
				require.Equal(t, 2, booking.Nights)
				require.Equal(t, "9818.00", booking.TotalPrice)
				require.Equal(t, "0.1300", booking.TaxRate)
				require.Equal(t, "NPR", booking.Currency)

				var extraCount int
				err = app.DB.QueryRow(ctx, `SELECT COUNT(*) FROM booking_extras WHERE booking_id = 1`).Scan(&extraCount)
				require.NoError(t, err)
				require.Equal(t, 2, extraCount)

				var payment struct {
					SessionId string
					Amount    string
					Status    string
				}
				err = app.DB.QueryRow(ctx,
					`SELECT stripe_checkout_session_id, amount::text, status FROM payments WHERE id = 1`,
				).Scan(&payment.SessionId, &payment.Amount, &payment.Status)
				require.NoError(t, err)
				require.Equal(t, "cs_test_mock", payment.SessionId)
				require.Equal(t, "9818.00", payment.Amount)
				require.Equal(t, "pending", payment.Status)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

// Two requests racing for the last room must not both succeed: the
// availability check runs inside the insert transaction under a room type
// lock, so one request wins and the other gets a conflict.
func (s *BookingTestSuite) TestConcurrentBookingsForLastRoom() {
	t := s.T()

	cookies := s.app.authenticatedUserCookies(t)

	truncateBookings(t, s.app.DB)
	truncateCatalog(t, s.app.DB)
	seedCatalog(t, s.app.DB)
	flushExtrasCache(t, s.app)

	_, err := s.app.DB.Exec(context.Background(), "UPDATE room_types SET total_rooms = 1 WHERE id = 1")
	require.NoError(t, err)

	handler := s.app.App.Routes()
	statuses := make(chan int, 2)
	start := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			req, err := prepareRequest("POST", "/bookings", strings.NewReader(quoteRequestBody(1, 2)), nil, cookies)
			if err != nil {
				statuses <- 0
				return
			}

			<-start

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			statuses <- rec.Code
		}()
	}

	close(start)
	wg.Wait()
	close(statuses)

	var created, conflicted int
	for code := range statuses {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		}
	}

	require.Equal(t, 1, created, "exactly one request should win the last room")
	require.Equal(t, 1, conflicted, "the losing request should get a conflict")

	var bookings int
	err = s.app.DB.QueryRow(context.Background(), "SELECT COUNT(*) FROM bookings").Scan(&bookings)
	require.NoError(t, err)
	require.Equal(t, 1, bookings)
}

func (s *BookingTestSuite) TestGetBookingsOfUser() {
	scenarios := []Scenario{
		{
			Name:           "returns an empty list when user has no bookings",
			Method:         "GET",
			URL:            "/users/me/bookings",
			ExpectedStatus: 200,
			ExpectedResponse: `{
				"bookings": [],
				"metadata": {
					"currentPage": 1,
					"firstPage": 1,
					"lastPage": 0,
					"pageSize": 10,
					"totalRecords": 0
				}
			}`,
			Cookies: s.app.authenticatedUserCookies(s.T()),
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				truncateBookings(t, app.DB)
			},
		},
		{
			Name:           "successfully lists the user's bookings",
			Method:         "GET",
			URL:            "/users/me/bookings",
			ExpectedStatus: 200,
			ExpectedResponse: fmt.Sprintf(`{
				"bookings": [
					{
						"id": 1,
						"accommodationName": "%s",
						"roomTypeName": "%s",
						"checkIn": "%s",
						"checkOut": "%s",
						"status": "pending",
						"totalPrice": "9818"
					}
				],
				"metadata": {
					"currentPage": 1,
					"firstPage": 1,
					"lastPage": 1,
					"pageSize": 10,
					"totalRecords": 1
				}
			}`, TestAccommodationName, TestRoomTypeName, TestBookingCheckIn, TestBookingCheckOut),
			Cookies: s.app.authenticatedUserCookies(s.T()),
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				truncateBookings(t, app.DB)
				truncateCatalog(t, app.DB)
				seedCatalog(t, app.DB)
				insertTestBooking(t, app.DB, bookingSeed{Status: "pending", Rooms: 1, Extras: true})
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *BookingTestSuite) TestGetUserBookingById() {
	scenarios := []Scenario{
		{
			Name:           "returns 404 for a non-existent booking",
			Method:         "GET",
			URL:            "/users/me/bookings/42",
			ExpectedStatus: 404,
			ExpectedResponse: `{
				"message": "The requested resource not found"
			}`,
			Cookies: s.app.authenticatedUserCookies(s.T()),
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				truncateBookings(t, app.DB)
			},
		},
		{
			Name:           "successfully retrieves a booking with a verified price",
			Method:         "GET",
			URL:            "/users/me/bookings/1",
			ExpectedStatus: 200,
			ExpectedResponse: fmt.Sprintf(`{
				"id": 1,
				"accommodationName": "%s",
				"roomTypeName": "%s",
				"checkIn": "%s",
				"checkOut": "%s",
				"guests": 2,
				"rooms": 1,
				"status": "pending",
				"extras": [
					{"name": "%s", "priceType": "per_person", "quantity": 1, "lineTotal": "1600"},
					{"name": "%s", "priceType": "per_booking", "quantity": 1, "lineTotal": "1000"}
				],
				"breakdown": %s,
				"priceVerified": true
			}`, TestAccommodationName, TestRoomTypeName, TestBookingCheckIn, TestBookingCheckOut,
				TestExtraBreakfastName, TestExtraPickupName, expectedBreakdown),
			Cookies: s.app.authenticatedUserCookies(s.T()),
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				truncateBookings(t, app.DB)
				truncateCatalog(t, app.DB)
				seedCatalog(t, app.DB)
				flushExtrasCache(t, app)
				insertTestBooking(t, app.DB, bookingSeed{Status: "pending", Rooms: 1, Extras: true})
			},
		},
		{
			Name:           "reports an unverified price when the catalog has drifted",
			Method:         "GET",
			URL:            "/users/me/bookings/1",
			ExpectedStatus: 200,
			Cookies:        s.app.authenticatedUserCookies(s.T()),
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				truncateBookings(t, app.DB)
				truncateCatalog(t, app.DB)
				seedCatalog(t, app.DB)
				insertTestBooking(t, app.DB, bookingSeed{Status: "pending", Rooms: 1, Extras: true})

				// Reprice breakfast after the booking was made.
				_, err := app.DB.Exec(context.Background(),
					`UPDATE optional_extras SET price = 500 WHERE id = $1`, TestExtraBreakfastId)
				require.NoError(t, err)
				flushExtrasCache(t, app)
			},
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				body := decodeBody(t, res.Body)
				require.Equal(t, false, body["priceVerified"])

				// The snapshot stays authoritative despite the drift.
				breakdown, ok := body["breakdown"].(map[string]any)
				require.True(t, ok)
				require.Equal(t, "9818", breakdown["totalPrice"])
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

type bookingSeed struct {
	Status    string
	Rooms     int
	Extras    bool
	SessionId string
}

// insertTestBooking writes a payment and a booking carrying the canonical
// two-night snapshot. With identities restarted both rows get ID 1.
func insertTestBooking(t testing.TB, db *pgxpool.Pool, seed bookingSeed) {
	t.Helper()

	ctx := context.Background()

	var sessionId any
	if seed.SessionId != "" {
		sessionId = seed.SessionId
	}

	_, err := db.Exec(ctx,
		`INSERT INTO payments (user_id, stripe_checkout_session_id, amount, currency, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		TestUserId, sessionId, "9818", "NPR", "pending",
	)
	require.NoError(t, err)

	_, err = db.Exec(ctx,
		`INSERT INTO bookings (
			reference, user_id, room_type_id, payment_id,
			check_in, check_out, guests, rooms, status,
			nights, base_price_total, extras_total, tax, service_fee, total_price,
			tax_rate, currency
		)
		VALUES ($1, $2, $3, 1, $4, $5, 2, $6, $7, 2, 6000, 2600, 1118, 100, 9818, 0.13, 'NPR')`,
		TestBookingReference, TestUserId, TestRoomTypeId,
		TestBookingCheckIn, TestBookingCheckOut, seed.Rooms, seed.Status,
	)
	require.NoError(t, err)

	if !seed.Extras {
		return
	}

	_, err = db.Exec(ctx,
		`INSERT INTO booking_extras (booking_id, extra_id, quantity, line_total)
		 VALUES (1, $1, 1, 1600), (1, $2, 1, 1000)`,
		TestExtraBreakfastId, TestExtraPickupId,
	)
	require.NoError(t, err)
}
