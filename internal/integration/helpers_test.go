package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"reference": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(&c)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func decodeBody(t testing.TB, body io.Reader) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&m))

	return m
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

type testUser struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
	Activated bool
}

func defaultTestUser() testUser {
	return testUser{
		FirstName: TestUserFirstName,
		LastName:  TestUserLastName,
		Email:     TestUserEmail,
		Password:  TestUserPassword,
		Role:      "user",
		Activated: false,
	}
}

func insertTestUser(t testing.TB, db *pgxpool.Pool, user testUser) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), 12)
	require.NoError(t, err)

	_, err = db.Exec(
		context.Background(),
		`INSERT INTO users (first_name, last_name, email, password_hash, role, activated)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.FirstName,
		user.LastName,
		user.Email,
		hash,
		user.Role,
		user.Activated,
	)
	require.NoError(t, err)
}

func truncateCatalog(t testing.TB, db *pgxpool.Pool) {
	t.Helper()

	_, err := db.Exec(context.Background(), "TRUNCATE accommodations RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

func truncateBookings(t testing.TB, db *pgxpool.Pool) {
	t.Helper()

	_, err := db.Exec(context.Background(), "TRUNCATE bookings RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	_, err = db.Exec(context.Background(), "TRUNCATE payments RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

// flushExtrasCache drops any cached extras catalog so scenarios that reseed
// the tables read fresh rows.
func flushExtrasCache(t testing.TB, app *TestApp) {
	t.Helper()

	err := app.Cache.Del(context.Background(), fmt.Sprintf("extras_catalog:%d", TestAccommodationId)).Err()
	require.NoError(t, err)
}

// seedCatalog inserts one accommodation with one room type and two optional
// extras. With identities restarted the rows get the Test* constant IDs.
func seedCatalog(t testing.TB, db *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	_, err := db.Exec(ctx,
		`INSERT INTO accommodations (name, location, description, amenities, images)
		 VALUES ($1, $2, $3, $4, $5)`,
		TestAccommodationName,
		TestAccommodationLocation,
		TestAccommodationDescription,
		[]string{"WiFi", "Garden"},
		[]string{"https://example.com/lodge.jpg"},
	)
	require.NoError(t, err)

	_, err = db.Exec(ctx,
		`INSERT INTO room_types (accommodation_id, name, price_per_night, max_guests, total_rooms)
		 VALUES ($1, $2, $3, $4, $5)`,
		TestAccommodationId,
		TestRoomTypeName,
		TestRoomTypePricePerNight,
		TestRoomTypeMaxGuests,
		TestRoomTypeTotalRooms,
	)
	require.NoError(t, err)

	_, err = db.Exec(ctx,
		`INSERT INTO optional_extras (accommodation_id, name, description, price, price_type)
		 VALUES ($1, $2, $3, $4, $5), ($1, $6, $7, $8, $9)`,
		TestAccommodationId,
		TestExtraBreakfastName, "Continental breakfast per guest", TestExtraBreakfastPrice, "per_person",
		TestExtraPickupName, "Private transfer from the airport", TestExtraPickupPrice, "per_booking",
	)
	require.NoError(t, err)
}

// authenticatedUserCookies resets the users table, inserts an activated user
// and logs in through the real login endpoint, returning the session cookies.
func (app *TestApp) authenticatedUserCookies(t testing.TB) []http.Cookie {
	t.Helper()

	return app.loginAs(t, func() testUser {
		user := defaultTestUser()
		user.Activated = true
		return user
	}())
}

func (app *TestApp) authenticatedAdminCookies(t testing.TB) []http.Cookie {
	t.Helper()

	return app.loginAs(t, testUser{
		FirstName: "Admin",
		LastName:  "User",
		Email:     TestAdminEmail,
		Password:  TestAdminPassword,
		Role:      "admin",
		Activated: true,
	})
}

func (app *TestApp) loginAs(t testing.TB, user testUser) []http.Cookie {
	t.Helper()

	truncateUsersAndTokens(t, app.DB)
	insertTestUser(t, app.DB, user)

	body := strings.NewReader(fmt.Sprintf(`{"email": %q, "password": %q}`, user.Email, user.Password))
	req, err := prepareRequest("POST", "/login", body, nil, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code, "login should succeed")

	res := rec.Result()
	defer res.Body.Close()

	cookies := make([]http.Cookie, 0, len(res.Cookies()))
	for _, c := range res.Cookies() {
		cookies = append(cookies, *c)
	}
	require.NotEmpty(t, cookies, "login should set a session cookie")

	return cookies
}
