package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/dipika-maharjan/tripwise-nepal-api/api"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/mailer"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/mocks"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/validator"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config: Config{
			Booking: BookingConfig{Currency: "NPR"},
		},
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager: scs.New(),
		userRepo:       &mocks.MockUserRepo{},
		tokenRepo:      &mocks.MockTokenRepo{},
		mailer:         &mailer.MockMailer{},
		redis:          newCacheMissRedis(),
		taxRate:        decimal.RequireFromString("0.13"),
		feePolicy:      domain.FlatServiceFee{Amount: decimal.NewFromInt(100)},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// newCacheMissRedis always misses on reads and accepts all writes, so handler
// tests exercise the repository path of the extras catalog.
func newCacheMissRedis() *mocks.MockRedisClient {
	client := &mocks.MockRedisClient{}

	client.On("Get", mock.Anything, mock.Anything).
		Return(redis.NewStringResult("", redis.Nil))
	client.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(redis.NewStatusResult("OK", nil))
	client.On("Del", mock.Anything, mock.Anything).
		Return(redis.NewIntResult(1, nil))

	return client
}

func setupTestSession(t *testing.T, app *Application, r *http.Request, userId int) *http.Request {
	ctx, err := app.sessionManager.Load(r.Context(), "session")
	if err != nil {
		t.Errorf("Failed to load session: %v", err)
	}

	app.sessionManager.Put(ctx, SessionKeyUserId.String(), userId)

	return r.WithContext(context.WithValue(ctx, SessionKeyUserId, userId))
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		if tt.wantErrMessage == "" {
			return
		}

		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		errorSet[validationResp.Message] = true
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

// withChiURLParam injects a route parameter the way the chi router would, so
// handlers can be called directly.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func ptr[T any](v T) *T {
	return &v
}
