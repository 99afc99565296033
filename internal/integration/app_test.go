package integration_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/dipika-maharjan/tripwise-nepal-api/internal/app"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/mailer"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/payment"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Mailer *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	mockMailer := mailer.NewMockMailer()

	application, err := app.New(
		cfg,
		logger,
		app.WithMailer(mockMailer),
		app.WithPaymentProvider(payment.NewMockPaymentProvider()),
	)
	if err != nil {
		return nil, err
	}

	// Separate pool for seeding and assertions, so tests never contend with
	// the application's own connections.
	db, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	cache := redis.NewClient(&redis.Options{Addr: cfg.Redis.URL})

	return &TestApp{
		App:    application,
		DB:     db,
		Cache:  cache,
		Mailer: mockMailer,
	}, nil
}
