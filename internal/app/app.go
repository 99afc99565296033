package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/mailer"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/payment"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/repository"
	appvalidator "github.com/dipika-maharjan/tripwise-nepal-api/internal/validator"
	"github.com/dipika-maharjan/tripwise-nepal-api/internal/vcs"
	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager

	userRepo          domain.UserRepository
	tokenRepo         domain.TokenRepository
	accommodationRepo domain.AccommodationRepository
	roomTypeRepo      domain.RoomTypeRepository
	extraRepo         domain.OptionalExtraRepository
	bookingRepo       domain.BookingRepository
	paymentRepo       domain.PaymentRepository

	paymentProvider domain.PaymentProvider

	taxRate   decimal.Decimal
	feePolicy domain.ServiceFeePolicy
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	Stripe           StripeConfig
	Booking          BookingConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessUrl    string
	FailureUrl    string
}

// BookingConfig carries the pricing policy. The tax rate and the service fee
// are deployment configuration, never constants in the calculator.
type BookingConfig struct {
	TaxRate          string
	ServiceFeeMode   string
	ServiceFeeAmount string
	Currency         string
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "TripWiseNepal <no-reply@tripwisenepal.com>", "SMTP sender")

	flag.StringVar(&cfg.Stripe.SecretKey, "stripe-key", "", "Stripe secret key")
	flag.StringVar(&cfg.Stripe.WebhookSecret, "stripe-webhook-secret", "", "Stripe webhook secret")
	flag.StringVar(&cfg.Stripe.SuccessUrl, "stripe-success-url", "https://tripwisenepal.com/payment/success", "Stripe payment success page")
	flag.StringVar(&cfg.Stripe.FailureUrl, "stripe-failure-url", "https://tripwisenepal.com/payment/failure", "Stripe payment failure page")

	flag.StringVar(&cfg.Booking.TaxRate, "booking-tax-rate", "0.13", "VAT rate applied to bookings")
	flag.StringVar(&cfg.Booking.ServiceFeeMode, "booking-service-fee-mode", "flat", "Service fee mode (flat|percent)")
	flag.StringVar(&cfg.Booking.ServiceFeeAmount, "booking-service-fee-amount", "100", "Service fee amount (flat) or rate (percent)")
	flag.StringVar(&cfg.Booking.Currency, "booking-currency", "NPR", "Booking currency code")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app, err := New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		return err
	}
	defer app.Close()

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.serve()
}

// Option overrides a default dependency, used by the integration test suite
// to swap the SMTP mailer and the Stripe client for test doubles.
type Option func(*Application)

func WithMailer(m mailer.Mailer) Option {
	return func(app *Application) {
		app.mailer = m
	}
}

func WithPaymentProvider(p domain.PaymentProvider) Option {
	return func(app *Application) {
		app.paymentProvider = p
	}
}

// New wires the application from a fully populated config. Used by Run and
// by the integration test suite, which supplies container-backed DSNs.
func New(cfg Config, logger *slog.Logger, opts ...Option) (*Application, error) {
	stripe.Key = cfg.Stripe.SecretKey

	taxRate, err := decimal.NewFromString(cfg.Booking.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("invalid booking tax rate %q: %w", cfg.Booking.TaxRate, err)
	}

	feePolicy, err := newServiceFeePolicy(cfg.Booking)
	if err != nil {
		return nil, err
	}

	db, err := newDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	app := &Application{
		config:            cfg,
		logger:            logger,
		db:                db,
		redis:             redisClient,
		validator:         appvalidator.NewValidator(),
		mailer:            mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		sessionManager:    newSessionManager(redisClient),
		userRepo:          repository.NewPostgresUserRepository(db),
		tokenRepo:         repository.NewPostgresTokenRepository(db),
		accommodationRepo: repository.NewPostgresAccommodationRepository(db),
		roomTypeRepo:      repository.NewPostgresRoomTypeRepository(db),
		extraRepo:         repository.NewPostgresOptionalExtraRepository(db),
		bookingRepo:       repository.NewPostgresBookingRepository(db),
		paymentRepo:       repository.NewPostgresPaymentRepository(db),
		paymentProvider:   payment.NewStripePaymentProvider(cfg.Stripe.FailureUrl, cfg.Stripe.SuccessUrl),
		taxRate:           taxRate,
		feePolicy:         feePolicy,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app, nil
}

func (app *Application) Close() {
	app.db.Close()
	app.redis.Close()
}

func newServiceFeePolicy(cfg BookingConfig) (domain.ServiceFeePolicy, error) {
	amount, err := decimal.NewFromString(cfg.ServiceFeeAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid service fee amount %q: %w", cfg.ServiceFeeAmount, err)
	}

	switch cfg.ServiceFeeMode {
	case "flat":
		return domain.FlatServiceFee{Amount: amount}, nil
	case "percent":
		return domain.PercentServiceFee{Rate: amount}, nil
	default:
		return nil, fmt.Errorf("unknown service fee mode %q", cfg.ServiceFeeMode)
	}
}

func newSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func newRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
