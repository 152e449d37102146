package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/metinatakli/cinebook/api"
	"github.com/metinatakli/cinebook/internal/booking"
	"github.com/metinatakli/cinebook/internal/catalog"
	"github.com/metinatakli/cinebook/internal/domain"
	"github.com/metinatakli/cinebook/internal/mailer"
	"github.com/metinatakli/cinebook/internal/seatmap"
	appvalidator "github.com/metinatakli/cinebook/internal/validator"
	"github.com/metinatakli/cinebook/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "cinebook-api"

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	spec           *openapi3.T
	machine        *booking.Machine
	metrics        *bookingMetrics
	wg             sync.WaitGroup
}

type Config struct {
	Port             int
	Env              string
	CatalogFile      string
	Seed             uint64
	OtelCollectorUrl string
	Cinema           domain.CinemaConfig
	Redis            RedisConfig
	Session          SessionConfig
	SMTP             SMTPConfig
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SessionConfig struct {
	IdleTimeout time.Duration
	Lifetime    time.Duration
	CookieName  string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

func Run() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config

	flag.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	flag.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.CatalogFile, "catalog", envString("CATALOG_FILE", ""), "YAML catalog file (built-in catalog when empty)")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "Seat map random seed (0 for a random seed)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	flag.IntVar(&cfg.Cinema.Rows, "rows", domain.DefaultCinemaConfig.Rows, "Hall rows (max 26)")
	flag.IntVar(&cfg.Cinema.SeatsPerRow, "seats-per-row", domain.DefaultCinemaConfig.SeatsPerRow, "Seats per hall row")
	flag.Float64Var(&cfg.Cinema.OccupiedFraction, "occupied-fraction", domain.DefaultCinemaConfig.OccupiedFraction, "Fraction of seats shown as taken")

	flag.StringVar(&cfg.Redis.URL, "redis-url", envString("REDIS_URL", ""), "Redis address for the session store (in-memory store when empty)")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.DurationVar(&cfg.Session.IdleTimeout, "session-idle-timeout", 20*time.Minute, "Booking session idle timeout")
	flag.DurationVar(&cfg.Session.Lifetime, "session-lifetime", 12*time.Hour, "Booking session absolute lifetime")
	flag.StringVar(&cfg.Session.CookieName, "session-cookie", "session_id", "Session cookie name")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", envString("SMTP_HOST", ""), "SMTP host (confirmation mails disabled when empty)")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", envInt("SMTP_PORT", 2525), "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", envString("SMTP_USERNAME", ""), "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", envString("SMTP_PASSWORD", ""), "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", envString("SMTP_SENDER", "CineBook <no-reply@cinebook.local>"), "SMTP sender")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	err = cfg.validate()
	if err != nil {
		return err
	}

	textHandler := slog.NewTextHandler(os.Stdout, nil)
	logger := slog.New(textHandler)
	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(textHandler, otelslog.NewHandler(serviceName)))
	}

	movies := catalog.Default()
	if cfg.CatalogFile != "" {
		movies, err = catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			return err
		}
	}

	spec, err := api.LoadSpec()
	if err != nil {
		return err
	}

	sessionManager, closeStore, err := NewSessionManager(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var m mailer.Mailer = mailer.NopMailer{}
	if cfg.SMTP.Host != "" {
		m = mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)
	}

	app := NewApp(
		cfg,
		logger,
		NewMachine(cfg, movies),
		appvalidator.NewValidator(),
		m,
		sessionManager,
		spec,
	)

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.run()
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	machine *booking.Machine,
	validator *validator.Validate,
	mailer mailer.Mailer,
	sessionManager *scs.SessionManager,
	spec *openapi3.T) *Application {

	return &Application{
		config:         cfg,
		logger:         logger,
		validator:      validator,
		mailer:         mailer,
		sessionManager: sessionManager,
		spec:           spec,
		machine:        machine,
		metrics:        newBookingMetrics(),
	}
}

// NewMachine wires the booking state machine for the configured hall.
func NewMachine(cfg Config, movies domain.MovieCatalog) *booking.Machine {
	generator := seatmap.NewGenerator(nil)
	if cfg.Seed != 0 {
		generator = seatmap.NewSeeded(cfg.Seed)
	}

	return booking.NewMachine(movies, generator, booking.WithCinema(cfg.Cinema))
}

func (cfg Config) validate() error {
	switch {
	case cfg.Cinema.Rows < 1 || cfg.Cinema.Rows > 26:
		return fmt.Errorf("rows must be between 1 and 26, got %d", cfg.Cinema.Rows)
	case cfg.Cinema.SeatsPerRow < 1:
		return fmt.Errorf("seats-per-row must be positive, got %d", cfg.Cinema.SeatsPerRow)
	case cfg.Cinema.OccupiedFraction < 0 || cfg.Cinema.OccupiedFraction >= 1:
		return fmt.Errorf("occupied-fraction must be in [0, 1), got %v", cfg.Cinema.OccupiedFraction)
	}

	return nil
}

// NewSessionManager keeps sessions in Redis when a Redis URL is configured
// and in process memory otherwise. The returned func releases the store.
func NewSessionManager(cfg Config) (*scs.SessionManager, func(), error) {
	sessionManager := scs.New()

	sessionManager.IdleTimeout = cfg.Session.IdleTimeout
	sessionManager.Lifetime = cfg.Session.Lifetime
	sessionManager.Cookie.Name = cfg.Session.CookieName
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Env == "prod"

	if cfg.Redis.URL == "" {
		store := memstore.New()
		sessionManager.Store = store

		return sessionManager, store.StopCleanup, nil
	}

	client, err := NewRedisClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	sessionManager.Store = goredisstore.New(client)

	return sessionManager, func() { client.Close() }, nil
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to instrument redis tracing: %w", err)
	}

	if err := redisotel.InstrumentMetrics(rdb); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to instrument redis metrics: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func (app *Application) run() error {
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

		app.logger.Info("completing background tasks", "addr", srv.Addr)

		app.wg.Wait()
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

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.requestLogger)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/openapi.json", app.GetOpenAPISpec)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.GetHealth)
		r.Get("/movies", app.GetMovies)
		r.Get("/movies/{movieId}", app.GetMovieById)

		r.Route("/booking", func(r chi.Router) {
			r.Use(app.ensureBookingSession)

			r.Get("/", app.GetBooking)
			r.Post("/offering", app.SelectMovieHandler)
			r.Post("/seats", app.ToggleSeatHandler)
			r.Patch("/contact", app.EditContactHandler)
			r.Post("/submit", app.SubmitBookingHandler)
			r.Post("/reset", app.ResetBookingHandler)
			r.Post("/book-another", app.BookAnotherHandler)
		})
	})

	return r
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return n
}
