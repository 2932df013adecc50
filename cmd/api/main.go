// Package main implements the quote-engine API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"golang.org/x/time/rate"

	"github.com/openbay/quote-engine/engine/lifecycle"
	"github.com/openbay/quote-engine/engine/platereg"
	"github.com/openbay/quote-engine/engine/pricing"
	"github.com/openbay/quote-engine/engine/quote"
	"github.com/openbay/quote-engine/engine/vehicle"
	"github.com/openbay/quote-engine/pkg/events"
	"github.com/openbay/quote-engine/pkg/fn"
	"github.com/openbay/quote-engine/pkg/metrics"
	"github.com/openbay/quote-engine/pkg/mid"
	"github.com/openbay/quote-engine/pkg/resilience"
)

// Config holds all environment-based configuration.
type Config struct {
	Port       string
	NATSURL    string
	Neo4jURL   string
	Neo4jUser  string
	Neo4jPass  string
	CORSOrigin string
	RatePerSec float64
	RateBurst  int
}

func loadConfig() Config {
	return Config{
		Port:       envOr("PORT", "8080"),
		NATSURL:    os.Getenv("NATS_URL"),
		Neo4jURL:   os.Getenv("NEO4J_URL"),
		Neo4jUser:  envOr("NEO4J_USER", "neo4j"),
		Neo4jPass:  envOr("NEO4J_PASS", "password"),
		CORSOrigin: envOr("CORS_ORIGIN", "*"),
		RatePerSec: envFloat("RATE_LIMIT_PER_SEC", 50),
		RateBurst:  int(envFloat("RATE_LIMIT_BURST", 100)),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

var met = metrics.New()

var (
	mQuotes     = met.Counter("quote_engine_quotes_generated_total", "Quotes generated")
	mFallbacks  = met.Counter("quote_engine_pricing_fallbacks_total", "Quotes priced via the fallback entry")
	mDecodeOK   = met.Counter(metrics.WithLabels("quote_engine_vin_decodes_total", "outcome", "ok"), "VIN decode attempts")
	mDecodeErr  = met.Counter(metrics.WithLabels("quote_engine_vin_decodes_total", "outcome", "invalid"), "VIN decode attempts")
	mPlateMiss  = met.Counter("quote_engine_plate_misses_total", "Plate lookups not in the registry")
	mTransition = met.Counter("quote_engine_transitions_total", "Quote status transitions applied")
	mQuoteDur   = met.Histogram("quote_engine_quote_duration_seconds", "Quote calculation time", nil)
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(loadConfig(), logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Plate registry: Neo4j when configured, static demo otherwise ---
	var registry vehicle.PlateRegistry = platereg.NewStatic(platereg.DemoSeed)
	if cfg.Neo4jURL != "" {
		driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURL, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPass, ""))
		if err != nil {
			return fmt.Errorf("neo4j driver: %w", err)
		}
		defer driver.Close(ctx)
		registry = &guardedRegistry{
			inner:   platereg.NewNeo4j(driver),
			breaker: resilience.NewBreaker(resilience.DefaultBreakerOpts),
			retry:   registryRetry,
		}
		logger.Info("plate registry backed by neo4j", "url", cfg.Neo4jURL)
	}

	// --- NATS event publisher (optional) ---
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("quote-engine-api"))
		if err != nil {
			return fmt.Errorf("nats connect: %w", err)
		}
		defer nc.Drain()
		publisher = events.NewPublisher(nc)
		logger.Info("publishing quote events", "url", cfg.NATSURL)
	}

	// --- Core engine ---
	catalog := pricing.NewCatalog()
	srv := &server{
		resolver:   vehicle.NewResolver(registry),
		catalog:    catalog,
		calculator: quote.NewCalculator(catalog, quote.DefaultConfig()),
		manager:    lifecycle.NewManager(),
		publisher:  publisher,
		logger:     logger,
	}

	// --- HTTP server ---
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", srv.handleHealth)
	mux.HandleFunc("POST /api/vin/decode", srv.handleDecodeVIN)
	mux.HandleFunc("POST /api/plate/decode", srv.handleDecodePlate)
	mux.HandleFunc("GET /api/jurisdictions", srv.handleJurisdictions)
	mux.HandleFunc("POST /api/quotes", srv.handleGenerateQuote)
	mux.HandleFunc("POST /api/quotes/transition", srv.handleTransition)
	mux.HandleFunc("GET /api/pricing", srv.handleListPricing)
	mux.HandleFunc("PUT /api/pricing/{serviceType}", srv.handleSetPricing)
	mux.HandleFunc("POST /api/pricing/reset", srv.handleResetPricing)
	mux.Handle("GET /metrics", met.Handler())

	handler := mid.Chain(mux,
		mid.Recover(logger),
		mid.Logger(logger),
		mid.CORS(cfg.CORSOrigin),
		mid.OTel("quote-engine-api"),
		mid.RateLimit(rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RateBurst)),
	)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutCtx)
}

// registryRetry bounds how long a single plate lookup spends re-trying a
// flaky registry before the breaker sees the failure. Waits are short
// because the lookup sits on the request path.
var registryRetry = fn.RetryOpts{
	MaxAttempts: 3,
	InitialWait: 100 * time.Millisecond,
	MaxWait:     time.Second,
	Jitter:      true,
}

// guardedRegistry wraps a plate registry with retry and a circuit breaker
// so a struggling Neo4j does not stall every plate lookup.
type guardedRegistry struct {
	inner   vehicle.PlateRegistry
	breaker *resilience.Breaker
	retry   fn.RetryOpts
}

func (g *guardedRegistry) Lookup(ctx context.Context, jurisdiction, plate string) (string, error) {
	opts := g.retry
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}

	var vin string
	var lookupErr error
	err := g.breaker.Call(ctx, func(ctx context.Context) error {
		// A plate missing from the registry is a normal outcome, not a
		// registry failure; it is neither retried nor counted against
		// the breaker. Only infrastructure errors burn retry attempts.
		res := fn.Retry(ctx, opts, func(ctx context.Context) fn.Result[string] {
			v, err := g.inner.Lookup(ctx, jurisdiction, plate)
			if err != nil && !errors.Is(err, vehicle.ErrPlateNotFound) {
				return fn.Err[string](err)
			}
			lookupErr = err
			return fn.Ok(v)
		})
		v, err := res.Unwrap()
		if err != nil {
			return err
		}
		vin = v
		return nil
	})
	if err != nil {
		return "", err
	}
	return vin, lookupErr
}
