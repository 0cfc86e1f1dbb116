// Package main provides the spmm CLI: it times the sparse-path matrix
// multiply on generated activation-like inputs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/born-ml/spmm/internal/parallel"
	"github.com/born-ml/spmm/tensor"
)

const version = "v0.1.0-dev"

var (
	batch       = flag.Int("batch", 0, "Batch size for a 3D left operand (0 = 2D)")
	rows        = flag.Int("rows", 1024, "Rows of the left operand")
	inner       = flag.Int("inner", 1024, "Columns of the left operand / rows of the right operand")
	cols        = flag.Int("cols", 256, "Columns of the right operand")
	density     = flag.Float64("density", 0.1, "Expected fraction of non-zero left entries, in (0, 1]")
	runs        = flag.Int("runs", 5, "Number of timed multiplications")
	seed        = flag.Int64("seed", 1, "Random seed")
	workers     = flag.Int("workers", 0, "Worker goroutines (0 = default, 1 = sequential)")
	precision   = flag.String("precision", "fp32", "Element type (fp32, fp64)")
	verifyFlag  = flag.Bool("verify", false, "Compare the result against gonum's dense product")
	debug       = flag.Bool("debug", false, "Enable debug logging")
	enableOTel  = flag.Bool("otel", false, "Enable OpenTelemetry tracing (stdout)")
	metricsAddr = flag.String("metrics", "", "Serve Prometheus metrics on this address after the run (e.g. :9100)")
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("spmm %s\n", version)
		return
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Caller().Logger()

	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	tensor.SetLogger(log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *enableOTel {
		shutdown, err := initTracer()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize tracer")
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("Failed to flush traces")
			}
		}()
	}

	cfg := benchConfig{
		Batch:   *batch,
		Rows:    *rows,
		Inner:   *inner,
		Cols:    *cols,
		Density: *density,
		Runs:    *runs,
		Seed:    *seed,
		Verify:  *verifyFlag,
		Pool:    poolConfig(*workers),
	}

	ctx, span := tracer.Start(ctx, "bench")
	res, err := runPrecision(ctx, *precision, cfg)
	span.End()
	if err != nil {
		log.Fatal().Err(err).Msg("Benchmark failed")
	}

	ev := log.Info().
		Stringer("left", cfg.leftShape()).
		Ints("right", []int{cfg.Inner, cfg.Cols}).
		Str("precision", *precision).
		Int("workers", cfg.Pool.NumWorkers).
		Int("nnz", res.NNZ).
		Float64("density", res.Density).
		Dur("best", res.Best).
		Dur("mean", res.Mean)
	if cfg.Verify {
		ev = ev.Float64("max_abs_error", res.MaxError)
	}
	ev.Msg("Sparse matmul benchmark")

	if *metricsAddr != "" {
		serveMetrics(ctx, *metricsAddr)
	}
}

// poolConfig maps the -workers flag onto a worker pool configuration.
func poolConfig(n int) parallel.Config {
	switch {
	case n == 1:
		return parallel.Sequential()
	case n > 1:
		return parallel.Config{Enabled: true, NumWorkers: n, MinChunkSize: 1}
	default:
		return parallel.DefaultConfig()
	}
}

func runPrecision(ctx context.Context, name string, cfg benchConfig) (*benchResult, error) {
	switch name {
	case "fp32":
		return runBench[float32](ctx, cfg)
	case "fp64":
		return runBench[float64](ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown precision %q (want fp32 or fp64)", name)
	}
}

// serveMetrics exposes /metrics until ctx is cancelled.
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("Serving metrics, interrupt to exit")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}

func initTracer() (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("spmm"),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp.Shutdown, nil
}
