package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	cli "github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "warden",
		Usage:   "content moderation daemon (keeps the gate)",
		Version: versioninfo.Short(),
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "reviewer",
			Usage:   "operator identity confirmation prompts are addressed to",
			Value:   "mod-on-duty",
			EnvVars: []string{"WARDEN_REVIEWER"},
		},
		&cli.DurationFlag{
			Name:    "review-timeout",
			Usage:   "how long to wait for a human answer before deferring an item",
			Value:   10 * time.Minute,
			EnvVars: []string{"WARDEN_REVIEW_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:    "sets-file-json",
			Usage:   "file path of JSON file containing classifier term sets",
			EnvVars: []string{"WARDEN_SETS_FILE_JSON"},
		},
	}

	app.Commands = []*cli.Command{
		runCmd,
		demoCmd,
	}

	return app.Run(args)
}

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "run the service",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "database-url",
			Usage:   "database connection string for the decision ledger, or 'mem' for in-process",
			Value:   "sqlite://data/warden/ledger.db",
			EnvVars: []string{"DATABASE_URL"},
		},
		&cli.StringFlag{
			Name:    "redis-url",
			Usage:   "redis connection URL for counters and caches; in-process stores if empty",
			EnvVars: []string{"WARDEN_REDIS_URL"},
		},
		&cli.StringFlag{
			Name:    "slack-webhook-url",
			Usage:   "incoming webhook to publish review prompts to",
			EnvVars: []string{"WARDEN_SLACK_WEBHOOK_URL"},
		},
		&cli.StringFlag{
			Name:    "bind",
			Usage:   "IP or address, and port, to listen on for HTTP APIs",
			Value:   ":3999",
			EnvVars: []string{"WARDEN_BIND"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "IP or address, and port, to listen on for metrics APIs",
			Value:   ":3998",
			EnvVars: []string{"WARDEN_METRICS_LISTEN"},
		},
		&cli.IntFlag{
			Name:    "ingest-rate-limit",
			Usage:   "max content ingest requests per second",
			Value:   20,
			EnvVars: []string{"WARDEN_INGEST_RATE_LIMIT"},
		},
	},
	Action: func(cctx *cli.Context) error {
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(logger)

		// Enable OTLP HTTP exporter
		// For relevant environment variables:
		// https://pkg.go.dev/go.opentelemetry.io/otel/exporters/otlp/otlptrace#readme-environment-variables
		// At a minimum, you need to set
		// OTEL_EXPORTER_OTLP_ENDPOINT=http://localhost:4318
		if ep := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); ep != "" {
			slog.Info("setting up trace exporter", "endpoint", ep)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			exp, err := otlptracehttp.New(ctx)
			if err != nil {
				return fmt.Errorf("failed to create trace exporter: %w", err)
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := exp.Shutdown(ctx); err != nil {
					slog.Error("failed to shutdown trace exporter", "error", err)
				}
			}()

			tp := tracesdk.NewTracerProvider(
				tracesdk.WithBatcher(exp),
				tracesdk.WithResource(resource.NewWithAttributes(
					semconv.SchemaURL,
					semconv.ServiceNameKey.String("warden"),
					attribute.String("env", os.Getenv("ENVIRONMENT")),         // DataDog
					attribute.String("environment", os.Getenv("ENVIRONMENT")), // Others
					attribute.Int64("ID", 1),
				)),
			)
			otel.SetTracerProvider(tp)
		}

		srv, err := NewServer(Config{
			Logger:          logger,
			DatabaseURL:     cctx.String("database-url"),
			RedisURL:        cctx.String("redis-url"),
			SetsFileJSON:    cctx.String("sets-file-json"),
			SlackWebhookURL: cctx.String("slack-webhook-url"),
			Reviewer:        cctx.String("reviewer"),
			ReviewTimeout:   cctx.Duration("review-timeout"),
			IngestRateLimit: cctx.Int("ingest-rate-limit"),
		})
		if err != nil {
			return err
		}

		go func() {
			if err := srv.RunMetrics(cctx.String("metrics-listen")); err != nil {
				slog.Error("failed to start metrics endpoint", "error", err)
				panic(fmt.Errorf("failed to start metrics endpoint: %w", err))
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := srv.RunAPI(ctx, cctx.String("bind")); err != nil {
			return fmt.Errorf("failed to run moderation service: %w", err)
		}
		return nil
	},
}
