package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/warden-social/warden/cachestore"
	"github.com/warden-social/warden/classifier"
	"github.com/warden-social/warden/countstore"
	"github.com/warden-social/warden/directory"
	"github.com/warden-social/warden/engine"
	"github.com/warden-social/warden/gate"
	"github.com/warden-social/warden/ledger"
	"github.com/warden-social/warden/moderation"
	"github.com/warden-social/warden/operator"
	"github.com/warden-social/warden/setstore"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogecho "github.com/samber/slog-echo"
	"golang.org/x/time/rate"
)

type Server struct {
	logger  *slog.Logger
	echo    *echo.Echo
	engine  *engine.Engine
	users   *directory.MockDirectory
	limiter *rate.Limiter
}

type Config struct {
	Logger          *slog.Logger
	DatabaseURL     string
	RedisURL        string
	SetsFileJSON    string
	SlackWebhookURL string
	Reviewer        string
	ReviewTimeout   time.Duration
	IngestRateLimit int
}

func NewServer(config Config) (*Server, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	sets := setstore.NewMemSetStore()
	if config.SetsFileJSON != "" {
		if err := sets.LoadFromFileJSON(config.SetsFileJSON); err != nil {
			return nil, fmt.Errorf("initializing term sets: %w", err)
		}
		logger.Info("loaded term sets from JSON", "path", config.SetsFileJSON)
	} else {
		logger.Warn("no term sets configured; keyword classifier will not flag anything")
	}

	var counters countstore.CountStore
	var profiles cachestore.ProfileCache
	if config.RedisURL != "" {
		cnt, err := countstore.NewRedisCountStore(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis countstore: %w", err)
		}
		counters = cnt

		pc, err := cachestore.NewRedisProfileCache(config.RedisURL, cachestore.DefaultProfileTTL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis profile cache: %w", err)
		}
		profiles = pc
	} else {
		counters = countstore.NewMemCountStore()
		profiles = cachestore.NewMemProfileCache(cachestore.DefaultProfileCapacity, cachestore.DefaultProfileTTL)
	}

	var lgr ledger.Ledger
	if config.DatabaseURL == "" || config.DatabaseURL == "mem" {
		lgr = ledger.NewMemLedger()
	} else {
		gl, err := ledger.NewGormLedger(config.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("initializing decision ledger: %w", err)
		}
		lgr = gl
	}

	var notifier gate.Notifier
	if config.SlackWebhookURL != "" {
		notifier = &operator.SlackChannel{WebhookURL: config.SlackWebhookURL}
	}

	users := directory.NewMockDirectory()
	eng := &engine.Engine{
		Logger:     logger,
		Directory:  directory.NewCachedDirectory(users, profiles),
		Classifier: classifier.NewKeywordClassifier(sets),
		Gate:       gate.NewGate(logger, notifier, config.ReviewTimeout),
		Ledger:     lgr,
		Counters:   counters,
		Reviewer:   config.Reviewer,
	}

	limit := config.IngestRateLimit
	if limit <= 0 {
		limit = 20
	}

	srv := &Server{
		logger:  logger,
		engine:  eng,
		users:   users,
		limiter: rate.NewLimiter(rate.Limit(limit), limit),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddleware("warden"))
	e.Use(middleware.BodyLimit("1M"))

	e.GET("/healthz", srv.handleHealthCheck)
	e.POST("/content", srv.handleIngestContent)
	e.POST("/responses", srv.handleOperatorResponse)
	e.GET("/pending", srv.handleListPending)
	e.GET("/records", srv.handleListRecords)
	e.GET("/records/:id", srv.handleGetRecord)
	e.POST("/users", srv.handleUpsertUser)
	srv.echo = e

	return srv, nil
}

func (s *Server) RunAPI(ctx context.Context, bind string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(bind); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.echo.Shutdown(shutCtx)
}

func (s *Server) RunMetrics(listen string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(listen, mux)
}

func (s *Server) handleHealthCheck(c echo.Context) error {
	return c.JSON(200, map[string]any{"status": "ok"})
}

// handleIngestContent accepts a content item and processes it asynchronously:
// the moderation task may block on human review for minutes, far longer than
// any reasonable HTTP timeout.
func (s *Server) handleIngestContent(c echo.Context) error {
	if !s.limiter.Allow() {
		return c.JSON(429, map[string]any{"error": "ingest rate limit exceeded"})
	}

	var item moderation.ContentItem
	if err := c.Bind(&item); err != nil {
		return c.JSON(400, map[string]any{"error": "malformed content item"})
	}
	if item.ID == "" || item.AuthorID == "" {
		return c.JSON(400, map[string]any{"error": "content_id and user_id are required"})
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	go func() {
		if _, err := s.engine.ProcessContent(context.Background(), &item); err != nil {
			s.logger.Error("content processing failed", "contentID", item.ID, "err", err)
		}
	}()
	return c.JSON(202, map[string]any{"content_id": item.ID, "status": "processing"})
}

type operatorResponseBody struct {
	ContentID string `json:"content_id"`
	Operator  string `json:"operator"`
	Answer    string `json:"answer"`
}

func (s *Server) handleOperatorResponse(c echo.Context) error {
	var body operatorResponseBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]any{"error": "malformed response"})
	}
	if body.ContentID == "" || body.Operator == "" {
		return c.JSON(400, map[string]any{"error": "content_id and operator are required"})
	}

	s.engine.Gate.Deliver(gate.Response{
		ContentID:  body.ContentID,
		Operator:   body.Operator,
		Text:       body.Answer,
		ReceivedAt: time.Now(),
	})
	return c.JSON(200, map[string]any{"status": "delivered"})
}

func (s *Server) handleListPending(c echo.Context) error {
	return c.JSON(200, s.engine.Gate.Pending())
}

func (s *Server) handleListRecords(c echo.Context) error {
	recs, err := s.engine.Ledger.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(200, recs)
}

func (s *Server) handleGetRecord(c echo.Context) error {
	rec, err := s.engine.Ledger.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ledger.ErrRecordNotFound) {
			return c.JSON(404, map[string]any{"error": "no record for content item"})
		}
		return err
	}
	return c.JSON(200, rec)
}

func (s *Server) handleUpsertUser(c echo.Context) error {
	var profile moderation.UserProfile
	if err := c.Bind(&profile); err != nil {
		return c.JSON(400, map[string]any{"error": "malformed user profile"})
	}
	if profile.ID == "" {
		return c.JSON(400, map[string]any{"error": "user_id is required"})
	}
	// drop any stale cached copy so the next lookup sees this profile
	if err := s.engine.Directory.Purge(c.Request().Context(), profile.ID); err != nil {
		return err
	}
	s.users.Insert(profile)
	return c.JSON(200, map[string]any{"user_id": profile.ID})
}
