package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/plotline/internal/queue"
	mid "github.com/OFFIS-RIT/plotline/internal/server/middleware"
	"github.com/OFFIS-RIT/plotline/internal/setup"
	"github.com/OFFIS-RIT/plotline/internal/util"
	"github.com/OFFIS-RIT/plotline/pkg/logger"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/patrickmn/go-cache"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// NewSessionCache returns the in-memory session store. Idle sessions
// expire after ttl.
func NewSessionCache(ttl time.Duration) *cache.Cache {
	return cache.New(ttl, ttl/2)
}

// NewServer builds the echo instance serving app.
func NewServer(app *mid.App, bodyLimit string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	if bodyLimit != "" {
		e.Use(middleware.BodyLimit(bodyLimit))
	}

	RegisterRoutes(e)
	return e
}

func Init() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer, err := setup.Analyzer(setup.Overrides{})
	if err != nil {
		logger.Fatal("Failed to set up analyzer", "err", err)
	}
	loaders, err := setup.Loaders(ctx, false)
	if err != nil {
		logger.Fatal("Failed to set up text loaders", "err", err)
	}

	app := &mid.App{
		Analyzer:     analyzer,
		Sessions:     NewSessionCache(util.GetEnvMinutes("SESSION_TTL_MINUTES", 30)),
		Loaders:      loaders,
		MasterAPIKey: util.GetEnv("MASTER_API_KEY"),
		MaxTextBytes: util.GetEnvInt("MAX_TEXT_BYTES", 5<<20),
	}

	if authURL := util.GetEnv("AUTH_URL"); authURL != "" {
		k, err := keyfunc.NewDefault([]string{authURL + "/jwks"})
		if err != nil {
			logger.Fatal("Failed to load jwks keys", "err", err)
		}
		app.Keyfunc = k.Keyfunc
	}
	if !app.AuthEnabled() {
		logger.Warn("[Server] No AUTH_URL or MASTER_API_KEY set, API is open")
	}

	if util.GetEnv("RABBITMQ_HOST") != "" {
		que := queue.Init()
		defer que.Close()
		ch, err := que.Channel()
		if err != nil {
			logger.Fatal("Failed to open channel", "err", err)
		}
		if err := queue.SetupQueues(ch, []string{queue.AnalyzeQueue}); err != nil {
			logger.Fatal("Failed to set up queues", "err", err)
		}
		app.Queue = ch
	}

	e := NewServer(app, util.GetEnvString("BODY_LIMIT", "16M"))

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
