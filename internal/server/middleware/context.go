package middleware

import (
	"github.com/OFFIS-RIT/plotline/internal/queue"
	"github.com/OFFIS-RIT/plotline/pkg/analysis"
	"github.com/OFFIS-RIT/plotline/pkg/loader"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
)

type AppUser struct {
	UserID      string
	Role        string
	Permissions []string
}

// App holds the process-wide dependencies of the HTTP handlers.
//
// Keyfunc and MasterAPIKey are both optional; with neither set the API is
// open. Queue is optional; without it job submission is unavailable.
type App struct {
	Analyzer     *analysis.Analyzer
	Sessions     *cache.Cache
	Loaders      loader.Registry
	Queue        queue.Channel
	Keyfunc      jwt.Keyfunc
	MasterAPIKey string
	MaxTextBytes int
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

// AuthEnabled reports whether requests must carry credentials.
func (a *App) AuthEnabled() bool {
	return a.Keyfunc != nil || a.MasterAPIKey != ""
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
