package routes

import (
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/plotline/internal/server/middleware"
	"github.com/OFFIS-RIT/plotline/pkg/analysis"
	"github.com/OFFIS-RIT/plotline/pkg/graph"
	"github.com/OFFIS-RIT/plotline/pkg/logger"

	"github.com/labstack/echo/v4"
)

type sessionParams struct {
	ID string `param:"id" validate:"required,len=21"`
}

func getSession(c echo.Context) (*analysis.Session, error) {
	params := new(sessionParams)
	if err := (&echo.DefaultBinder{}).BindPathParams(c, params); err != nil {
		return nil, c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return nil, c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	sessions := c.(*middleware.AppContext).App.Sessions
	value, ok := sessions.Get(params.ID)
	if !ok {
		return nil, c.JSON(http.StatusNotFound, map[string]string{"error": "Session not found"})
	}
	return value.(*analysis.Session), nil
}

// CreateSessionHandler opens an idle session.
func CreateSessionHandler(c echo.Context) error {
	session, err := analysis.NewSession()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	c.(*middleware.AppContext).App.Sessions.SetDefault(session.ID, session)
	return c.JSON(http.StatusCreated, session.Snapshot())
}

func GetSessionHandler(c echo.Context) error {
	session, err := getSession(c)
	if session == nil {
		return err
	}
	return c.JSON(http.StatusOK, session.Snapshot())
}

// SubmitSessionHandler analyzes a document within a session and keeps the
// result as the session's latest state.
func SubmitSessionHandler(c echo.Context) error {
	session, err := getSession(c)
	if session == nil {
		return err
	}

	data := new(textSource)
	if err := (&echo.DefaultBinder{}).BindBody(c, data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	text, status, msg := loadText(c, session.ID, *data)
	if status != http.StatusOK {
		return c.JSON(status, map[string]string{"error": msg})
	}

	app := c.(*middleware.AppContext).App
	_, err = session.Submit(c.Request().Context(), app.Analyzer, text, graph.ParseNames(data.Characters))
	if errors.Is(err, analysis.ErrSessionBusy) {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	if err != nil {
		logger.Error("[Server] Session analysis failed", "session_id", session.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	app.Sessions.SetDefault(session.ID, session)
	return c.JSON(http.StatusOK, session.Snapshot())
}

func DeleteSessionHandler(c echo.Context) error {
	session, err := getSession(c)
	if session == nil {
		return err
	}
	c.(*middleware.AppContext).App.Sessions.Delete(session.ID)
	return c.NoContent(http.StatusNoContent)
}
