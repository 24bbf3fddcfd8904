package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/plotline/internal/server/middleware"
	"github.com/OFFIS-RIT/plotline/internal/util"
	"github.com/OFFIS-RIT/plotline/pkg/graph"
	"github.com/OFFIS-RIT/plotline/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyzeHandler runs a stateless analysis of the submitted document.
func AnalyzeHandler(c echo.Context) error {
	data := new(textSource)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	id, err := util.NewID()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	text, status, msg := loadText(c, id, *data)
	if status != http.StatusOK {
		return c.JSON(status, map[string]string{"error": msg})
	}

	app := c.(*middleware.AppContext).App
	result, err := app.Analyzer.Analyze(c.Request().Context(), text, graph.ParseNames(data.Characters))
	if err != nil {
		logger.Error("[Server] Analysis failed", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, result)
}
