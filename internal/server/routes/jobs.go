package routes

import (
	"encoding/json"
	"net/http"

	"github.com/OFFIS-RIT/plotline/internal/queue"
	"github.com/OFFIS-RIT/plotline/internal/server/middleware"
	"github.com/OFFIS-RIT/plotline/internal/util"
	"github.com/OFFIS-RIT/plotline/pkg/graph"
	"github.com/OFFIS-RIT/plotline/pkg/logger"

	"github.com/labstack/echo/v4"
)

// EnqueueJobHandler hands a document to the worker. The result is
// published on the "analysis.<job_id>" topic.
func EnqueueJobHandler(c echo.Context) error {
	type enqueueResponse struct {
		Message string `json:"message"`
		JobID   string `json:"job_id,omitempty"`
		Topic   string `json:"topic,omitempty"`
	}

	app := c.(*middleware.AppContext).App
	if app.Queue == nil {
		return c.JSON(http.StatusServiceUnavailable, enqueueResponse{Message: "Job queue unavailable"})
	}

	data := new(textSource)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, enqueueResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, enqueueResponse{Message: "Invalid request body"})
	}
	if data.count() > 1 {
		return c.JSON(http.StatusBadRequest, enqueueResponse{Message: "Only one of text, url or s3_key may be set"})
	}
	if app.MaxTextBytes > 0 && len(data.Text) > app.MaxTextBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, enqueueResponse{Message: "Text too large"})
	}

	jobID, err := util.NewID()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, enqueueResponse{Message: "Internal server error"})
	}

	msg, err := json.Marshal(queue.AnalyzeMsg{
		JobID:      jobID,
		Text:       data.Text,
		URL:        data.URL,
		S3Key:      data.S3Key,
		Characters: graph.ParseNames(data.Characters),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, enqueueResponse{Message: "Internal server error"})
	}

	if err := queue.PublishFIFO(c.Request().Context(), app.Queue, queue.AnalyzeQueue, msg); err != nil {
		logger.Error("[Server] Failed to enqueue job", "job_id", jobID, "err", err)
		return c.JSON(http.StatusInternalServerError, enqueueResponse{Message: "Failed to enqueue job"})
	}

	return c.JSON(http.StatusAccepted, enqueueResponse{
		Message: "Job accepted",
		JobID:   jobID,
		Topic:   queue.AnalysisTopic(jobID),
	})
}
