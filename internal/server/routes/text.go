package routes

import (
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/plotline/internal/server/middleware"
	"github.com/OFFIS-RIT/plotline/pkg/loader"

	"github.com/labstack/echo/v4"
)

// textSource is embedded in every request that carries a document.
type textSource struct {
	Text       string `json:"text"`
	URL        string `json:"url" validate:"omitempty,url"`
	S3Key      string `json:"s3_key" validate:"omitempty,max=1024"`
	Characters string `json:"characters" validate:"omitempty,max=4096"`
}

func (s textSource) count() int {
	n := 0
	for _, v := range []string{s.Text, s.URL, s.S3Key} {
		if v != "" {
			n++
		}
	}
	return n
}

// loadText resolves the document of src. On failure it returns the
// status code and message to answer with.
func loadText(c echo.Context, id string, src textSource) (string, int, string) {
	app := c.(*middleware.AppContext).App

	if src.count() > 1 {
		return "", http.StatusBadRequest, "Only one of text, url or s3_key may be set"
	}

	var (
		sourceType loader.SourceType
		path       string
	)
	switch {
	case src.URL != "":
		sourceType, path = loader.SourceTypeWeb, src.URL
	case src.S3Key != "":
		sourceType, path = loader.SourceTypeS3, src.S3Key
	default:
		text, err := loader.DecodeText([]byte(src.Text))
		if err != nil {
			return "", http.StatusBadRequest, "Invalid text"
		}
		return checkSize(app, text)
	}

	file, err := app.Loaders.File(id, sourceType, path)
	if err != nil {
		return "", http.StatusBadRequest, "Unsupported text source"
	}
	text, err := file.GetText(c.Request().Context())
	if err != nil {
		if errors.Is(err, loader.ErrUnsupportedSource) {
			return "", http.StatusBadRequest, "Unsupported text source"
		}
		return "", http.StatusBadGateway, "Failed to load text"
	}
	return checkSize(app, text)
}

func checkSize(app *middleware.App, text string) (string, int, string) {
	if app.MaxTextBytes > 0 && len(text) > app.MaxTextBytes {
		return "", http.StatusRequestEntityTooLarge, "Text too large"
	}
	return text, http.StatusOK, ""
}
