package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"stylistapi/models"
	"stylistapi/services"
	"stylistapi/stylist"
)

const (
	acceptedImageTypes = "image/png, image/jpeg, image/webp"
	uploadHint         = "PNG, JPG, WEBP up to 10MB"
)

var errNoFile = errors.New("Sorry, it seems image was not provided, please try again")

type UploadImageIn struct {
	FileName  string `validate:"required,max=255"`
	MediaType string `validate:"max=100"`
}

type indexPage struct {
	View          models.SessionView
	AcceptedTypes string
	UploadHint    string

	// AutoRefresh reloads the page every two seconds while busy.
	AutoRefresh bool
}

type StylistController struct {
	Generator *stylist.Generator
	Logger    zerolog.Logger
}

func (controller *StylistController) StylistRoutes(g *echo.Group) {
	g.GET("/", controller.Index)
	g.POST("/upload", controller.Upload)
	g.POST("/generate", controller.Generate)

	g.GET("/api/state", controller.GetState)
	g.POST("/api/upload", controller.APIUpload)
	g.POST("/api/generate", controller.APIGenerate)
}

func (controller *StylistController) Index(c echo.Context) error {
	session, ok := currentSession(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Session is not available"})
	}
	page := indexPage{
		View:          session.Snapshot(),
		AcceptedTypes: acceptedImageTypes,
		UploadHint:    uploadHint,
	}
	page.AutoRefresh = page.View.State.IsLoading
	return c.Render(http.StatusOK, "index.html", page)
}

func (controller *StylistController) Upload(c echo.Context) error {
	session, ok := currentSession(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Session is not available"})
	}
	image, err := readUpload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	session.UploadImage(image)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (controller *StylistController) Generate(c echo.Context) error {
	session, ok := currentSession(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Session is not available"})
	}
	// Without an image or while busy the button is disabled; just show the page again.
	if err := controller.start(c, session); err != nil {
		controller.Logger.Debug().Err(err).Str("session_id", session.ID).Msg("generate ignored")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (controller *StylistController) GetState(c echo.Context) error {
	session, ok := currentSession(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Session is not available"})
	}
	return c.JSON(http.StatusOK, session.Snapshot())
}

func (controller *StylistController) APIUpload(c echo.Context) error {
	session, ok := currentSession(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Session is not available"})
	}
	image, err := readUpload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	session.UploadImage(image)
	return c.JSON(http.StatusOK, session.Snapshot())
}

func (controller *StylistController) APIGenerate(c echo.Context) error {
	session, ok := currentSession(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Session is not available"})
	}
	err := controller.start(c, session)
	switch {
	case errors.Is(err, stylist.ErrNoImage):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, stylist.ErrBusy):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusAccepted, session.Snapshot())
}

// start begins an attempt synchronously, so busy and missing-image errors
// reach the caller, and runs it in the background.
func (controller *StylistController) start(c echo.Context, session *stylist.Session) error {
	attempt, err := session.Begin()
	if err != nil {
		return err
	}
	ctx := context.WithoutCancel(c.Request().Context())
	go func() {
		defer func() {
			if r := recover(); r != nil {
				sentry.CurrentHub().Recover(r)
				controller.Logger.Error().Interface("panic", r).Str("session_id", session.ID).Msg("generation panicked")
			}
		}()
		_ = controller.Generator.Run(ctx, session, attempt)
	}()
	return nil
}

func readUpload(c echo.Context) (*models.UploadedImage, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, errNoFile
	}
	req := UploadImageIn{
		FileName:  fileHeader.Filename,
		MediaType: fileHeader.Header.Get(echo.HeaderContentType),
	}
	if err := c.Validate(req); err != nil {
		return nil, fmt.Errorf("invalid upload: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	mediaType := req.MediaType
	if mediaType == "" || mediaType == echo.MIMEOctetStream {
		mediaType = http.DetectContentType(data)
	}
	return &models.UploadedImage{
		FileName:  req.FileName,
		MediaType: mediaType,
		Data:      data,
		Preview:   services.PreviewDataURL(data, mediaType),
	}, nil
}
