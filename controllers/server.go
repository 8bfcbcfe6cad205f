package controllers

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"stylistapi/services"
	"stylistapi/stylist"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

type Template struct {
	templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

//go:embed templates
var embededFiles embed.FS

// safeImage lets embedded images through html/template, which otherwise
// rewrites data URLs. Anything that is not an inline image renders empty.
func safeImage(url string) template.URL {
	if strings.HasPrefix(url, "data:image/") {
		return template.URL(url)
	}
	return ""
}

var templateFuncs = template.FuncMap{
	"safeImage": safeImage,
}

func SetupServer(
	sessions *stylist.SessionStore,
	generator *stylist.Generator,
	metrics *services.Metrics,
	logger zerolog.Logger,
	bodyLimit string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	templates := template.Must(template.New("").Funcs(templateFuncs).ParseFS(embededFiles, "templates/*.html"))
	e.Renderer = &Template{templates: templates}
	e.Validator = &CustomValidator{validator: validator.New()}

	if bodyLimit != "" {
		e.Use(middleware.BodyLimit(bodyLimit))
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	controller := StylistController{Generator: generator, Logger: logger}
	stylistGroup := e.Group("", SessionMiddleware(sessions, logger))
	controller.StylistRoutes(stylistGroup)

	return e
}
