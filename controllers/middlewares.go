package controllers

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"stylistapi/stylist"
)

const (
	sessionCookieName = "stylist_session"
	sessionContextKey = "__session"
)

// SessionMiddleware attaches the visitor's session, issuing a cookie on the
// first visit or when the cookie does not hold a valid id.
func SessionMiddleware(sessions *stylist.SessionStore, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sessionID string
			if cookie, err := c.Cookie(sessionCookieName); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = cookie.Value
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     sessionCookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			session, err := sessions.GetOrCreate(c.Request().Context(), sessionID)
			if err != nil {
				logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to load session")
				sentry.CaptureException(err)
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Session is not available, please try again a bit later"})
			}
			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

func currentSession(c echo.Context) (*stylist.Session, bool) {
	session, ok := c.Get(sessionContextKey).(*stylist.Session)
	return session, ok && session != nil
}
