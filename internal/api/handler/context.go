package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/catalog-api/internal/api/middleware"
)

// ctxSubject extracts the authenticated username injected by the Auth
// middleware. An empty subject means the middleware did not run; fail
// closed with 401 rather than proceed unauthenticated.
func ctxSubject(c echo.Context) (string, error) {
	subject, _ := c.Get(middleware.SubjectKey).(string)
	if subject == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return subject, nil
}
