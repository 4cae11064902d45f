package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	appmiddleware "github.com/nfrund/signupboard/internal/middleware"
)

// setupErrorHandling installs the central HTTP error handler. echo.HTTPError
// values keep their status; anything else is logged with a stack trace and
// answered with a 500.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		logger := appmiddleware.FromContext(c.Request().Context())

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Internal != nil {
				logger.Warn("HTTP error", "status", he.Code, "error", he.Internal)
			}
			respond(c, he.Code, he.Message)
			return
		}

		logger.Error("Internal Server Error (Unhandled)",
			slog.String("error", err.Error()),
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.String("stack_trace", string(debug.Stack())),
		)
		respond(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func respond(c echo.Context, code int, message any) {
	var err error
	switch {
	case c.Request().Method == http.MethodHead:
		err = c.NoContent(code)
	case isHTMX(c):
		// htmx does not swap error responses; the text is for the console.
		err = c.String(code, toText(message))
	default:
		err = c.JSON(code, map[string]any{"message": message})
	}
	if err != nil {
		slog.Error("Failed to write error response", "error", err)
	}
}

func toText(message any) string {
	if s, ok := message.(string); ok {
		return s
	}
	return http.StatusText(http.StatusInternalServerError)
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
