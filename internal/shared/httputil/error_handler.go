package httputil

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ErrorBody is the JSON shape of API errors.
type ErrorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// NewHTTPErrorHandler answers /api/* with JSON and every other route with
// the HTML error page built by page.
func NewHTTPErrorHandler(page func(retryURL string) templ.Component) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			if text, ok := httpErr.Message.(string); ok && text != "" {
				message = text
			} else {
				message = http.StatusText(status)
			}
		}

		req := c.Request()
		if status >= http.StatusInternalServerError {
			slog.Error("request failed", slog.String("method", req.Method), slog.String("path", req.URL.Path), slog.Int("status", status), slog.Any("error", err))
		} else {
			slog.Debug("request rejected", slog.String("method", req.Method), slog.String("path", req.URL.Path), slog.Int("status", status), slog.Any("error", err))
		}

		if req.Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		if strings.HasPrefix(req.URL.Path, "/api/") || page == nil {
			_ = c.JSON(status, ErrorBody{Error: message, Status: status})
			return
		}

		retry := req.URL.RequestURI()
		if strings.HasPrefix(req.URL.Path, "/partials/") {
			retry = "/"
		}
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(status)
		if renderErr := page(retry).Render(req.Context(), c.Response()); renderErr != nil {
			slog.Error("error page render failed", slog.Any("error", renderErr))
		}
	}
}
