package middleware

import (
	"log/slog"
	"time"

	"buildmart/internal/logging"

	"github.com/labstack/echo/v4"
)

// RequestLogger はリクエスト単位のloggerをcontextに載せ、終了時に1行出す。
// RequestIDミドルウェアより後に置く。
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := base.With(
				"method", c.Request().Method,
				"path", c.Path(),
				"remote_ip", c.RealIP(),
			)
			if rid := c.Response().Header().Get(echo.HeaderXRequestID); rid != "" {
				l = l.With("request_id", rid)
			}

			c.SetRequest(c.Request().WithContext(logging.IntoContext(c.Request().Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				//echoのエラー（404/405など）はここでレスポンスにする
				c.Echo().HTTPErrorHandler(err, c)
			}
			status := c.Response().Status
			ms := time.Since(start).Milliseconds()

			switch {
			case err != nil || status >= 500:
				l.Error("request completed", "status", status, "duration_ms", ms, "error", err)
			case status >= 400:
				l.Warn("request completed", "status", status, "duration_ms", ms)
			default:
				l.Info("request completed", "status", status, "duration_ms", ms, "bytes", c.Response().Size)
			}
			return nil
		}
	}
}
