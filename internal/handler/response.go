package handler

import (
	"net/http"
	"strings"
	"time"

	"buildmart/internal/logging"
	"buildmart/internal/middleware"
	"buildmart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func init() {
	// 金額はJSONの数値で返す
	decimal.MarshalJSONWithoutQuotes = true
}

type ErrorResponse struct {
	Error string `json:"error"`

	// 価格不一致のときだけ
	Calculated *decimal.Decimal `json:"calculated,omitempty"`
	Provided   *decimal.Decimal `json:"provided,omitempty"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	log := logging.FromContext(c.Request().Context())

	if e, ok := usecase.AsError(err); ok {
		status := e.Status()
		if status >= http.StatusInternalServerError {
			//原因はログだけ。クライアントには文言のみ
			log.Error("request failed", "kind", string(e.Kind), "error", err)
		}
		return c.JSON(status, ErrorResponse{
			Error:      e.Message,
			Calculated: e.Calculated,
			Provided:   e.Provided,
		})
	}

	//500
	log.Error("unexpected error", "error", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return "", false
	}

	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}

const dateOnly = "2006-01-02"

// YYYY-MM-DD か RFC3339 を受ける。空ならnil
func parseDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	raw := strings.TrimSpace(*s)

	if t, err := time.Parse(dateOnly, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
