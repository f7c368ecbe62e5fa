package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"buildmart/internal/config"
	"buildmart/internal/domain/model"
	"buildmart/internal/handler"
	"buildmart/internal/infra/db"
	"buildmart/internal/infra/events"
	infraRepo "buildmart/internal/infra/repository"
	"buildmart/internal/infra/system"
	"buildmart/internal/usecase"
	"buildmart/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, time.December, 1, 9, 0, 0, 0, time.UTC)

type testApp struct {
	e   *echo.Echo
	gdb *gorm.DB
}

// handlerとusecaseは本物、DBはSQLite
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gdb := db.NewTestDB(t)
	cfg := config.Config{JWTSecret: testSecret}

	repos := infraRepo.NewReposGorm(gdb)
	txm := infraRepo.NewTxManagerGorm(gdb)
	v := validator.NewCheckoutValidator(fixedClock{testNow})

	e := echo.New()
	handler.NewInventoryHandler(usecase.NewAvailabilityUsecase(repos.Catalog(), repos.OrderItems(), v)).RegisterRoutes(e)
	handler.NewCheckoutHandler(usecase.NewCheckoutUsecase(
		repos, usecase.NewTxCommitter(txm), v, events.NoopPublisher{}, system.UUIDGenerator{}, fixedClock{testNow},
	)).RegisterRoutes(e, cfg)
	handler.NewOrderHandler(usecase.NewOrderUsecase(txm)).RegisterRoutes(e, cfg)

	return &testApp{e: e, gdb: gdb}
}

func (a *testApp) seed(t *testing.T, name, price string, stock int64, rental bool) model.CatalogItem {
	t.Helper()
	it := model.CatalogItem{
		ID:            uuid.NewString(),
		Name:          name,
		Unit:          "pcs",
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		IsRental:      rental,
		IsActive:      true,
	}
	require.NoError(t, a.gdb.Create(&it).Error)
	return it
}

// リクエストを投げてJSONをmapで返す
func (a *testApp) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	out := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func signToken(t *testing.T, sub string, secret string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func bearer(t *testing.T, userID string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + signToken(t, userID, testSecret)}
}
