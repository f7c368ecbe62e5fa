package handler

import (
	"net/http"
	"strings"
	"time"

	"buildmart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 在庫・レンタル空き確認（認証なし）
type InventoryHandler struct {
	uc *usecase.AvailabilityUsecase
}

// DI
func NewInventoryHandler(uc *usecase.AvailabilityUsecase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

type CheckInventoryRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// レンタル関連の項目はレンタル品のときだけ出す
type CheckInventoryResponse struct {
	Available         bool   `json:"available"`
	StockQuantity     int64  `json:"stock_quantity"`
	RequestedQuantity int64  `json:"requested_quantity"`
	ProductName       string `json:"product_name"`
	Message           string `json:"message"`

	ReservedQuantity   *int64           `json:"reserved_quantity,omitempty"`
	AvailableQuantity  *int64           `json:"available_quantity,omitempty"`
	RentalDays         *int64           `json:"rental_days,omitempty"`
	PricePerDay        *decimal.Decimal `json:"price_per_day,omitempty"`
	TotalPrice         *decimal.Decimal `json:"total_price,omitempty"`
	StartDate          *time.Time       `json:"start_date,omitempty"`
	EndDate            *time.Time       `json:"end_date,omitempty"`
	ConflictingRentals *int             `json:"conflicting_rentals,omitempty"`
}

func (h *InventoryHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/functions/v1")
	g.POST("/check-inventory", h.check)
}

func (h *InventoryHandler) check(c echo.Context) error {
	var req CheckInventoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid start date"})
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid end date"})
	}

	res, err := h.uc.Check(c.Request().Context(), usecase.AvailabilityInput{
		ItemID:    strings.TrimSpace(req.ProductID),
		Quantity:  req.Quantity,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toCheckInventoryResponse(res))
}

func toCheckInventoryResponse(res usecase.AvailabilityResult) CheckInventoryResponse {
	out := CheckInventoryResponse{
		Available:         res.Available,
		StockQuantity:     res.StockQuantity,
		RequestedQuantity: res.RequestedQuantity,
		ProductName:       res.ItemName,
		Message:           res.Message,
	}
	if q := res.Rental; q != nil {
		out.ReservedQuantity = &q.ReservedQuantity
		out.AvailableQuantity = &q.AvailableQuantity
		out.RentalDays = &q.RentalDays
		out.PricePerDay = &q.PricePerDay
		out.TotalPrice = &q.TotalPrice
		out.StartDate = &q.StartDate
		out.EndDate = &q.EndDate
		out.ConflictingRentals = &q.ConflictingRentals
	}
	return out
}
