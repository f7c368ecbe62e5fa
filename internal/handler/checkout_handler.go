package handler

import (
	"net/http"
	"strings"

	"buildmart/internal/config"
	"buildmart/internal/middleware"
	"buildmart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type CheckoutItemRequest struct {
	ProductID       string          `json:"product_id"`
	Quantity        int64           `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	StartDate       *string         `json:"start_date"`
	EndDate         *string         `json:"end_date"`
}

type CheckoutRequest struct {
	Items           []CheckoutItemRequest `json:"items"`
	DeliveryAddress string                `json:"delivery_address"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	Notes           *string               `json:"notes"`
}

type CheckoutResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/functions/v1")
	g.POST("/checkout", h.checkout, middleware.AuthJWT(cfg))
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	items := make([]usecase.CheckoutItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		start, err := parseDate(it.StartDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid rental dates"})
		}
		end, err := parseDate(it.EndDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid rental dates"})
		}
		items = append(items, usecase.CheckoutItemInput{
			ItemID:          strings.TrimSpace(it.ProductID),
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase,
			StartDate:       start,
			EndDate:         end,
		})
	}

	//二重送信防止キーはヘッダーから受け取る（bodyには入れない）
	idemKey := c.Request().Header.Get("X-Idempotency-Key")

	out, err := h.uc.Checkout(c.Request().Context(), userID, usecase.CheckoutInput{
		Items:           items,
		DeliveryAddress: req.DeliveryAddress,
		TotalAmount:     req.TotalAmount,
		Notes:           req.Notes,
		IdempotencyKey:  idemKey,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CheckoutResponse{
		Success: true,
		OrderID: out.OrderID,
		Message: "Order created successfully",
	})
}
