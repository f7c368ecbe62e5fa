package usecase

import (
	"context"
	"errors"
	"time"

	"buildmart/internal/domain/model"
	repo "buildmart/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// マイページの注文履歴
type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderItemOutput struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	RentalDays int64           `json:"rental_days,omitempty"`
	StartDate  *time.Time      `json:"start_date,omitempty"`
	EndDate    *time.Time      `json:"end_date,omitempty"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	ID              string            `json:"id"`
	Status          string            `json:"status"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	DeliveryAddress string            `json:"delivery_address"`
	Notes           *string           `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	Items           []OrderItemOutput `json:"items"`
}

type OrderListOutput struct {
	Orders []OrderOutput `json:"orders"`
	Total  int64         `json:"total"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
}

const maxOrderPageLimit = 100

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string, page int, limit int) (OrderListOutput, error) {
	if userID == "" {
		return OrderListOutput{}, NewError(KindUnauthorized, "Unauthorized")
	}
	if page <= 0 {
		return OrderListOutput{}, NewError(KindInvalidInput, "Invalid page")
	}
	if limit <= 0 || limit > maxOrderPageLimit {
		return OrderListOutput{}, NewError(KindInvalidInput, "Invalid limit")
	}

	out := OrderListOutput{Orders: []OrderOutput{}, Page: page, Limit: limit}

	//注文と明細を同じスナップショットで読む
	err := u.tx.WithinTx(ctx, func(r repo.Repos) error {
		orders, total, err := r.Orders().ListByUserID(ctx, userID, page, limit)
		if err != nil {
			return WrapError(KindInternal, "Failed to load orders", err)
		}
		out.Total = total

		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return WrapError(KindInternal, "Failed to load orders", err)
			}
			out.Orders = append(out.Orders, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID string, orderID string) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, NewError(KindUnauthorized, "Unauthorized")
	}
	if _, err := uuid.Parse(orderID); err != nil {
		return OrderOutput{}, NewError(KindInvalidInput, "Invalid order id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.Repos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewError(KindNotFound, "Order not found")
		}
		if err != nil {
			return WrapError(KindInternal, "Failed to load order", err)
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewError(KindNotFound, "Order not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return WrapError(KindInternal, "Failed to load order", err)
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:  it.CatalogItemID,
			Name:       it.ItemNameSnapshot,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			RentalDays: it.RentalDays,
			StartDate:  it.StartDate,
			EndDate:    it.EndDate,
			Subtotal:   it.Subtotal,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		DeliveryAddress: o.DeliveryAddress,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}
