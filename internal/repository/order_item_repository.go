package repository

import (
	"context"

	"buildmart/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID string) error

	// 指定ステータスの注文に属する、期間付きの明細だけ返す
	ListReservations(ctx context.Context, itemID string, statuses []model.OrderStatus) ([]model.OrderItem, error)
}
