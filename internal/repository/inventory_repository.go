package repository

import "context"

type InventoryRepository interface {
	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, itemID string, qty int64) (bool, error)

	// 在庫戻し（補償）
	IncreaseStock(ctx context.Context, itemID string, qty int64) error
}
