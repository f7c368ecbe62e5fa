package repository

import "context"

// Usecaseから使うrepoのまとまり。Tx内でもTx外でも同じ形。
type Repos interface {
	Catalog() CatalogRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Inventory() InventoryRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
