package repository

import (
	"context"

	repo "buildmart/internal/repository"

	"gorm.io/gorm"
)

type reposGorm struct {
	catalog    repo.CatalogRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	inventory  repo.InventoryRepository
}

func (r *reposGorm) Catalog() repo.CatalogRepository      { return r.catalog }
func (r *reposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *reposGorm) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *reposGorm) Inventory() repo.InventoryRepository  { return r.inventory }

// NewReposGorm はTx外で使うrepoのまとまりを返す（補償モードや参照系）
func NewReposGorm(db *gorm.DB) repo.Repos {
	return &reposGorm{
		catalog:    NewCatalogGormRepository(db),
		orders:     NewOrderGormRepository(db),
		orderItems: NewOrderItemGormRepository(db),
		inventory:  NewInventoryGormRepository(db),
	}
}

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.Repos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		return fn(NewReposGorm(tx))
	})
}
