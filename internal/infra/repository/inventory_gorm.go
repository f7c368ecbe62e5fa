package repository

import (
	"context"

	"buildmart/internal/domain/model"
	repo "buildmart/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫が足りるときだけ減らす（同時注文でもマイナスにならない）
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, itemID string, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.CatalogItem{}).
		Where("id = ? AND stock_quantity >= ?", itemID, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（補償）
func (r *InventoryGormRepository) IncreaseStock(ctx context.Context, itemID string, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CatalogItem{}).
		Where("id = ?", itemID).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
