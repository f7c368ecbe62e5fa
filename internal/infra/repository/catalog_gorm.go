package repository

import (
	"context"
	"errors"

	"buildmart/internal/domain/model"
	repo "buildmart/internal/repository"

	"gorm.io/gorm"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

// DI
func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// IDでカタログ品を取得（非公開品も返す。判定はusecase側）
func (r *CatalogGormRepository) FindByID(ctx context.Context, id string) (model.CatalogItem, error) {
	var it model.CatalogItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CatalogItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CatalogItem{}, err
	}
	return it, nil
}
