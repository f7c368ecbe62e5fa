package repository

import (
	"context"
	"errors"

	"buildmart/internal/domain/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// カタログ（資材・機材）の読み取りだけを約束。登録/編集は別サービス。
type CatalogRepository interface {
	FindByID(ctx context.Context, id string) (model.CatalogItem, error)
}
