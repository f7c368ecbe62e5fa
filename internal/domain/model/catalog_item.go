package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 販売資材とレンタル機材を同じテーブルで持つ。
// Priceは販売品なら単価、レンタル品なら1日あたりの料金。
type CatalogItem struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Unit          string          `gorm:"type:varchar(32);not null" json:"unit"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	StockQuantity int64           `gorm:"not null;check:chk_catalog_items_stock,stock_quantity >= 0" json:"stock_quantity"`
	IsRental      bool            `gorm:"not null;index" json:"is_rental"`
	IsActive      bool            `gorm:"not null" json:"is_active"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
