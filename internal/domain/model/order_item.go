package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。作成後は更新しない。
// レンタル品はStartDate/EndDateが入り、[StartDate, EndDate)が予約期間になる。
type OrderItem struct {
	ID               string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID          string          `gorm:"type:uuid;not null;index" json:"order_id"`
	CatalogItemID    string          `gorm:"type:uuid;not null;index" json:"catalog_item_id"`
	ItemNameSnapshot string          `gorm:"type:varchar(255);not null" json:"item_name_snapshot"`
	Quantity         int64           `gorm:"not null" json:"quantity"`
	UnitPrice        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	RentalDays       int64           `gorm:"not null" json:"rental_days"`
	StartDate        *time.Time      `json:"start_date,omitempty"`
	EndDate          *time.Time      `json:"end_date,omitempty"`
	Subtotal         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
