package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"buildmart/internal/domain/model"
	repo "buildmart/internal/repository"

	"github.com/shopspring/decimal"
)

// 在庫確認は参照のみ。予約もロックもしない。
type AvailabilityUsecase struct {
	catalog    repo.CatalogRepository
	orderItems repo.OrderItemRepository
	validator  CheckoutValidator
}

// DI
func NewAvailabilityUsecase(catalog repo.CatalogRepository, orderItems repo.OrderItemRepository, validator CheckoutValidator) *AvailabilityUsecase {
	return &AvailabilityUsecase{catalog: catalog, orderItems: orderItems, validator: validator}
}

type AvailabilityInput struct {
	ItemID    string
	Quantity  int64
	StartDate *time.Time
	EndDate   *time.Time
}

// レンタル品だけ返す見積もり
type RentalQuote struct {
	ReservedQuantity   int64
	AvailableQuantity  int64
	RentalDays         int64
	PricePerDay        decimal.Decimal
	TotalPrice         decimal.Decimal
	StartDate          time.Time
	EndDate            time.Time
	ConflictingRentals int
}

type AvailabilityResult struct {
	Available         bool
	StockQuantity     int64
	RequestedQuantity int64
	ItemName          string
	Message           string

	Rental *RentalQuote
}

func (u *AvailabilityUsecase) Check(ctx context.Context, in AvailabilityInput) (AvailabilityResult, error) {
	if err := u.validator.ValidateAvailability(ctx, in); err != nil {
		return AvailabilityResult{}, err
	}

	item, err := u.catalog.FindByID(ctx, in.ItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return AvailabilityResult{}, NewError(KindNotFound, "Product not found")
	}
	if err != nil {
		return AvailabilityResult{}, WrapError(KindInternal, "Failed to load product", err)
	}
	if !item.IsActive {
		return AvailabilityResult{}, NewError(KindUnavailable, "Product is not available")
	}

	//販売品は在庫数だけ見る
	if !item.IsRental {
		out := AvailabilityResult{
			Available:         item.StockQuantity >= in.Quantity,
			StockQuantity:     item.StockQuantity,
			RequestedQuantity: in.Quantity,
			ItemName:          item.Name,
		}
		if out.Available {
			out.Message = "Product is available"
		} else {
			out.Message = fmt.Sprintf("Only %d units available", item.StockQuantity)
		}
		return out, nil
	}

	if err := u.validator.ValidateRentalWindow(ctx, in.StartDate, in.EndDate); err != nil {
		return AvailabilityResult{}, err
	}
	start, end := in.StartDate.UTC(), in.EndDate.UTC()

	reservations, err := u.orderItems.ListReservations(ctx, item.ID, model.ReservingStatuses)
	if err != nil {
		return AvailabilityResult{}, WrapError(KindInternal, "Failed to check rental availability", err)
	}

	reserved, conflicts := reservedWithin(reservations, start, end)

	availableQty := item.StockQuantity - reserved
	if availableQty < 0 {
		availableQty = 0
	}
	days := RentalDays(start, end)

	out := AvailabilityResult{
		Available:         availableQty >= in.Quantity,
		StockQuantity:     item.StockQuantity,
		RequestedQuantity: in.Quantity,
		ItemName:          item.Name,
		Rental: &RentalQuote{
			ReservedQuantity:   reserved,
			AvailableQuantity:  availableQty,
			RentalDays:         days,
			PricePerDay:        item.Price,
			TotalPrice:         RentalCost(item.Price, in.Quantity, days),
			StartDate:          start,
			EndDate:            end,
			ConflictingRentals: conflicts,
		},
	}
	if out.Available {
		out.Message = fmt.Sprintf("%d units available for rental", availableQty)
	} else {
		out.Message = fmt.Sprintf("Only %d units available for the selected dates", availableQty)
	}
	return out, nil
}

// 期間が重なる予約の数量合計と件数
func reservedWithin(lines []model.OrderItem, start, end time.Time) (int64, int) {
	var reserved int64
	conflicts := 0
	for _, l := range lines {
		if l.StartDate == nil || l.EndDate == nil {
			continue
		}
		if Overlaps(l.StartDate.UTC(), l.EndDate.UTC(), start, end) {
			reserved += l.Quantity
			conflicts++
		}
	}
	return reserved, conflicts
}
