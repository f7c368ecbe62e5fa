package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"buildmart/internal/domain/model"
	"buildmart/internal/logging"
	repo "buildmart/internal/repository"

	"github.com/shopspring/decimal"
)

type CheckoutUsecase struct {
	repos     repo.Repos
	committer OrderCommitter
	validator CheckoutValidator
	publisher OrderEventPublisher
	idGen     IDGenerator
	clock     Clock
}

// DI
func NewCheckoutUsecase(
	repos repo.Repos,
	committer OrderCommitter,
	validator CheckoutValidator,
	publisher OrderEventPublisher,
	idGen IDGenerator,
	clock Clock,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		repos:     repos,
		committer: committer,
		validator: validator,
		publisher: publisher,
		idGen:     idGen,
		clock:     clock,
	}
}

type CheckoutItemInput struct {
	ItemID          string
	Quantity        int64
	PriceAtPurchase decimal.Decimal
	StartDate       *time.Time
	EndDate         *time.Time
}

type CheckoutInput struct {
	Items           []CheckoutItemInput
	DeliveryAddress string
	TotalAmount     decimal.Decimal
	Notes           *string
	IdempotencyKey  string
}

type CheckoutOutput struct {
	OrderID string
	// 同じ二重送信防止キーで既存注文を返した
	Replayed bool
}

const maxIdempotencyKeyLen = 255

func (u *CheckoutUsecase) Checkout(ctx context.Context, userID string, in CheckoutInput) (CheckoutOutput, error) {
	//DBに触る前に全部チェック
	if err := u.validator.ValidateCheckout(ctx, userID, in); err != nil {
		return CheckoutOutput{}, err
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if len(key) > maxIdempotencyKeyLen {
		return CheckoutOutput{}, NewError(KindInvalidInput, "Invalid idempotency key")
	}

	// 同じキーなら同じ結果
	if key != "" {
		existing, found, err := u.repos.Orders().FindByIdempotencyKey(ctx, userID, key)
		if err != nil {
			return CheckoutOutput{}, WrapError(KindInternal, "Failed to create order", err)
		}
		if found {
			return CheckoutOutput{OrderID: existing.ID, Replayed: true}, nil
		}
	}

	//カタログの現在価格で再計算（クライアントの金額は信用しない）
	lines, calculated, err := u.priceLines(ctx, in.Items)
	if err != nil {
		return CheckoutOutput{}, err
	}
	if !withinTolerance(calculated, in.TotalAmount) {
		return CheckoutOutput{}, newPriceMismatch(calculated, in.TotalAmount)
	}

	order := model.Order{
		ID:              u.idGen.NewID(),
		UserID:          userID,
		TotalAmount:     calculated,
		Status:          model.OrderStatusPending,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		Notes:           in.Notes,
	}
	if key != "" {
		order.IdempotencyKey = &key
	}
	for i := range lines {
		lines[i].ID = u.idGen.NewID()
		lines[i].OrderID = order.ID
	}

	if err := u.committer.Commit(ctx, order, lines); err != nil {
		//同時に同じキーが入った場合は先に入った注文を返す
		if key != "" && errors.Is(err, repo.ErrDuplicate) {
			ex, found, err2 := u.repos.Orders().FindByIdempotencyKey(ctx, userID, key)
			if err2 == nil && found {
				return CheckoutOutput{OrderID: ex.ID, Replayed: true}, nil
			}
		}
		logging.FromContext(ctx).Error("checkout commit failed", "order_id", order.ID, "user_id", userID, "error", err)
		return CheckoutOutput{}, err
	}

	if err := u.publisher.PublishOrderCreated(ctx, order, lines); err != nil {
		logging.FromContext(ctx).Warn("order event publish failed", "order_id", order.ID, "error", err)
	}

	return CheckoutOutput{OrderID: order.ID}, nil
}

// 各明細をカタログから引き直して小計を出す
func (u *CheckoutUsecase) priceLines(ctx context.Context, items []CheckoutItemInput) ([]model.OrderItem, decimal.Decimal, error) {
	lines := make([]model.OrderItem, 0, len(items))
	total := decimal.Zero

	for _, in := range items {
		item, err := u.repos.Catalog().FindByID(ctx, in.ItemID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, decimal.Zero, NewError(KindNotFound, fmt.Sprintf("Product %s not found", in.ItemID))
		}
		if err != nil {
			return nil, decimal.Zero, WrapError(KindInternal, "Failed to load product", err)
		}
		if !item.IsActive {
			return nil, decimal.Zero, NewError(KindUnavailable, fmt.Sprintf("Product %s is not available", in.ItemID))
		}
		if item.StockQuantity < in.Quantity {
			return nil, decimal.Zero, NewError(KindInsufficientStock, fmt.Sprintf(
				"Insufficient stock for product %s. Available: %d, requested: %d",
				in.ItemID, item.StockQuantity, in.Quantity,
			))
		}

		line := model.OrderItem{
			CatalogItemID:    item.ID,
			ItemNameSnapshot: item.Name,
			Quantity:         in.Quantity,
			UnitPrice:        item.Price,
		}

		if item.IsRental {
			// レンタル品は期間がないと料金が決まらない
			if in.StartDate == nil || in.EndDate == nil {
				return nil, decimal.Zero, NewError(KindInvalidInput, "Rental dates are required for rental items")
			}
			start, end := in.StartDate.UTC(), in.EndDate.UTC()
			line.StartDate = &start
			line.EndDate = &end
			line.RentalDays = RentalDays(start, end)
			line.Subtotal = RentalCost(item.Price, in.Quantity, line.RentalDays)
		} else {
			line.Subtotal = SaleCost(item.Price, in.Quantity)
		}

		total = total.Add(line.Subtotal)
		lines = append(lines, line)
	}

	return lines, total, nil
}
