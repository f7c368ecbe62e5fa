package validator

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"buildmart/internal/usecase"

	playground "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// 在庫確認の入力ルール
type availabilityRules struct {
	ItemID   string `validate:"required,uuid"`
	Quantity int64  `validate:"gt=0"`
}

// チェックアウト明細の入力ルール
type checkoutItemRules struct {
	ItemID          string          `validate:"required,uuid"`
	Quantity        int64           `validate:"gt=0"`
	PriceAtPurchase decimal.Decimal `validate:"gt=0"`
}

type checkoutValidator struct {
	v     *playground.Validate
	clock usecase.Clock
}

// Usecaseは interface を依存注入
func NewCheckoutValidator(clock usecase.Clock) usecase.CheckoutValidator {
	v := playground.New()
	// decimalは数値として比較する
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	return &checkoutValidator{v: v, clock: clock}
}

// 商品IDと数量を検証
func (cv *checkoutValidator) ValidateAvailability(ctx context.Context, in usecase.AvailabilityInput) error {
	err := cv.v.StructCtx(ctx, availabilityRules{ItemID: strings.TrimSpace(in.ItemID), Quantity: in.Quantity})
	if err == nil {
		return nil
	}

	switch failedField(err) {
	case "ItemID":
		if strings.TrimSpace(in.ItemID) == "" {
			return usecase.NewError(usecase.KindInvalidInput, "Product ID is required")
		}
		return usecase.NewError(usecase.KindInvalidInput, "Invalid product ID")
	default:
		return usecase.NewError(usecase.KindInvalidInput, "Invalid quantity")
	}
}

// レンタル期間を検証（在庫確認用の文言）
func (cv *checkoutValidator) ValidateRentalWindow(ctx context.Context, start *time.Time, end *time.Time) error {
	if start == nil || end == nil {
		return usecase.NewError(usecase.KindInvalidInput, "Rental dates are required for rental items")
	}
	if !end.After(*start) {
		return usecase.NewError(usecase.KindInvalidInput, "End date must be after start date")
	}
	if usecase.StartsBeforeToday(*start, cv.clock.Now()) {
		return usecase.NewError(usecase.KindInvalidInput, "Start date cannot be in the past")
	}
	return nil
}

// チェックアウトの入力を検証（DBアクセス前）
func (cv *checkoutValidator) ValidateCheckout(ctx context.Context, userID string, in usecase.CheckoutInput) error {
	// 認証済みユーザー
	if err := cv.v.VarCtx(ctx, userID, "required,uuid"); err != nil {
		return usecase.NewError(usecase.KindUnauthorized, "Unauthorized")
	}

	if len(in.Items) == 0 {
		return usecase.NewError(usecase.KindEmptyCart, "Cart is empty")
	}

	if err := cv.v.VarCtx(ctx, strings.TrimSpace(in.DeliveryAddress), "required"); err != nil {
		return usecase.NewError(usecase.KindInvalidInput, "Delivery address is required")
	}

	if !in.TotalAmount.IsPositive() {
		return usecase.NewError(usecase.KindInvalidInput, "Invalid total amount")
	}

	now := cv.clock.Now()
	for _, it := range in.Items {
		rules := checkoutItemRules{
			ItemID:          strings.TrimSpace(it.ItemID),
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase,
		}
		if err := cv.v.StructCtx(ctx, rules); err != nil {
			return usecase.NewError(usecase.KindInvalidInput, "Invalid item data")
		}

		// 両方あるときだけ期間を見る
		if it.StartDate != nil && it.EndDate != nil {
			if !it.EndDate.After(*it.StartDate) {
				return usecase.NewError(usecase.KindInvalidInput, "Invalid rental dates")
			}
			if usecase.StartsBeforeToday(*it.StartDate, now) {
				return usecase.NewError(usecase.KindInvalidInput, "Start date cannot be in the past")
			}
		}
	}

	return nil
}

// 最初に失敗したフィールド名
func failedField(err error) string {
	var verrs playground.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].StructField()
	}
	return ""
}
