package usecase

import (
	"context"
	"time"
)

// 入力検証はvalidatorパッケージが実装する
type CheckoutValidator interface {
	// 商品IDと数量
	ValidateAvailability(ctx context.Context, in AvailabilityInput) error
	// レンタル品の期間（在庫確認用）
	ValidateRentalWindow(ctx context.Context, start *time.Time, end *time.Time) error
	// DBに触る前のチェックアウト入力チェック
	ValidateCheckout(ctx context.Context, userID string, in CheckoutInput) error
}
