package validator_test

import (
	"context"
	"testing"
	"time"

	"buildmart/internal/usecase"
	"buildmart/internal/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var (
	now    = time.Date(2026, time.December, 1, 9, 0, 0, 0, time.UTC)
	itemID = "7b0c2a9e-4f5d-4c1e-9a3b-2d8f6e1c0a11"
	userID = "5e3b1f0a-8c2d-4b7e-a6f9-0d1c2b3a4e5f"
)

func at(day int, hour int) *time.Time {
	v := time.Date(2026, time.December, day, hour, 0, 0, 0, time.UTC)
	return &v
}

// エラー種類とメッセージを確認
func assertKind(t *testing.T, err error, kind usecase.ErrorKind, msg string) {
	t.Helper()
	e, ok := usecase.AsError(err)
	require.True(t, ok, "err=%v", err)
	assert.Equal(t, kind, e.Kind)
	assert.Equal(t, msg, e.Message)
}

func validCheckout() usecase.CheckoutInput {
	return usecase.CheckoutInput{
		Items: []usecase.CheckoutItemInput{{
			ItemID:          itemID,
			Quantity:        2,
			PriceAtPurchase: decimal.RequireFromString("10.50"),
		}},
		DeliveryAddress: "12 Builder Rd",
		TotalAmount:     decimal.RequireFromString("21"),
	}
}

// =====================
// ValidateAvailability
// =====================

func TestCheckoutValidator_ValidateAvailability(t *testing.T) {
	v := validator.NewCheckoutValidator(fixedClock{now})
	ctx := context.Background()

	assert.NoError(t, v.ValidateAvailability(ctx, usecase.AvailabilityInput{ItemID: itemID, Quantity: 1}))

	assertKind(t, v.ValidateAvailability(ctx, usecase.AvailabilityInput{Quantity: 1}),
		usecase.KindInvalidInput, "Product ID is required")
	assertKind(t, v.ValidateAvailability(ctx, usecase.AvailabilityInput{ItemID: "abc", Quantity: 1}),
		usecase.KindInvalidInput, "Invalid product ID")
	assertKind(t, v.ValidateAvailability(ctx, usecase.AvailabilityInput{ItemID: itemID, Quantity: 0}),
		usecase.KindInvalidInput, "Invalid quantity")
	assertKind(t, v.ValidateAvailability(ctx, usecase.AvailabilityInput{ItemID: itemID, Quantity: -3}),
		usecase.KindInvalidInput, "Invalid quantity")
}

// =====================
// ValidateRentalWindow
// =====================

func TestCheckoutValidator_ValidateRentalWindow(t *testing.T) {
	v := validator.NewCheckoutValidator(fixedClock{now})
	ctx := context.Background()

	assert.NoError(t, v.ValidateRentalWindow(ctx, at(10, 0), at(15, 0)))

	//今日の0時は「過去」ではない（日単位で比較）
	assert.NoError(t, v.ValidateRentalWindow(ctx, at(1, 0), at(2, 0)))

	assertKind(t, v.ValidateRentalWindow(ctx, nil, at(15, 0)),
		usecase.KindInvalidInput, "Rental dates are required for rental items")
	assertKind(t, v.ValidateRentalWindow(ctx, at(10, 0), nil),
		usecase.KindInvalidInput, "Rental dates are required for rental items")
	assertKind(t, v.ValidateRentalWindow(ctx, at(15, 0), at(15, 0)),
		usecase.KindInvalidInput, "End date must be after start date")
	assertKind(t, v.ValidateRentalWindow(ctx, at(15, 0), at(10, 0)),
		usecase.KindInvalidInput, "End date must be after start date")

	past := time.Date(2026, time.November, 30, 23, 0, 0, 0, time.UTC)
	assertKind(t, v.ValidateRentalWindow(ctx, &past, at(20, 0)),
		usecase.KindInvalidInput, "Start date cannot be in the past")
}

// =====================
// ValidateCheckout
// =====================

func TestCheckoutValidator_ValidateCheckout_OK(t *testing.T) {
	v := validator.NewCheckoutValidator(fixedClock{now})
	assert.NoError(t, v.ValidateCheckout(context.Background(), userID, validCheckout()))
}

func TestCheckoutValidator_ValidateCheckout_Errors(t *testing.T) {
	v := validator.NewCheckoutValidator(fixedClock{now})
	ctx := context.Background()

	cases := []struct {
		name   string
		user   string
		mutate func(in *usecase.CheckoutInput)
		kind   usecase.ErrorKind
		msg    string
	}{
		{"no user", "", func(in *usecase.CheckoutInput) {}, usecase.KindUnauthorized, "Unauthorized"},
		{"empty cart", userID, func(in *usecase.CheckoutInput) { in.Items = nil }, usecase.KindEmptyCart, "Cart is empty"},
		{"blank address", userID, func(in *usecase.CheckoutInput) { in.DeliveryAddress = "   " }, usecase.KindInvalidInput, "Delivery address is required"},
		{"zero total", userID, func(in *usecase.CheckoutInput) { in.TotalAmount = decimal.Zero }, usecase.KindInvalidInput, "Invalid total amount"},
		{"negative total", userID, func(in *usecase.CheckoutInput) { in.TotalAmount = decimal.NewFromInt(-5) }, usecase.KindInvalidInput, "Invalid total amount"},
		{"zero quantity", userID, func(in *usecase.CheckoutInput) { in.Items[0].Quantity = 0 }, usecase.KindInvalidInput, "Invalid item data"},
		{"zero price", userID, func(in *usecase.CheckoutInput) { in.Items[0].PriceAtPurchase = decimal.Zero }, usecase.KindInvalidInput, "Invalid item data"},
		{"bad item id", userID, func(in *usecase.CheckoutInput) { in.Items[0].ItemID = "not-a-uuid" }, usecase.KindInvalidInput, "Invalid item data"},
		{"end before start", userID, func(in *usecase.CheckoutInput) {
			in.Items[0].StartDate, in.Items[0].EndDate = at(12, 0), at(10, 0)
		}, usecase.KindInvalidInput, "Invalid rental dates"},
		{"start in past", userID, func(in *usecase.CheckoutInput) {
			past := time.Date(2026, time.November, 20, 0, 0, 0, 0, time.UTC)
			in.Items[0].StartDate, in.Items[0].EndDate = &past, at(10, 0)
		}, usecase.KindInvalidInput, "Start date cannot be in the past"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCheckout()
			tc.mutate(&in)
			assertKind(t, v.ValidateCheckout(ctx, tc.user, in), tc.kind, tc.msg)
		})
	}
}

func TestCheckoutValidator_ValidateCheckout_OnlyOneDateIsNotChecked(t *testing.T) {
	v := validator.NewCheckoutValidator(fixedClock{now})

	//片方だけならここでは通す（レンタル品かどうかはusecaseで判定）
	in := validCheckout()
	past := time.Date(2026, time.November, 20, 0, 0, 0, 0, time.UTC)
	in.Items[0].StartDate = &past
	assert.NoError(t, v.ValidateCheckout(context.Background(), userID, in))
}
