package usecase

import (
	"time"

	"github.com/shopspring/decimal"
)

// 合計金額の許容誤差
var PriceTolerance = decimal.New(1, -2)

// Overlaps は半開区間 [aStart, aEnd) と [bStart, bEnd) が重なるか。
// 終了日と開始日が同じ日は重ならない。
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// RentalDays は期間を日数に切り上げる（端数は1日として請求）
func RentalDays(start, end time.Time) int64 {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	days := int64(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// SaleCost は販売品の小計
func SaleCost(price decimal.Decimal, qty int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(qty))
}

// RentalCost はレンタル品の小計（日額 × 数量 × 日数）
func RentalCost(pricePerDay decimal.Decimal, qty int64, days int64) decimal.Decimal {
	return pricePerDay.Mul(decimal.NewFromInt(qty)).Mul(decimal.NewFromInt(days))
}

// StartsBeforeToday は開始日が今日（UTC、日単位）より前か
func StartsBeforeToday(start time.Time, now time.Time) bool {
	return startOfDayUTC(start).Before(startOfDayUTC(now))
}

func startOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// withinTolerance は2つの金額の差が許容誤差以内か
func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(PriceTolerance)
}
