package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// ErrorKind はクライアントに返すエラーの種類
type ErrorKind string

const (
	KindInvalidInput          ErrorKind = "InvalidInput"
	KindEmptyCart             ErrorKind = "EmptyCart"
	KindNotFound              ErrorKind = "NotFound"
	KindUnauthorized          ErrorKind = "Unauthorized"
	KindInsufficientStock     ErrorKind = "InsufficientStock"
	KindUnavailable           ErrorKind = "Unavailable"
	KindPriceMismatch         ErrorKind = "PriceMismatch"
	KindOrderCreationFailed   ErrorKind = "OrderCreationFailed"
	KindOrderItemsFailed      ErrorKind = "OrderItemsFailed"
	KindInventoryUpdateFailed ErrorKind = "InventoryUpdateFailed"
	KindInternal              ErrorKind = "Internal"
)

// HTTPステータスへの対応
func (k ErrorKind) Status() int {
	switch k {
	case KindInvalidInput, KindEmptyCart, KindInsufficientStock, KindUnavailable, KindPriceMismatch:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error はusecaseが返すエラー。Messageはそのまま画面に出せる文言、Errは内部原因（ログ用）。
type Error struct {
	Kind    ErrorKind
	Message string

	// PriceMismatchのときだけ入る
	Calculated *decimal.Decimal
	Provided   *decimal.Decimal

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Status() int {
	return e.Kind.Status()
}

func NewError(kind ErrorKind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind ErrorKind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func newPriceMismatch(calculated, provided decimal.Decimal) error {
	return &Error{
		Kind:       KindPriceMismatch,
		Message:    "Price mismatch. Please refresh the cart.",
		Calculated: &calculated,
		Provided:   &provided,
	}
}
