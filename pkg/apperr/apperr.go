// Package apperr defines the error taxonomy shared by the workflow
// services and the HTTP layer: validation, not-found, insufficient
// stock and illegal state transitions each map to a distinct response
// status. Anything else is treated as an unexpected storage failure.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInsufficientStock is the storage-level sentinel returned by the
// conditional stock adjustment when the delta would drive stock
// negative. Services wrap it with the product name before it reaches
// a caller.
var ErrInsufficientStock = errors.New("insufficient stock")

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

type InsufficientStockError struct {
	Product string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product '%s'", e.Product)
}

func InsufficientStock(product string) error {
	return &InsufficientStockError{Product: product}
}

type TerminalTransitionError struct {
	From, To string
}

func (e *TerminalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from '%s' to '%s'", e.From, e.To)
}

func TerminalTransition(from, to string) error {
	return &TerminalTransitionError{From: from, To: to}
}

// HTTPStatus maps an error to the response status the API contract
// promises: 400 for validation/stock/transition failures, 404 for
// missing entities, 500 otherwise.
func HTTPStatus(err error) int {
	var (
		nf *NotFoundError
		ve *ValidationError
		is *InsufficientStockError
		tt *TerminalTransitionError
	)
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ve), errors.As(err, &is), errors.As(err, &tt),
		errors.Is(err, ErrInsufficientStock):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
