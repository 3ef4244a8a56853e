// Package domain holds the point-of-sale entities and the error taxonomy
// shared by the catalog, cart, checkout and reporting layers.
package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyCart is returned when an operation needs at least one cart line.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrBadCredentials hides whether the username or the password was wrong.
	ErrBadCredentials = errors.New("invalid username or password")
	// ErrForbidden is returned when the session role lacks the capability.
	ErrForbidden = errors.New("operation not permitted for this role")
	// ErrUnauthenticated is returned when no session is attached.
	ErrUnauthenticated = errors.New("not logged in")
	// ErrCheckoutInProgress guards against a double-triggered checkout.
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// ValidationError is returned for bad input before it reaches storage.
type ValidationError struct {
	Field  string
	Reason string
	Value  any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s (value=%v)", e.Field, e.Reason, e.Value)
}

func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// StorageError wraps a database failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	_, ok := target.(*StorageError)
	return ok
}

// ProductNotFoundError is returned when no product matches the name or id.
type ProductNotFoundError struct {
	Key string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.Key)
}

func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// DuplicateProductError is returned when a product name is already taken.
type DuplicateProductError struct {
	Name string
}

func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("duplicate product: %q already exists", e.Name)
}

func (e *DuplicateProductError) Is(target error) bool {
	_, ok := target.(*DuplicateProductError)
	return ok
}

// LineNotFoundError is a warning: the cart has no line for the product.
type LineNotFoundError struct {
	ProductName string
}

func (e *LineNotFoundError) Error() string {
	return fmt.Sprintf("no cart line for %q", e.ProductName)
}

func (e *LineNotFoundError) Is(target error) bool {
	_, ok := target.(*LineNotFoundError)
	return ok
}

// InsufficientPaymentError is returned when the tendered amount does not
// cover the cart total. No change is computed and nothing is persisted.
type InsufficientPaymentError struct {
	Total    decimal.Decimal
	Tendered decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: total=%s tendered=%s", e.Total.StringFixed(2), e.Tendered.StringFixed(2))
}

func (e *InsufficientPaymentError) Is(target error) bool {
	_, ok := target.(*InsufficientPaymentError)
	return ok
}

// PartialPersistError lists the cart lines whose sale record was not saved.
type PartialPersistError struct {
	Failed []string
	Err    error
}

func (e *PartialPersistError) Error() string {
	return fmt.Sprintf("could not record %d line(s): %s: %v", len(e.Failed), strings.Join(e.Failed, ", "), e.Err)
}

func (e *PartialPersistError) Unwrap() error { return e.Err }

func (e *PartialPersistError) Is(target error) bool {
	_, ok := target.(*PartialPersistError)
	return ok
}

func NewValidationError(field, reason string, value any) error {
	return &ValidationError{Field: field, Reason: reason, Value: value}
}

func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func IsProductNotFoundError(err error) bool {
	var nf *ProductNotFoundError
	return errors.As(err, &nf)
}

func IsDuplicateProductError(err error) bool {
	var de *DuplicateProductError
	return errors.As(err, &de)
}

func IsLineNotFoundError(err error) bool {
	var le *LineNotFoundError
	return errors.As(err, &le)
}

func IsInsufficientPaymentError(err error) bool {
	var ie *InsufficientPaymentError
	return errors.As(err, &ie)
}

func IsPartialPersistError(err error) bool {
	var pe *PartialPersistError
	return errors.As(err, &pe)
}
