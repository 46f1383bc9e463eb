package domain

import (
	"errors"
	"fmt"
)

// Each condition the API surfaces to a client has its own error type so
// callers can branch with errors.As and still render the exact user-facing
// message.

// EmptyCartError is returned when checkout finds no cart or no lines.
type EmptyCartError struct {
	UserID int64
}

func (e *EmptyCartError) Error() string {
	return "Cart is empty"
}

// Is allows error type checking with errors.Is()
func (e *EmptyCartError) Is(target error) bool {
	_, ok := target.(*EmptyCartError)
	return ok
}

// ProductNotFoundError is returned when a product with the given ID does
// not exist in the catalog.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product with id %s not found", e.ProductID)
}

// Is allows error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// InsufficientStockError is returned when a requested quantity exceeds a
// product's available stock.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Stock     int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s", e.Name)
}

// Is allows error type checking with errors.Is()
func (e *InsufficientStockError) Is(target error) bool {
	_, ok := target.(*InsufficientStockError)
	return ok
}

// InvalidStatusError is returned when an order status update names a value
// outside the status enum.
type InvalidStatusError struct {
	Status OrderStatus
}

func (e *InvalidStatusError) Error() string {
	return "Invalid status"
}

// Is allows error type checking with errors.Is()
func (e *InvalidStatusError) Is(target error) bool {
	_, ok := target.(*InvalidStatusError)
	return ok
}

// OrderNotFoundError is returned when an order is absent or belongs to a
// different user.
type OrderNotFoundError struct {
	OrderID int64
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order not found: id=%d", e.OrderID)
}

// Is allows error type checking with errors.Is()
func (e *OrderNotFoundError) Is(target error) bool {
	_, ok := target.(*OrderNotFoundError)
	return ok
}

// InvalidProductError is returned when product validation fails.
type InvalidProductError struct {
	Field  string
	Reason string
	Value  interface{}
}

func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("invalid product: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows error type checking with errors.Is()
func (e *InvalidProductError) Is(target error) bool {
	_, ok := target.(*InvalidProductError)
	return ok
}

// DuplicateProductError is returned when creating a product with an
// existing ID.
type DuplicateProductError struct {
	ProductID string
}

func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("duplicate product: id=%s already exists", e.ProductID)
}

// Is allows error type checking with errors.Is()
func (e *DuplicateProductError) Is(target error) bool {
	_, ok := target.(*DuplicateProductError)
	return ok
}

// LineNotFoundError is returned when a cart line update names a product
// that is not in the cart.
type LineNotFoundError struct {
	UserID    int64
	ProductID string
}

func (e *LineNotFoundError) Error() string {
	return "Product not found in cart"
}

// Is allows error type checking with errors.Is()
func (e *LineNotFoundError) Is(target error) bool {
	_, ok := target.(*LineNotFoundError)
	return ok
}

// UserNotFoundError is returned when no account matches the lookup.
type UserNotFoundError struct {
	UserID int64
	Email  string
}

func (e *UserNotFoundError) Error() string {
	if e.Email != "" {
		return fmt.Sprintf("user not found: email=%s", e.Email)
	}
	return fmt.Sprintf("user not found: id=%d", e.UserID)
}

// Is allows error type checking with errors.Is()
func (e *UserNotFoundError) Is(target error) bool {
	_, ok := target.(*UserNotFoundError)
	return ok
}

// DuplicateEmailError is returned when registering an email that is
// already taken.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("email already in use: %s", e.Email)
}

// Is allows error type checking with errors.Is()
func (e *DuplicateEmailError) Is(target error) bool {
	_, ok := target.(*DuplicateEmailError)
	return ok
}

// Constructors

// NewEmptyCartError creates a new EmptyCartError.
func NewEmptyCartError(userID int64) error {
	return &EmptyCartError{UserID: userID}
}

// NewProductNotFoundError creates a new ProductNotFoundError.
func NewProductNotFoundError(productID string) error {
	return &ProductNotFoundError{ProductID: productID}
}

// NewInsufficientStockError creates a new InsufficientStockError.
func NewInsufficientStockError(productID, name string, stock, requested int) error {
	return &InsufficientStockError{ProductID: productID, Name: name, Stock: stock, Requested: requested}
}

// NewInvalidStatusError creates a new InvalidStatusError.
func NewInvalidStatusError(status OrderStatus) error {
	return &InvalidStatusError{Status: status}
}

// NewOrderNotFoundError creates a new OrderNotFoundError.
func NewOrderNotFoundError(orderID int64) error {
	return &OrderNotFoundError{OrderID: orderID}
}

// NewInvalidProductError creates a new InvalidProductError.
func NewInvalidProductError(field, reason string, value interface{}) error {
	return &InvalidProductError{Field: field, Reason: reason, Value: value}
}

// NewDuplicateProductError creates a new DuplicateProductError.
func NewDuplicateProductError(productID string) error {
	return &DuplicateProductError{ProductID: productID}
}

// NewLineNotFoundError creates a new LineNotFoundError.
func NewLineNotFoundError(userID int64, productID string) error {
	return &LineNotFoundError{UserID: userID, ProductID: productID}
}

// Type assertion helpers for use with errors.As()

// IsEmptyCartError checks if an error is an EmptyCartError.
func IsEmptyCartError(err error) bool {
	var e *EmptyCartError
	return errors.As(err, &e)
}

// IsProductNotFoundError checks if an error is a ProductNotFoundError.
func IsProductNotFoundError(err error) bool {
	var e *ProductNotFoundError
	return errors.As(err, &e)
}

// IsInsufficientStockError checks if an error is an InsufficientStockError.
func IsInsufficientStockError(err error) bool {
	var e *InsufficientStockError
	return errors.As(err, &e)
}

// IsInvalidStatusError checks if an error is an InvalidStatusError.
func IsInvalidStatusError(err error) bool {
	var e *InvalidStatusError
	return errors.As(err, &e)
}

// IsOrderNotFoundError checks if an error is an OrderNotFoundError.
func IsOrderNotFoundError(err error) bool {
	var e *OrderNotFoundError
	return errors.As(err, &e)
}

// IsInvalidProductError checks if an error is an InvalidProductError.
func IsInvalidProductError(err error) bool {
	var e *InvalidProductError
	return errors.As(err, &e)
}

// IsDuplicateProductError checks if an error is a DuplicateProductError.
func IsDuplicateProductError(err error) bool {
	var e *DuplicateProductError
	return errors.As(err, &e)
}

// IsLineNotFoundError checks if an error is a LineNotFoundError.
func IsLineNotFoundError(err error) bool {
	var e *LineNotFoundError
	return errors.As(err, &e)
}

// IsUserNotFoundError checks if an error is a UserNotFoundError.
func IsUserNotFoundError(err error) bool {
	var e *UserNotFoundError
	return errors.As(err, &e)
}

// IsDuplicateEmailError checks if an error is a DuplicateEmailError.
func IsDuplicateEmailError(err error) bool {
	var e *DuplicateEmailError
	return errors.As(err, &e)
}
