package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{NewEmptyCartError(1), "Cart is empty"},
		{NewProductNotFoundError("abc"), "Product with id abc not found"},
		{NewInsufficientStockError("abc", "Seamaster", 1, 2), "Insufficient stock for Seamaster"},
		{NewInvalidStatusError("refunded"), "Invalid status"},
		{NewLineNotFoundError(1, "abc"), "Product not found in cart"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}

func TestErrorTypeChecks(t *testing.T) {
	if !IsEmptyCartError(NewEmptyCartError(1)) {
		t.Error("IsEmptyCartError failed")
	}
	if !IsProductNotFoundError(NewProductNotFoundError("p")) {
		t.Error("IsProductNotFoundError failed")
	}
	if !IsInsufficientStockError(NewInsufficientStockError("p", "X", 0, 1)) {
		t.Error("IsInsufficientStockError failed")
	}
	if !IsInvalidStatusError(NewInvalidStatusError("x")) {
		t.Error("IsInvalidStatusError failed")
	}
	if !IsOrderNotFoundError(NewOrderNotFoundError(7)) {
		t.Error("IsOrderNotFoundError failed")
	}
	if !IsDuplicateProductError(NewDuplicateProductError("p")) {
		t.Error("IsDuplicateProductError failed")
	}
	if !IsLineNotFoundError(NewLineNotFoundError(1, "p")) {
		t.Error("IsLineNotFoundError failed")
	}
	if IsProductNotFoundError(NewOrderNotFoundError(7)) {
		t.Error("cross-type check should fail")
	}
}

func TestErrorChecksThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("checkout: %w", NewInsufficientStockError("p", "X", 0, 1))
	if !IsInsufficientStockError(wrapped) {
		t.Error("wrapped error not detected")
	}

	var ise *InsufficientStockError
	if !errors.As(wrapped, &ise) {
		t.Fatal("errors.As failed")
	}
	if ise.Name != "X" || ise.Requested != 1 {
		t.Errorf("context lost through wrapping: %+v", ise)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		if !ValidStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	if ValidStatus("refunded") || ValidStatus("") {
		t.Error("unknown statuses should be invalid")
	}
}
