package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
		want bool
	}{
		{
			name: "matching kind",
			err:  NewCustomerNotFound(),
			kind: KindCustomerNotFound,
			want: true,
		},
		{
			name: "wrapped business error",
			err:  fmt.Errorf("place order: %w", NewInsufficientStock("Widget")),
			kind: KindInsufficientStock,
			want: true,
		},
		{
			name: "different kind",
			err:  NewProductNotFound(),
			kind: KindCustomerNotFound,
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			kind: KindCustomerNotFound,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			kind: KindCustomerNotFound,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsKind(tt.err, tt.kind)
			if got != tt.want {
				t.Errorf("IsKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "customer not found",
			err:  NewCustomerNotFound(),
			want: "Customer not found",
		},
		{
			name: "products not found",
			err:  NewProductNotFound(),
			want: "Products not found",
		},
		{
			name: "insufficient stock carries product name",
			err:  NewInsufficientStock("Widget"),
			want: "Quantity not available for Widget",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
			}
			if tt.err.Status != http.StatusBadRequest {
				t.Errorf("Status = %d, want %d", tt.err.Status, http.StatusBadRequest)
			}
		})
	}
}

func TestNewErrorDefaultStatus(t *testing.T) {
	err := NewError(KindInvalidQuantity, "bad qty", 0)
	if err.Status != http.StatusBadRequest {
		t.Errorf("expected default status 400, got %d", err.Status)
	}
}
