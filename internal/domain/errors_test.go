package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindPredicates(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		notFound  bool
		outRange  bool
		configErr bool
	}{
		{"order not found", ErrOrderNotFound, true, false, false},
		{"status not found", ErrStatusNotFound, true, false, false},
		{"product not found", ErrProductNotFound, true, false, false},
		{"month out of range", ErrMonthOutOfRange, false, true, false},
		{"year out of range", ErrYearOutOfRange, false, true, false},
		{"catalog missing", ErrStatusCatalogMissing, false, false, true},
		{"store failure", errors.New("connection reset"), false, false, false},
		{"not persisted", ErrOrderNotPersisted, false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsNotFound(tc.err); got != tc.notFound {
				t.Errorf("IsNotFound = %v, want %v", got, tc.notFound)
			}
			if got := IsOutOfRange(tc.err); got != tc.outRange {
				t.Errorf("IsOutOfRange = %v, want %v", got, tc.outRange)
			}
			if got := IsConfigViolation(tc.err); got != tc.configErr {
				t.Errorf("IsConfigViolation = %v, want %v", got, tc.configErr)
			}
		})
	}
}

func TestErrorKindPredicates_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("lookup product: %w", ErrProductNotFound)
	if !IsNotFound(wrapped) {
		t.Fatal("wrapped ErrProductNotFound must stay NotFound")
	}

	wrapped = fmt.Errorf("%w: %q", ErrStatusCatalogMissing, StatusNameCompleted)
	if !IsConfigViolation(wrapped) {
		t.Fatal("wrapped ErrStatusCatalogMissing must stay a config violation")
	}
	if IsNotFound(wrapped) {
		t.Fatal("config violation must not be classified as NotFound")
	}
}
