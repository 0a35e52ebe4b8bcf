package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnknownCategory", ErrUnknownCategory},
		{"ErrSlideNotFound", ErrSlideNotFound},
		{"ErrLayoutNotFound", ErrLayoutNotFound},
		{"ErrSessionClosed", ErrSessionClosed},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrPresentationsUnavailable", ErrPresentationsUnavailable},
		{"ErrAccessDenied", ErrAccessDenied},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrUnknownCategory, ErrSlideNotFound,
		ErrLayoutNotFound, ErrSessionClosed, ErrLLMUnavailable, ErrPresentationsUnavailable,
		ErrAccessDenied, ErrRateLimited,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("get slide s1: %w", ErrSlideNotFound)
	assert.ErrorIs(t, wrapped, ErrSlideNotFound)
	assert.Contains(t, wrapped.Error(), "slide not found")
}
