package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksFailedError(t *testing.T) {
	err := &ChecksFailedError{Failed: 3}
	assert.Equal(t, "3 checks failed", err.Error())
}

func TestErrorTypeDetection(t *testing.T) {
	tests := []struct {
		name             string
		err              error
		wantChecksFailed bool
	}{
		{"ChecksFailedError", &ChecksFailedError{Failed: 1}, true},
		{"wrapped ChecksFailedError", fmt.Errorf("run: %w", &ChecksFailedError{Failed: 1}), true},
		{"regular error", errors.New("config error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var checksFailedErr *ChecksFailedError
			assert.Equal(t, tt.wantChecksFailed, errors.As(tt.err, &checksFailedErr))
		})
	}
}
