package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationClamps(t *testing.T) {
	p := NewPagination(0, 0, 95)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, int64(10), p.Pages)

	p = NewPagination(2, 1000, 95)
	assert.Equal(t, 100, p.PageSize)
	assert.Equal(t, int64(1), p.Pages)
}

func TestPaginationOffsetLimit(t *testing.T) {
	p := NewPagination(3, 20, 100)
	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 20, p.Limit())
}

func TestRetryWithBackoffSucceedsEventually(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(3, time.Millisecond, 10*time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoffExhausts(t *testing.T) {
	wantErr := errors.New("permanent")
	attempts := 0
	err := RetryWithBackoff(3, time.Millisecond, 10*time.Millisecond, func() error {
		attempts++
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 3, attempts)
}
