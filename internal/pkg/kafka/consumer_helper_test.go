package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithRetry(t *testing.T) {
	retryInterval = time.Millisecond
	defer func() { retryInterval = 100 * time.Millisecond }()

	calls := 0
	err := withRetry(context.Background(), 3, func() error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	boom := errors.New("permanent")
	err = withRetry(context.Background(), 2, func() error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_StopsOnCancel(t *testing.T) {
	retryInterval = time.Hour
	defer func() { retryInterval = 100 * time.Millisecond }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := withRetry(ctx, 5, func() error { return errors.New("fail") })
	assert.ErrorIs(t, err, context.Canceled)
}
