package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithExponentialBackoff_Success(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation)

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err != nil {
		t.Errorf("Expected no error after retries, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_MaxRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("persistent error")
	}

	ctx := context.Background()
	maxRetries := 3
	err := WithExponentialBackoff(ctx, operation,
		WithMaxRetries(maxRetries),
		WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error after max retries, got nil")
	}
	// MaxRetries is the number of retries after the first attempt
	expectedAttempts := maxRetries + 1
	if attempts != expectedAttempts {
		t.Errorf("Expected %d attempts (1 + %d retries), got: %d", expectedAttempts, maxRetries, attempts)
	}
}

func TestWithExponentialBackoff_ContextCancellation(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithExponentialBackoff(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error due to context cancellation, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before context check, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_FatalError(t *testing.T) {
	t.Parallel()
	attempts := 0
	fatalErr := errors.New("bad request")
	operation := func() error {
		attempts++
		return Fatal(fatalErr)
	}

	err := WithExponentialBackoff(context.Background(), operation, WithInitialDelay(time.Millisecond))

	if err == nil {
		t.Error("Expected fatal error to propagate, got nil")
	}
	if !errors.Is(err, fatalErr) {
		t.Errorf("Expected wrapped fatal error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected fatal error to stop retries after 1 attempt, got: %d", attempts)
	}
}

func TestWithFixedBackoff_AttemptCount(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("still failing")
	}

	err := WithFixedBackoff(context.Background(), operation, 3, time.Millisecond)

	if err == nil {
		t.Error("Expected error after exhausting attempts, got nil")
	}
	if attempts != 3 {
		t.Errorf("Expected exactly 3 attempts, got: %d", attempts)
	}
}

func TestWithFixedBackoff_FixedDelay(t *testing.T) {
	t.Parallel()
	var gaps []time.Duration
	last := time.Now()
	attempts := 0
	operation := func() error {
		now := time.Now()
		if attempts > 0 {
			gaps = append(gaps, now.Sub(last))
		}
		last = now
		attempts++
		return errors.New("fail")
	}

	_ = WithFixedBackoff(context.Background(), operation, 3, 20*time.Millisecond)

	for i, gap := range gaps {
		if gap < 20*time.Millisecond {
			t.Errorf("gap %d shorter than fixed delay: %v", i, gap)
		}
		// A fixed policy must not grow the delay; allow generous scheduling slack.
		if gap > 200*time.Millisecond {
			t.Errorf("gap %d suspiciously long for fixed delay: %v", i, gap)
		}
	}
}

func TestIsFatal(t *testing.T) {
	t.Parallel()
	if IsFatal(errors.New("plain")) {
		t.Error("plain error should not be fatal")
	}
	if !IsFatal(Fatal(errors.New("wrapped"))) {
		t.Error("Fatal-wrapped error should be fatal")
	}
	if Fatal(nil) != nil {
		t.Error("Fatal(nil) should be nil")
	}
}
