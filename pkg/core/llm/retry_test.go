package llm

import (
	"context"
	"testing"
	"time"

	"github.com/easyops/videorag-go/pkg/core/errors"
)

func TestRetrySucceedsEventually(t *testing.T) {
	attempts := 0
	err := retry(context.Background(), 3, time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return errors.ErrRateLimited
		}
		return nil
	})

	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	attempts := 0
	err := retry(context.Background(), 3, time.Millisecond, func() error {
		attempts++
		return errors.ErrInvalidAPIKey
	})

	if !errors.Is(err, errors.ErrInvalidAPIKey) {
		t.Fatalf("err = %v, want ErrInvalidAPIKey", err)
	}
	// non-retryable errors return immediately
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestRetryExhaustsBudget(t *testing.T) {
	attempts := 0
	err := retry(context.Background(), 2, time.Millisecond, func() error {
		attempts++
		return errors.ErrProviderUnavailable
	})

	if !errors.Is(err, errors.ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
	// initial attempt plus two retries
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRetryRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	errCh := make(chan error, 1)
	go func() {
		errCh <- retry(ctx, 5, time.Hour, func() error {
			attempts++
			return errors.ErrTimeout
		})
	}()

	// cancel while retry waits on the backoff delay
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("retry did not return after cancellation")
	}
}

func TestIsRetryable(t *testing.T) {
	retryable := []error{
		errors.ErrRateLimited,
		errors.ErrTimeout,
		errors.ErrProviderUnavailable,
		errors.Wrap(errors.ErrRateLimited, "wrapped"),
	}
	for _, err := range retryable {
		if !isRetryable(err) {
			t.Errorf("isRetryable(%v) = false, want true", err)
		}
	}

	permanent := []error{
		errors.ErrInvalidAPIKey,
		errors.ErrModelNotFound,
		errors.ErrInvalidResponse,
	}
	for _, err := range permanent {
		if isRetryable(err) {
			t.Errorf("isRetryable(%v) = true, want false", err)
		}
	}
}
