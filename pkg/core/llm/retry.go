package llm

import (
	"context"
	"time"

	"github.com/easyops/videorag-go/pkg/core/errors"
)

// retry 带指数退避的有界重试。
//
// 只对可恢复错误（限速、超时、服务不可用）重试，
// 其余错误立即返回。
func retry(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseDelay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}

// isRetryable 判断错误是否可重试。
func isRetryable(err error) bool {
	return errors.Is(err, errors.ErrRateLimited) ||
		errors.Is(err, errors.ErrTimeout) ||
		errors.Is(err, errors.ErrProviderUnavailable)
}
