package utils

import (
	"context"
	"fmt"
	"time"
)

// Retry ejecuta fn hasta attempts veces. La espera crece linealmente (delay, 2*delay, ...)
// y no se espera tras el último intento.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if i == attempts {
			break
		}

		timer := time.NewTimer(time.Duration(i) * delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, err)
}
