package database

import (
	"context"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultRetryDelay — пауза между попытками первичного подключения
const DefaultRetryDelay = 5 * time.Second

// retryForever повторяет connect с постоянной задержкой, пока он не завершится успешно
// или не будет отменен ctx
func retryForever(ctx context.Context, name string, delay time.Duration, connect func() error) error {
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	policy := backoff.WithContext(backoff.NewConstantBackOff(delay), ctx)

	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		return connect()
	}, policy, func(err error, wait time.Duration) {
		log.Printf("[Database] %s: попытка подключения #%d не удалась: %v. Повтор через %s", name, attempt, err, wait)
	})
}
