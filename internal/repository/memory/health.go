package memory

import "context"

// HealthChecker всегда сообщает о доступности хранилища в памяти
type HealthChecker struct{}

// Ping всегда возвращает nil
func (HealthChecker) Ping(context.Context) error { return nil }
