package repository

import "context"

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}
