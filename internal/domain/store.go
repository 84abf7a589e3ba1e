package domain

import "context"

// KeyValue is the durable key-value capability provided by the host.
type KeyValue interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Store reads and writes the whole task list as one unit.
type Store interface {
	// Load reports false when nothing usable was saved.
	Load(ctx context.Context) (TaskList, bool)
	Save(ctx context.Context, list TaskList) error
}

// Counter is implemented by stores that can persist the next task id
// alongside the list.
type Counter interface {
	LoadNextID(ctx context.Context) (int, bool)
	SaveNextID(ctx context.Context, next int) error
}
