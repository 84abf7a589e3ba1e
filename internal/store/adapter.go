package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"git.sr.ht/~jakintosh/todos/internal/domain"
)

const (
	// TodosKey holds the serialized task list.
	TodosKey = "todos"

	// NextIDKey holds the next id to hand out, as a decimal integer.
	NextIDKey = "todos.next_id"
)

// Adapter keeps the whole task list as one JSON document under TodosKey.
type Adapter struct {
	kv     domain.KeyValue
	logger *log.Logger
}

func NewAdapter(kv domain.KeyValue, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{kv: kv, logger: logger}
}

// Load never fails: unreadable or malformed content is reported on the
// logger and treated as nothing saved.
func (a *Adapter) Load(ctx context.Context) (domain.TaskList, bool) {
	raw, ok, err := a.kv.Get(ctx, TodosKey)
	if err != nil {
		a.logger.Printf("store: failed to read %q, starting empty: %v", TodosKey, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var list domain.TaskList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		a.logger.Printf("store: malformed value under %q, starting empty: %v", TodosKey, err)
		return nil, false
	}
	if list == nil {
		// stored "null"
		list = domain.TaskList{}
	}
	return list, true
}

func (a *Adapter) Save(ctx context.Context, list domain.TaskList) error {
	if list == nil {
		list = domain.TaskList{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := a.kv.Set(ctx, TodosKey, string(data)); err != nil {
		return fmt.Errorf("failed to write %q: %w", TodosKey, err)
	}
	return nil
}

func (a *Adapter) LoadNextID(ctx context.Context) (int, bool) {
	raw, ok, err := a.kv.Get(ctx, NextIDKey)
	if err != nil {
		a.logger.Printf("store: failed to read %q: %v", NextIDKey, err)
		return 0, false
	}
	if !ok {
		return 0, false
	}
	next, err := strconv.Atoi(raw)
	if err != nil || next < 0 {
		a.logger.Printf("store: ignoring malformed %q value %q", NextIDKey, raw)
		return 0, false
	}
	return next, true
}

func (a *Adapter) SaveNextID(ctx context.Context, next int) error {
	if err := a.kv.Set(ctx, NextIDKey, strconv.Itoa(next)); err != nil {
		return fmt.Errorf("failed to write %q: %w", NextIDKey, err)
	}
	return nil
}
