// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"
)

// ErrInjected is the default error returned by injected failures.
var ErrInjected = errors.New("injected failure")

// FakeKV is an in-memory key-value host that records writes and can be
// told to fail.
type FakeKV struct {
	mu     sync.Mutex
	values map[string]string
	sets   []string // keys in write order

	// Error injection for testing
	GetErr    error
	SetErr    error
	SetKeyErr map[string]error // key -> error, checked after SetErr
}

func NewFakeKV() *FakeKV {
	return &FakeKV{values: make(map[string]string)}
}

// Put stores a raw value without counting it as a write.
func (f *FakeKV) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

// Value returns the raw stored value.
func (f *FakeKV) Value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

// Values returns a copy of everything stored.
func (f *FakeKV) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Writes returns how many times key was written through Set.
func (f *FakeKV) Writes(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, k := range f.sets {
		if k == key {
			n++
		}
	}
	return n
}

func (f *FakeKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *FakeKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetErr != nil {
		return f.SetErr
	}
	if err := f.SetKeyErr[key]; err != nil {
		return err
	}
	f.values[key] = value
	f.sets = append(f.sets, key)
	return nil
}
