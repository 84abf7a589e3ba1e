// Package todo owns the authoritative task list and the draft entry, and
// persists the list through a domain.Store after every mutation.
package todo

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"sync"

	"git.sr.ht/~jakintosh/todos/internal/domain"
)

var (
	ErrNotInitialized     = errors.New("todo: manager not initialized")
	ErrAlreadyInitialized = errors.New("todo: manager already initialized")

	// ErrUnsaved wraps store failures. The in-memory change it refers to
	// has been applied.
	ErrUnsaved = errors.New("todo: changes not saved")
)

// Outcome tells apart the ways an operation can complete without error.
type Outcome int

const (
	OK Outcome = iota
	NotFound
	InvalidInput
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case NotFound:
		return "not found"
	case InvalidInput:
		return "invalid input"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

type Option func(*Manager)

func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithIDPolicy(p IDPolicy) Option {
	return func(m *Manager) {
		m.policy = p
	}
}

type Manager struct {
	store  domain.Store
	logger *log.Logger
	policy IDPolicy

	mu          sync.Mutex
	items       domain.TaskList
	draft       domain.Task
	nextID      int
	initialized bool
	dirty       bool
}

func New(store domain.Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: log.Default(),
		policy: PositionalIDs,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize loads any previously saved list. It must be called once,
// before any other operation.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return ErrAlreadyInitialized
	}

	m.items = domain.TaskList{}
	m.draft = domain.Task{}
	if list, ok := m.store.Load(ctx); ok {
		m.items = list
	}

	m.nextID = m.items.MaxID() + 1
	if c, ok := m.store.(domain.Counter); ok && m.policy == MonotonicIDs {
		if next, ok := c.LoadNextID(ctx); ok && next > m.nextID {
			m.nextID = next
		}
	}

	m.initialized = true
	return nil
}

func (m *Manager) UpdateDraftTitle(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	m.draft.Title = text
	return nil
}

func (m *Manager) Draft() domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// Submit turns the draft into a task. An empty draft title yields
// InvalidInput and nothing is saved.
func (m *Manager) Submit(ctx context.Context) (domain.Task, Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.Task{}, OK, ErrNotInitialized
	}
	return m.submitLocked(ctx)
}

// Add sets the draft title and submits it in one step.
func (m *Manager) Add(ctx context.Context, title string) (domain.Task, Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.Task{}, OK, ErrNotInitialized
	}
	m.draft.Title = title
	return m.submitLocked(ctx)
}

func (m *Manager) submitLocked(ctx context.Context) (domain.Task, Outcome, error) {
	if m.draft.Title == "" {
		return domain.Task{}, InvalidInput, nil
	}

	task := domain.Task{
		ID:    m.assignIDLocked(),
		Title: m.draft.Title,
	}
	m.items = append(m.items, task)
	m.draft = domain.Task{}

	return task, OK, m.persistLocked(ctx)
}

// ToggleComplete flips the completed flag of the task with the given id.
// The list is saved even when no task matches.
func (m *Manager) ToggleComplete(ctx context.Context, id int) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return OK, ErrNotInitialized
	}

	outcome := NotFound
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Completed = !m.items[i].Completed
			outcome = OK
		}
	}
	return outcome, m.persistLocked(ctx)
}

// Delete removes the task with the given id, keeping the order of the
// rest. The list is saved even when no task matches.
func (m *Manager) Delete(ctx context.Context, id int) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return OK, ErrNotInitialized
	}

	outcome := NotFound
	kept := make(domain.TaskList, 0, len(m.items))
	for _, t := range m.items {
		if t.ID == id {
			outcome = OK
			continue
		}
		kept = append(kept, t)
	}
	m.items = kept
	return outcome, m.persistLocked(ctx)
}

// Items returns a copy of the current list.
func (m *Manager) Items() domain.TaskList {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items.Clone()
}

func (m *Manager) Get(id int) (domain.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.items.Index(id); i >= 0 {
		return m.items[i], true
	}
	return domain.Task{}, false
}

// Dirty reports whether the last save failed.
func (m *Manager) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// PendingView yields the tasks not yet completed, in list order.
func (m *Manager) PendingView() iter.Seq[domain.Task] {
	return m.view(false)
}

// CompletedView yields the completed tasks, in list order.
func (m *Manager) CompletedView() iter.Seq[domain.Task] {
	return m.view(true)
}

// view reads the list each time ranging starts, so a sequence can be
// reused and always reflects the state at that moment.
func (m *Manager) view(completed bool) iter.Seq[domain.Task] {
	return func(yield func(domain.Task) bool) {
		for _, t := range m.Items() {
			if t.Completed != completed {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

func (m *Manager) persistLocked(ctx context.Context) error {
	if err := m.store.Save(ctx, m.items.Clone()); err != nil {
		m.dirty = true
		m.logger.Printf("todo: save failed, %d tasks held in memory only: %v", len(m.items), err)
		return fmt.Errorf("%w: %w", ErrUnsaved, err)
	}
	m.dirty = false

	// The list itself is saved at this point. A lost counter only costs
	// the counter's lead over the largest stored id after a restart.
	if m.policy == MonotonicIDs {
		if c, ok := m.store.(domain.Counter); ok {
			if err := c.SaveNextID(ctx, m.nextID); err != nil {
				m.logger.Printf("todo: failed to save next id %d: %v", m.nextID, err)
			}
		}
	}
	return nil
}
