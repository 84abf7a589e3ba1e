package todo

import "fmt"

// IDPolicy decides how Submit numbers new tasks.
type IDPolicy int

const (
	// PositionalIDs uses the id of the last task plus one, or 0 for an
	// empty list. Ids can repeat when the last task is deleted or when
	// stored data is out of order.
	PositionalIDs IDPolicy = iota

	// MonotonicIDs hands out ids from a counter that never goes back,
	// so an id is not reused after its task is deleted. The counter is
	// kept under its own key next to the list.
	MonotonicIDs
)

func (p IDPolicy) String() string {
	switch p {
	case PositionalIDs:
		return "positional"
	case MonotonicIDs:
		return "monotonic"
	default:
		return fmt.Sprintf("IDPolicy(%d)", int(p))
	}
}

func ParseIDPolicy(s string) (IDPolicy, error) {
	switch s {
	case "", "positional":
		return PositionalIDs, nil
	case "monotonic":
		return MonotonicIDs, nil
	default:
		return 0, fmt.Errorf("unknown id policy %q (want positional or monotonic)", s)
	}
}

func (m *Manager) assignIDLocked() int {
	if m.policy == PositionalIDs {
		if len(m.items) == 0 {
			return 0
		}
		return m.items[len(m.items)-1].ID + 1
	}

	id := m.nextID
	m.nextID++
	return id
}
