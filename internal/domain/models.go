package domain

type Task struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TaskList is ordered by insertion; that order is both display and
// persistence order.
type TaskList []Task

// Helper methods

func (l TaskList) Index(id int) int {
	for i, t := range l {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (l TaskList) Clone() TaskList {
	if l == nil {
		return nil
	}
	out := make(TaskList, len(l))
	copy(out, l)
	return out
}

// MaxID returns the largest id in the list, or -1 when it is empty.
func (l TaskList) MaxID() int {
	maxID := -1
	for _, t := range l {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID
}
