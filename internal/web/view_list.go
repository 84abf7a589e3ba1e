package web

import (
	"iter"

	"git.sr.ht/~jakintosh/todos/internal/domain"
)

// ListView is one partition of the todo list. Empty lists are not shown.
type ListView struct {
	ID    string
	Title string
	Tasks []TaskView
}

func NewListView(id, title string, tasks iter.Seq[domain.Task], csrf string) ListView {
	view := ListView{ID: id, Title: title}
	for t := range tasks {
		view.Tasks = append(view.Tasks, NewTaskView(t, csrf))
	}
	return view
}
