package web

import (
	"strconv"

	"git.sr.ht/~jakintosh/todos/internal/domain"
)

// TaskView is the view model for Task
type TaskView struct {
	ID           int
	Title        string
	Completed    bool
	ToggleURL    string
	CSRFToken    string
	DeleteButton DeleteButtonView
}

func NewTaskView(t domain.Task, csrf string) TaskView {
	return TaskView{
		ID:           t.ID,
		Title:        t.Title,
		Completed:    t.Completed,
		ToggleURL:    "/todos/" + strconv.Itoa(t.ID) + "/toggle",
		CSRFToken:    csrf,
		DeleteButton: newDeleteButton(t.ID, csrf),
	}
}
