package web

import "strconv"

// DeleteButtonView holds data for the delete button template fragment
type DeleteButtonView struct {
	URL            string // e.g., "/todos/3"
	ConfirmMessage string
	CSRFToken      string // sent as a query parameter with hx-delete
}

func newDeleteButton(id int, csrf string) DeleteButtonView {
	return DeleteButtonView{
		URL:            "/todos/" + strconv.Itoa(id),
		ConfirmMessage: "Delete this todo?",
		CSRFToken:      csrf,
	}
}
