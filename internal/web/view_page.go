package web

import "io"

type PageView struct {
	Draft     string
	CSRFToken string
	Unsaved   bool // last save failed; shown as a warning
	Lists     []ListView
}

func (p *Presentation) RenderIndex(w io.Writer, view PageView) error {
	return p.tmpl.ExecuteTemplate(w, "layout", view)
}

// RenderLists renders only the two partitions, for HTMX swaps.
func (p *Presentation) RenderLists(w io.Writer, view PageView) error {
	return p.tmpl.ExecuteTemplate(w, "lists", view)
}
