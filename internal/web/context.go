package web

import "net/http"

type RequestContext struct {
	IsHTMX    bool   // HX-Request header present
	CSRFToken string // X-CSRF-Token header, or the csrf form field
}

func parseRequestContext(r *http.Request) RequestContext {
	ctx := RequestContext{
		IsHTMX:    r.Header.Get("HX-Request") == "true",
		CSRFToken: r.Header.Get("X-CSRF-Token"),
	}
	if ctx.CSRFToken == "" {
		ctx.CSRFToken = r.FormValue("csrf")
	}
	return ctx
}
