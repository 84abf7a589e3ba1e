package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"iter"
	"log"
	"net/http"
	"slices"
	"strconv"

	"git.sr.ht/~jakintosh/todos/internal/domain"
	"git.sr.ht/~jakintosh/todos/internal/todo"
	"github.com/google/uuid"
)

// Todos is the list controller the server drives. *todo.Manager
// implements it.
type Todos interface {
	UpdateDraftTitle(text string) error
	Draft() domain.Task
	Submit(ctx context.Context) (domain.Task, todo.Outcome, error)
	Add(ctx context.Context, title string) (domain.Task, todo.Outcome, error)
	ToggleComplete(ctx context.Context, id int) (todo.Outcome, error)
	Delete(ctx context.Context, id int) (todo.Outcome, error)
	PendingView() iter.Seq[domain.Task]
	CompletedView() iter.Seq[domain.Task]
	Dirty() bool
}

type ServerOptions struct {
	// CSRFToken guards every mutating request. A random one is
	// generated when empty.
	CSRFToken string
	Logger    *log.Logger
}

type Server struct {
	todos        Todos
	router       *http.ServeMux
	handler      http.Handler
	presentation *Presentation
	csrfToken    string
	logger       *log.Logger
}

func NewServer(todos Todos, opts ServerOptions) (*Server, error) {
	pres, err := NewPresentation()
	if err != nil {
		return nil, err
	}
	s := &Server{
		todos:        todos,
		router:       http.NewServeMux(),
		presentation: pres,
		csrfToken:    opts.CSRFToken,
		logger:       opts.Logger,
	}
	if s.csrfToken == "" {
		s.csrfToken = uuid.NewString()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.routes()
	s.handler = s.logRequests(s.requireCSRF(s.router))
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) CSRFToken() string {
	return s.csrfToken
}

func (s *Server) routes() {
	// Page Routes
	s.router.HandleFunc("GET /{$}", s.handleIndex)

	// API/HTMX Routes
	s.router.HandleFunc("PATCH /draft", s.handleUpdateDraft)
	s.router.HandleFunc("POST /todos", s.handleCreateTodo)
	s.router.HandleFunc("POST /todos/{id}/toggle", s.handleToggleTodo)
	s.router.HandleFunc("DELETE /todos/{id}", s.handleDeleteTodo)
	s.router.HandleFunc("POST /todos/{id}/delete", s.handleDeleteTodo)
	s.router.HandleFunc("GET /api/todos", s.handleListTodos)
}

func (s *Server) pageView() PageView {
	return PageView{
		Draft:     s.todos.Draft().Title,
		CSRFToken: s.csrfToken,
		Unsaved:   s.todos.Dirty(),
		Lists: []ListView{
			NewListView("pending", "To do", s.todos.PendingView(), s.csrfToken),
			NewListView("completed", "Done", s.todos.CompletedView(), s.csrfToken),
		},
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.presentation.RenderIndex(w, s.pageView()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.todos.UpdateDraftTitle(r.FormValue("title")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// an empty field submits whatever draft was saved through PATCH /draft
	var (
		outcome todo.Outcome
		err     error
	)
	if title := r.FormValue("title"); title != "" {
		_, outcome, err = s.todos.Add(r.Context(), title)
	} else {
		_, outcome, err = s.todos.Submit(r.Context())
	}
	s.finishMutation(w, r, outcome, err)
}

func (s *Server) handleToggleTodo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid todo id", http.StatusBadRequest)
		return
	}
	outcome, err := s.todos.ToggleComplete(r.Context(), id)
	s.finishMutation(w, r, outcome, err)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid todo id", http.StatusBadRequest)
		return
	}
	outcome, err := s.todos.Delete(r.Context(), id)
	s.finishMutation(w, r, outcome, err)
}

// finishMutation maps an operation result onto the response: the lists
// fragment for HTMX, a redirect to the page otherwise.
func (s *Server) finishMutation(w http.ResponseWriter, r *http.Request, outcome todo.Outcome, err error) {
	ctx := parseRequestContext(r)

	switch {
	case errors.Is(err, todo.ErrUnsaved):
		http.Error(w, "changes not saved", http.StatusInternalServerError)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	case outcome == todo.NotFound:
		http.Error(w, "todo not found", http.StatusNotFound)
		return
	case outcome == todo.InvalidInput && ctx.IsHTMX:
		http.Error(w, "title is required", http.StatusUnprocessableEntity)
		return
	}

	if !ctx.IsHTMX {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := s.presentation.RenderLists(w, s.pageView()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type listResponse struct {
	Pending   domain.TaskList `json:"pending"`
	Completed domain.TaskList `json:"completed"`
	Unsaved   bool            `json:"unsaved"`
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	resp := listResponse{
		Pending:   slices.AppendSeq(domain.TaskList{}, s.todos.PendingView()),
		Completed: slices.AppendSeq(domain.TaskList{}, s.todos.CompletedView()),
		Unsaved:   s.todos.Dirty(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Printf("web: failed to encode todos: %v", err)
	}
}

// requireCSRF rejects state-changing requests that do not carry the
// server's token.
func (s *Server) requireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		token := parseRequestContext(r).CSRFToken
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.csrfToken)) != 1 {
			http.Error(w, "invalid csrf token", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
