// Package web serves the task page to a browser.
//
// Every interactive control is a plain form posting to a stable route keyed
// by task id, so handlers are registered once and nothing is rebound when
// the list is redrawn. The list and statistics are shared by all viewers;
// notices and form drafts travel back to the acting browser only, in a
// flash cookie set on the redirect.
package web

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"todoview/internal/controller"
	"todoview/internal/service"
	"todoview/internal/view"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Server renders the shared page and routes form posts to the controller.
type Server struct {
	page *view.Page
	ctrl *controller.Controller
	log  *slog.Logger
	mux  *http.ServeMux
}

// NewServer creates a server around a page and the controller that fills it.
func NewServer(page *view.Page, ctrl *controller.Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		page: page,
		ctrl: ctrl,
		log:  logger,
		mux:  http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /todos", s.handleCreate)
	s.mux.HandleFunc("POST /todos/{id}/toggle", s.handleToggle)
	s.mux.HandleFunc("GET /todos/{id}/delete", s.handleConfirmDelete)
	s.mux.HandleFunc("POST /todos/{id}/delete", s.handleDelete)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WithRequestID(Logging(s.log)(s.mux)).ServeHTTP(w, r)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	f := readFlash(w, r)
	if !f.Fresh {
		_ = s.ctrl.Refresh(r.Context())
	}

	data := s.page.Snapshot()
	data.Form = f.Form
	data.Notices = f.Notices

	var buf bytes.Buffer
	if err := view.WriteHTML(&buf, data); err != nil {
		s.log.Error("rendering page failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := &controller.Input{
		Title:       r.PostForm.Get("title"),
		Description: r.PostForm.Get("description"),
	}
	notices := controller.NewChanNotifier(4)
	err := s.ctrl.WithNotifier(notices).Submit(r.Context(), form)
	s.afterAction(w, r, notices, form, err)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id := service.ID(r.PathValue("id"))
	notices := controller.NewChanNotifier(4)
	err := s.ctrl.WithNotifier(notices).Toggle(r.Context(), id)
	s.afterAction(w, r, notices, nil, err)
}

func (s *Server) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	data := view.ConfirmData{
		Prompt: controller.MsgConfirmDelete,
		Action: view.ActionPath(service.ID(id), "delete"),
	}
	if item, ok := s.page.Item(id); ok {
		data.Title = item.Title
	}

	var buf bytes.Buffer
	if err := view.WriteConfirm(&buf, data); err != nil {
		s.log.Error("rendering confirmation failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id := service.ID(r.PathValue("id"))
	answer := controller.Answer(r.PostForm.Get("confirm") == "yes")
	notices := controller.NewChanNotifier(4)
	err := s.ctrl.WithNotifier(notices).Delete(r.Context(), id, answer)
	s.afterAction(w, r, notices, nil, err)
}

// afterAction hands this request's notices and form draft to the acting
// browser and redirects back to the page. The controller has already
// refreshed (or deliberately not), so the next render does not fetch.
func (s *Server) afterAction(w http.ResponseWriter, r *http.Request, notices controller.ChanNotifier, form *controller.Input, err error) {
	if err != nil {
		s.log.Debug("action failed", "rid", RequestIDFromContext(r.Context()), "error", err)
	}
	f := flash{Notices: notices.Drain(), Fresh: true}
	if form != nil {
		f.Form = view.FormState{Title: form.Title, Description: form.Description}
	}
	writeFlash(w, f)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
