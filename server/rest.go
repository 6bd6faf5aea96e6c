package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/assocweb/ingest/pkg/domain"
	"github.com/assocweb/ingest/pkg/runner"
)

// statusHandler returns service status with a summary of scraper states
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	states := map[domain.RunState]int{}
	for _, st := range s.runner.Status() {
		states[st.State]++
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{
		"status":        "ok",
		"version":       s.cfg.Version,
		"time":          time.Now().UTC(),
		"scrapers":      states,
		"notifications": s.dispatcher != nil,
	})
}

// scrapersHandler returns the status of every registered scraper
func (s *Server) scrapersHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.runner.Status())
}

// runHandler runs a scraper, or all of them for name "all".
// With async=true the run is queued and a task id returned instead.
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name != runner.TargetAll && !s.runner.Has(name) {
		renderError(w, r, runner.ErrUnknownScraper, http.StatusNotFound)
		return
	}

	async := false
	if v := r.URL.Query().Get("async"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			renderError(w, r, errors.New("invalid async value"), http.StatusBadRequest)
			return
		}
		async = b
	}

	if async {
		id, err := s.runner.Submit(name)
		switch {
		case errors.Is(err, runner.ErrUnknownScraper):
			renderError(w, r, err, http.StatusNotFound)
		case errors.Is(err, runner.ErrQueueFull):
			renderError(w, r, err, http.StatusServiceUnavailable)
		case err != nil:
			renderError(w, r, err, http.StatusInternalServerError)
		default:
			lgr.Printf("[INFO] run of %s accepted as task %s", name, id)
			renderJSON(w, r, http.StatusAccepted, rest.JSON{"accepted": true, "task_id": id})
		}
		return
	}

	if name == runner.TargetAll {
		renderJSON(w, r, http.StatusOK, s.runner.RunAll(r.Context()))
		return
	}

	res := s.runner.RunOne(r.Context(), name)
	if !res.Success && res.Error == runner.ErrAlreadyRunning.Error() {
		renderJSON(w, r, http.StatusConflict, res)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// taskHandler returns an async task record
func (s *Server) taskHandler(w http.ResponseWriter, r *http.Request) {
	task, ok := s.runner.Task(r.PathValue("id"))
	if !ok {
		renderError(w, r, errors.New("task not found"), http.StatusNotFound)
		return
	}
	renderJSON(w, r, http.StatusOK, task)
}

// notifyHandler runs the notification dispatcher synchronously
func (s *Server) notifyHandler(w http.ResponseWriter, r *http.Request) {
	if s.dispatcher == nil {
		renderError(w, r, errors.New("notifications not configured"), http.StatusServiceUnavailable)
		return
	}
	outcome, err := s.dispatcher.Dispatch(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] notification dispatch failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, outcome)
}
