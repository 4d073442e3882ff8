// Package handler exposes the callback endpoints over HTTP.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hmcts/sscs-dwp/internal/callback"
	"github.com/hmcts/sscs-dwp/internal/ccd"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
)

// Handler serves the case-event callback endpoints.
type Handler struct {
	dispatcher *callback.Dispatcher
	logger     *slog.Logger
}

// New builds the callback HTTP handler.
func New(dispatcher *callback.Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{dispatcher: dispatcher, logger: logger}
}

// Register mounts the callback routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/callback/submitted", h.handle(callback.Submitted))
	r.Post("/callback/about-to-submit", h.handle(callback.AboutToSubmit))
}

// response is the envelope the case-management system expects back: the
// possibly mutated case data plus any errors to surface to the caller.
type response struct {
	Data   ccd.CaseData `json:"data"`
	Errors []string     `json:"errors"`
}

func (h *Handler) handle(callbackType callback.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cb callback.Callback
		if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
			h.logger.Error("malformed callback payload", "error", err)
			writeJSON(w, http.StatusBadRequest, response{Errors: []string{"malformed callback payload"}})
			return
		}

		err := h.dispatcher.Dispatch(r.Context(), callbackType, &cb)
		if err != nil {
			h.logger.Error("callback dispatch failed",
				"case_id", cb.CaseDetails.CaseID(),
				"event", cb.Event,
				"error", err,
			)
			writeJSON(w, statusFor(err), response{
				Data:   cb.CaseDetails.CaseData,
				Errors: []string{err.Error()},
			})
			return
		}

		writeJSON(w, http.StatusOK, response{Data: cb.CaseDetails.CaseData, Errors: []string{}})
	}
}

func statusFor(err error) int {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeValidation, dErrors.CodePrecondition:
		return http.StatusUnprocessableEntity
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
