package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mergington/activities/metrics"
	"github.com/mergington/activities/registry"
	"github.com/prometheus/client_golang/prometheus"
)

// UnregisterHandler handles requests to remove a student from an activity.
type UnregisterHandler struct {
	logger          *slog.Logger
	unregisterer    Unregisterer
	unregistrations metrics.CounterVec
}

// NewUnregisterHandler creates a new UnregisterHandler. The counter may
// be nil, in which case no metrics are recorded.
func NewUnregisterHandler(logger *slog.Logger, unregisterer Unregisterer, unregistrations metrics.CounterVec) *UnregisterHandler {
	return &UnregisterHandler{
		logger:          logger,
		unregisterer:    unregisterer,
		unregistrations: unregistrations,
	}
}

// ServeHTTP implements http.Handler.
func (h *UnregisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Detail: "email query parameter is required",
		})
		return
	}

	err := h.unregisterer.Unregister(name, email)
	switch {
	case errors.Is(err, registry.ErrActivityNotFound):
		h.record(name, "not_found")
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Detail: "Activity not found",
		})
	case errors.Is(err, registry.ErrNotSignedUp):
		h.record(name, "conflict")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Detail: "Student is not signed up for this activity",
		})
	case err != nil:
		h.logger.Error("unregister failed", "activity", name, "email", email, "error", err)
		h.record(name, "error")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Detail: err.Error(),
		})
	default:
		h.logger.Info("student unregistered", "activity", name, "email", email)
		h.record(name, "ok")
		writeJSON(w, http.StatusOK, MessageResponse{
			Message: fmt.Sprintf("Unregistered %s from %s", email, name),
		})
	}
}

func (h *UnregisterHandler) record(activity, result string) {
	if h.unregistrations == nil {
		return
	}
	h.unregistrations.With(prometheus.Labels{"activity": activity, "result": result}).Inc()
}
