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

// SignupHandler handles requests to sign a student up for an activity.
type SignupHandler struct {
	logger   *slog.Logger
	enroller Enroller
	signups  metrics.CounterVec
}

// NewSignupHandler creates a new SignupHandler. The signups counter may
// be nil, in which case no metrics are recorded.
func NewSignupHandler(logger *slog.Logger, enroller Enroller, signups metrics.CounterVec) *SignupHandler {
	return &SignupHandler{
		logger:   logger,
		enroller: enroller,
		signups:  signups,
	}
}

// ServeHTTP implements http.Handler.
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Detail: "email query parameter is required",
		})
		return
	}

	err := h.enroller.Signup(name, email)
	switch {
	case errors.Is(err, registry.ErrActivityNotFound):
		h.record(name, "not_found")
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Detail: "Activity not found",
		})
	case errors.Is(err, registry.ErrAlreadySignedUp):
		h.record(name, "conflict")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Detail: "Student is already signed up for this activity",
		})
	case err != nil:
		h.logger.Error("signup failed", "activity", name, "email", email, "error", err)
		h.record(name, "error")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Detail: err.Error(),
		})
	default:
		h.logger.Info("student signed up", "activity", name, "email", email)
		h.record(name, "ok")
		writeJSON(w, http.StatusOK, MessageResponse{
			Message: fmt.Sprintf("Signed up %s for %s", email, name),
		})
	}
}

func (h *SignupHandler) record(activity, result string) {
	if h.signups == nil {
		return
	}
	h.signups.With(prometheus.Labels{"activity": activity, "result": result}).Inc()
}
