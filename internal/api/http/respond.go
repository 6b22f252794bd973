package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
)

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Field  string `json:"field,omitempty"`
	Date   string `json:"date,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps engine errors onto HTTP statuses. Availability and date
// conflicts carry their reason structure through: they are expected, frequent
// outcomes and the client must be able to explain why, not just that, an
// action failed.
func writeError(w http.ResponseWriter, err error) {
	var availErr *domain.AvailabilityError
	if errors.As(err, &availErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  availErr.Error(),
			Reason: string(availErr.Reason),
			Date:   domain.FormatDate(availErr.Date),
		})
		return
	}

	var conflictErr *domain.DateConflictError
	if errors.As(err, &conflictErr) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:  conflictErr.Error(),
			Reason: "date_conflict",
		})
		return
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  validationErr.Error(),
			Reason: "validation",
			Field:  validationErr.Field,
		})
		return
	}

	var transitionErr *domain.IllegalTransitionError
	if errors.As(err, &transitionErr) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:  transitionErr.Error(),
			Reason: "illegal_transition",
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrNoPendingExtension),
		errors.Is(err, domain.ErrFlagResolved),
		errors.Is(err, domain.ErrReturnLogRequired):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case err.Error() == "unauthorized":
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "unauthorized"})
	default:
		logger.Error("Internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// actorID reads the acting user's identity injected by the gateway. Session
// handling lives upstream; the engine only needs the identity for audit
// fields.
func actorID(r *http.Request) (int32, error) {
	raw := r.Header.Get("X-User-ID")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.New("unauthorized")
	}
	return int32(id), nil
}

func pathID(r *http.Request, vars map[string]string, name string) (int32, error) {
	id, err := strconv.ParseInt(vars[name], 10, 32)
	if err != nil {
		return 0, &domain.ValidationError{Field: name, Message: "must be an integer id"}
	}
	return int32(id), nil
}

func queryPage(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
