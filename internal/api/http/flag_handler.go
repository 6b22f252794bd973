package http

import (
	"encoding/json"
	"net/http"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/service"

	"github.com/gorilla/mux"
)

type FlagHandler struct {
	flagSvc service.FlagService
}

func NewFlagHandler(flagSvc service.FlagService) *FlagHandler {
	return &FlagHandler{flagSvc: flagSvc}
}

type raiseFlagRequest struct {
	RentalID          int32               `json:"rental_id"`
	Category          domain.FlagCategory `json:"category"`
	Severity          domain.FlagSeverity `json:"severity"`
	SelectedIssue     string              `json:"selected_issue"`
	AdditionalContext string              `json:"additional_context"`
}

func (h *FlagHandler) Raise(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req raiseFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "malformed JSON"})
		return
	}

	flag := &domain.TaskFlag{
		RentalID:          req.RentalID,
		Category:          req.Category,
		Severity:          req.Severity,
		SelectedIssue:     req.SelectedIssue,
		AdditionalContext: req.AdditionalContext,
		CreatedBy:         actor,
	}
	id, err := h.flagSvc.Raise(r.Context(), flag)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"flag_id": id})
}

func (h *FlagHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	flagID := mux.Vars(r)["id"]

	if err := h.flagSvc.Acknowledge(r.Context(), flagID, actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "acknowledged"})
}

type resolveFlagRequest struct {
	Note string `json:"note"`
}

func (h *FlagHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	flagID := mux.Vars(r)["id"]
	var req resolveFlagRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.flagSvc.Resolve(r.Context(), flagID, actor, req.Note); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "resolved"})
}

func (h *FlagHandler) ListForRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var flags []domain.TaskFlag
	if r.URL.Query().Get("open") == "true" {
		flags, err = h.flagSvc.ListOpen(r.Context(), rentalID)
	} else {
		flags, err = h.flagSvc.ListAll(r.Context(), rentalID)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	critical, err := h.flagSvc.HasCriticalOpenFlag(r.Context(), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"flags":                  flags,
		"has_critical_open_flag": critical,
	})
}
