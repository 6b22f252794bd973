package http

import (
	"encoding/json"
	"net/http"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/service"

	"github.com/gorilla/mux"
)

type ConditionLogHandler struct {
	logSvc service.ConditionLogService
}

func NewConditionLogHandler(logSvc service.ConditionLogService) *ConditionLogHandler {
	return &ConditionLogHandler{logSvc: logSvc}
}

type submitLogRequest struct {
	RentalID          int32                     `json:"rental_id"`
	Type              domain.ConditionLogType   `json:"type"`
	Condition         domain.EquipmentCondition `json:"condition"`
	Notes             string                    `json:"notes"`
	Photos            []domain.ConditionPhoto   `json:"photos"`
	Acknowledged      bool                      `json:"acknowledged"`
	DamageReported    bool                      `json:"damage_reported"`
	DamageDescription string                    `json:"damage_description"`
}

func (h *ConditionLogHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req submitLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "malformed JSON"})
		return
	}

	log := &domain.ConditionLog{
		RentalID:          req.RentalID,
		Type:              req.Type,
		Condition:         req.Condition,
		Notes:             req.Notes,
		Photos:            req.Photos,
		VerifiedBy:        actor,
		Acknowledged:      req.Acknowledged,
		DamageReported:    req.DamageReported,
		DamageDescription: req.DamageDescription,
	}
	id, err := h.logSvc.Submit(r.Context(), log)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"log_id": id})
}

func (h *ConditionLogHandler) ListForRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}

	logs, err := h.logSvc.ListForRental(r.Context(), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *ConditionLogHandler) HasType(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	logType := domain.ConditionLogType(r.URL.Query().Get("type"))
	if logType != domain.ConditionLogTypePickup && logType != domain.ConditionLogTypeReturn {
		writeError(w, &domain.ValidationError{Field: "type", Message: `must be "PICKUP" or "RETURN"`})
		return
	}

	has, err := h.logSvc.HasType(r.Context(), rentalID, logType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"has_type": has})
}
