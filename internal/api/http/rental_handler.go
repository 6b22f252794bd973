package http

import (
	"encoding/json"
	"net/http"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/service"

	"github.com/gorilla/mux"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type createRentalRequest struct {
	EquipmentID int32  `json:"equipment_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "malformed JSON"})
		return
	}

	rt, err := h.rentalSvc.CreateRentalRequest(r.Context(), req.EquipmentID, actor, req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rt)
}

type approveRequest struct {
	Notes string `json:"notes"`
}

func (h *RentalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rentalID, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req approveRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	rt, err := h.rentalSvc.Approve(r.Context(), rentalID, actor, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *RentalHandler) Decline(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rentalID, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rt, err := h.rentalSvc.Decline(r.Context(), rentalID, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

type checklistRequest struct {
	Checklist []domain.ChecklistItem `json:"checklist"`
}

func (h *RentalHandler) BeginPickup(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rentalID, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req checklistRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	rt, err := h.rentalSvc.BeginPickup(r.Context(), rentalID, actor, req.Checklist)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *RentalHandler) CompleteReturn(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rentalID, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req checklistRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	rt, err := h.rentalSvc.CompleteReturn(r.Context(), rentalID, actor, req.Checklist)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

type extensionRequest struct {
	NewEndDate string `json:"new_end_date"`
}

func (h *RentalHandler) RequestExtension(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rentalID, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req extensionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "malformed JSON"})
		return
	}

	ext, err := h.rentalSvc.RequestExtension(r.Context(), rentalID, actor, req.NewEndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ext)
}

type resolveExtensionRequest struct {
	Decision string `json:"decision"` // "approved" or "declined"
}

func (h *RentalHandler) ResolveExtension(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rentalID, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req resolveExtensionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "malformed JSON"})
		return
	}
	if req.Decision != "approved" && req.Decision != "declined" {
		writeError(w, &domain.ValidationError{Field: "decision", Message: `must be "approved" or "declined"`})
		return
	}

	rt, err := h.rentalSvc.ResolveExtension(r.Context(), rentalID, actor, req.Decision == "approved")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rentalID, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rt, err := h.rentalSvc.GetRental(r.Context(), actor, rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

type rentalListResponse struct {
	Rentals []domain.RentalRequest `json:"rentals"`
	Total   int32                  `json:"total"`
}

func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := queryPage(r)
	status := r.URL.Query().Get("status")

	rentals, total, err := h.rentalSvc.ListRentals(r.Context(), actor, status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalListResponse{Rentals: rentals, Total: total})
}

func (h *RentalHandler) ListLendings(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := queryPage(r)
	status := r.URL.Query().Get("status")

	rentals, total, err := h.rentalSvc.ListLendings(r.Context(), actor, status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalListResponse{Rentals: rentals, Total: total})
}

func (h *RentalHandler) ListTransitions(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rentalID, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}

	transitions, err := h.rentalSvc.ListTransitions(r.Context(), actor, rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transitions)
}

func (h *RentalHandler) NextAvailable(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}

	next, err := h.rentalSvc.NextAvailable(r.Context(), equipmentID)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := map[string]interface{}{"next_available": nil}
	if next != nil {
		resp["next_available"] = domain.FormatDate(*next)
	}
	writeJSON(w, http.StatusOK, resp)
}
