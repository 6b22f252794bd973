package http

import (
	"net/http"

	"gearshare-backend/internal/service"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := queryPage(r)

	notes, total, err := h.noteSvc.GetNotifications(r.Context(), actor, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notes,
		"total":         total,
	})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	noteID, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.noteSvc.MarkAsRead(r.Context(), actor, noteID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
