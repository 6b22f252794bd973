package http

import (
	"net/http"

	"gearshare-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter wires the engine's operations onto a gorilla/mux router. This
// layer is deliberately thin: every decision lives in the service layer.
func NewRouter(
	rentalSvc service.RentalService,
	logSvc service.ConditionLogService,
	flagSvc service.FlagService,
	noteSvc service.NotificationService,
) *mux.Router {
	rentals := NewRentalHandler(rentalSvc)
	logs := NewConditionLogHandler(logSvc)
	flags := NewFlagHandler(flagSvc)
	notes := NewNotificationHandler(noteSvc)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/rentals", rentals.Create).Methods(http.MethodPost)
	api.HandleFunc("/rentals", rentals.ListRentals).Methods(http.MethodGet)
	api.HandleFunc("/lendings", rentals.ListLendings).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}", rentals.Get).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}/approve", rentals.Approve).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/decline", rentals.Decline).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/pickup", rentals.BeginPickup).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/return", rentals.CompleteReturn).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/extension", rentals.RequestExtension).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/extension/resolve", rentals.ResolveExtension).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/transitions", rentals.ListTransitions).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}/next-available", rentals.NextAvailable).Methods(http.MethodGet)

	api.HandleFunc("/condition-logs", logs.Submit).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/condition-logs", logs.ListForRental).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}/condition-logs/has-type", logs.HasType).Methods(http.MethodGet)

	api.HandleFunc("/flags", flags.Raise).Methods(http.MethodPost)
	api.HandleFunc("/flags/{id}/acknowledge", flags.Acknowledge).Methods(http.MethodPost)
	api.HandleFunc("/flags/{id}/resolve", flags.Resolve).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/flags", flags.ListForRental).Methods(http.MethodGet)

	api.HandleFunc("/notifications", notes.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", notes.MarkAsRead).Methods(http.MethodPost)

	return r
}
