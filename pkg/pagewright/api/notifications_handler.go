package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

// NotificationsHandler handles the in-app notification feed.
type NotificationsHandler struct {
	service pagewright.Service
}

func NewNotificationsHandler(service pagewright.Service) *NotificationsHandler {
	return &NotificationsHandler{service: service}
}

// Routes returns the router for the notifications endpoints
func (h *NotificationsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/{notification_id}/read", h.MarkRead)
	return r
}

// List returns the session user's notifications, newest first
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, r, pagewright.ErrNotAuthenticated)
		return
	}

	items, err := h.service.ListNotifications(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, items)
}

// MarkRead marks one notification as read
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "notification_id"))
	if err != nil {
		writeValidationError(w, r, "Invalid notification ID")
		return
	}

	if err := h.service.MarkNotificationRead(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]string{"status": "read"})
}
