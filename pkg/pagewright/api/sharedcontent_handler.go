package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

// SharedContentHandler handles shared block CRUD endpoints.
type SharedContentHandler struct {
	service pagewright.Service
}

func NewSharedContentHandler(service pagewright.Service) *SharedContentHandler {
	return &SharedContentHandler{service: service}
}

// Routes returns the router for the shared content endpoints
func (h *SharedContentHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{shared_id}", h.Get)
	r.Put("/{shared_id}", h.Update)
	r.Delete("/{shared_id}", h.Delete)
	return r
}

func sharedIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "shared_id"), 10, 64)
}

// SharedContentRequest represents a create or update of a shared block
type SharedContentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	HTMLContent string `json:"html_content"`
	CSSContent  string `json:"css_content,omitempty"`
	JSContent   string `json:"js_content,omitempty"`
}

// Create creates a shared block for the selected website
func (h *SharedContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SharedContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode shared content request", "error", err)
		writeValidationError(w, r, "Invalid request body")
		return
	}

	if req.Name == "" {
		writeValidationError(w, r, "Name is required")
		return
	}

	sc, err := h.service.CreateSharedContent(r.Context(), pagewright.CreateSharedContentRequest{
		WebsiteID:   WebsiteIDFromContext(r.Context()),
		Name:        req.Name,
		Description: req.Description,
		HTMLContent: req.HTMLContent,
		CSSContent:  req.CSSContent,
		JSContent:   req.JSContent,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, sc)
}

// List lists the selected website's shared blocks
func (h *SharedContentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListSharedContent(r.Context(), WebsiteIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, items)
}

// Get returns one shared block
func (h *SharedContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := sharedIDParam(r)
	if err != nil {
		writeValidationError(w, r, "Invalid shared content ID")
		return
	}

	sc, err := h.service.GetSharedContent(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, sc)
}

// Update updates a shared block and mirrors it into its content template
func (h *SharedContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := sharedIDParam(r)
	if err != nil {
		writeValidationError(w, r, "Invalid shared content ID")
		return
	}

	var req SharedContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode shared content request", "error", err)
		writeValidationError(w, r, "Invalid request body")
		return
	}

	sc, err := h.service.UpdateSharedContent(r.Context(), pagewright.UpdateSharedContentRequest{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		HTMLContent: req.HTMLContent,
		CSSContent:  req.CSSContent,
		JSContent:   req.JSContent,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, sc)
}

// Delete removes a shared block
func (h *SharedContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := sharedIDParam(r)
	if err != nil {
		writeValidationError(w, r, "Invalid shared content ID")
		return
	}

	if err := h.service.DeleteSharedContent(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]string{"status": "deleted"})
}
