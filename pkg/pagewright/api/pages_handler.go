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

// PagesHandler handles page CRUD and composition endpoints.
type PagesHandler struct {
	service pagewright.Service
}

func NewPagesHandler(service pagewright.Service) *PagesHandler {
	return &PagesHandler{service: service}
}

// Routes returns the router for the pages endpoints
func (h *PagesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreatePage)
	r.Get("/", h.ListPages)
	r.Get("/{page_id}", h.GetPage)
	r.Put("/{page_id}", h.UpdatePage)
	r.Post("/{page_id}/publish", h.PublishPage)
	r.Get("/{page_id}/preview", h.PreviewPage)
	return r
}

func pageIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "page_id"), 10, 64)
}

// CreatePageRequest represents a request to create a page
type CreatePageRequest struct {
	Title          string `json:"title"`
	Path           string `json:"path"`
	PageTemplateID int64  `json:"page_template_id"`
}

// CreatePage creates a page for the selected website
func (h *PagesHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req CreatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode create-page request", "error", err)
		writeValidationError(w, r, "Invalid request body")
		return
	}

	if req.Title == "" {
		writeValidationError(w, r, "Title is required")
		return
	}
	if req.PageTemplateID == 0 {
		writeValidationError(w, r, "Page template is required")
		return
	}

	page, err := h.service.CreatePage(r.Context(), pagewright.CreatePageRequest{
		WebsiteID:      WebsiteIDFromContext(r.Context()),
		Title:          req.Title,
		Path:           req.Path,
		PageTemplateID: req.PageTemplateID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, page)
}

// ListPages lists the selected website's pages
func (h *PagesHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.service.ListPages(r.Context(), WebsiteIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, pages)
}

// GetPage returns one page
func (h *PagesHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	id, err := pageIDParam(r)
	if err != nil {
		writeValidationError(w, r, "Invalid page ID")
		return
	}

	page, err := h.service.GetPage(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, page)
}

// UpdatePageRequest represents a request to update a page. A non-nil Blocks
// slice replaces the page's content blocks wholesale.
type UpdatePageRequest struct {
	Title          string                       `json:"title,omitempty"`
	Path           string                       `json:"path,omitempty"`
	PageTemplateID int64                        `json:"page_template_id,omitempty"`
	Blocks         []pagewright.PageContentBlock `json:"blocks,omitempty"`
}

// UpdatePage updates a page and optionally replaces its blocks
func (h *PagesHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, err := pageIDParam(r)
	if err != nil {
		writeValidationError(w, r, "Invalid page ID")
		return
	}

	var req UpdatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode update-page request", "error", err)
		writeValidationError(w, r, "Invalid request body")
		return
	}

	page, err := h.service.UpdatePage(r.Context(), pagewright.UpdatePageRequest{
		PageID:         id,
		Title:          req.Title,
		Path:           req.Path,
		PageTemplateID: req.PageTemplateID,
		Blocks:         req.Blocks,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, page)
}

// PublishPageRequest carries the editor's zone content at publish time.
// Zone ids map to ordered block references.
type PublishPageRequest struct {
	ZoneContent map[string][]pagewright.BlockRef `json:"zoneContent"`
}

// PublishPageResponse returns the fully composed document
type PublishPageResponse struct {
	PageID int64  `json:"page_id"`
	HTML   string `json:"html"`
}

// PublishPage composes the page's template with the submitted zone content
func (h *PagesHandler) PublishPage(w http.ResponseWriter, r *http.Request) {
	id, err := pageIDParam(r)
	if err != nil {
		writeValidationError(w, r, "Invalid page ID")
		return
	}

	var req PublishPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode publish request", "error", err)
		writeValidationError(w, r, "Invalid request body")
		return
	}
	if req.ZoneContent == nil {
		writeValidationError(w, r, "zoneContent is required")
		return
	}

	html, err := h.service.PublishPage(r.Context(), pagewright.PublishRequest{
		PageID:      id,
		UserID:      UserIDFromContext(r.Context()),
		ZoneContent: req.ZoneContent,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("Page published", "page_id", id)
	render.JSON(w, r, PublishPageResponse{PageID: id, HTML: html})
}

// PreviewPage renders the page's saved blocks into its template and returns
// the document as text/html
func (h *PagesHandler) PreviewPage(w http.ResponseWriter, r *http.Request) {
	id, err := pageIDParam(r)
	if err != nil {
		writeValidationError(w, r, "Invalid page ID")
		return
	}

	html, err := h.service.ComposeForPreview(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}
