package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

const maxUploadBytes = 64 << 20 // 64 MiB per request

// FilesHandler handles library browsing, uploads and folder lifecycle.
type FilesHandler struct {
	service pagewright.Service
}

func NewFilesHandler(service pagewright.Service) *FilesHandler {
	return &FilesHandler{service: service}
}

// Routes returns the router for the files endpoints
func (h *FilesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/browse", h.Browse)
	r.Post("/upload", h.Upload)
	r.Post("/create-folder", h.CreateFolder)
	r.Delete("/delete-folder", h.DeleteFolder)
	return r
}

// BrowseRequest represents a request for one page of the folder listing
type BrowseRequest struct {
	Prefix            string `json:"prefix"`
	ContinuationToken string `json:"continuationToken,omitempty"`
}

// Browse lists one page of virtual folders and files under a prefix
func (h *FilesHandler) Browse(w http.ResponseWriter, r *http.Request) {
	var req BrowseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode browse request", "error", err)
		writeValidationError(w, r, "Invalid request body")
		return
	}

	result, err := h.service.Browse(r.Context(), pagewright.BrowseRequest{
		WebsiteID:         WebsiteIDFromContext(r.Context()),
		Prefix:            req.Prefix,
		ContinuationToken: req.ContinuationToken,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// Upload accepts a multipart batch of files for one logical folder. The
// folder path travels in the "path" form field; files in the "files" field.
func (h *FilesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		writeValidationError(w, r, "Invalid multipart request")
		return
	}

	folderPath := r.FormValue("path")
	if folderPath == "" {
		writeValidationError(w, r, "Missing 'path' form field")
		return
	}

	var files []pagewright.UploadFile
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["files"] {
			f, err := header.Open()
			if err != nil {
				slog.Error("Failed to open uploaded file", "name", header.Filename, "error", err)
				writeValidationError(w, r, "Unreadable uploaded file")
				return
			}
			defer f.Close()

			files = append(files, pagewright.UploadFile{
				Name:     header.Filename,
				MimeType: header.Header.Get("Content-Type"),
				Size:     header.Size,
				Reader:   f,
			})
		}
	}
	if len(files) == 0 {
		writeValidationError(w, r, "No files in upload")
		return
	}

	result, err := h.service.UploadFiles(r.Context(), pagewright.UploadRequest{
		WebsiteID:  WebsiteIDFromContext(r.Context()),
		FolderPath: folderPath,
		Files:      files,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// CreateFolderRequest represents a request to create a virtual folder
type CreateFolderRequest struct {
	Path       string `json:"path"`
	FolderName string `json:"folderName"`
}

// CreateFolder creates a virtual folder under a browsable path
func (h *FilesHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode create-folder request", "error", err)
		writeValidationError(w, r, "Invalid request body")
		return
	}

	err := h.service.CreateFolder(r.Context(), pagewright.CreateFolderRequest{
		WebsiteID:  WebsiteIDFromContext(r.Context()),
		FolderPath: req.Path,
		FolderName: req.FolderName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"status": "created"})
}

// DeleteFolderRequest represents a request to delete an empty virtual folder
type DeleteFolderRequest struct {
	Path string `json:"path"`
}

// DeleteFolder deletes an empty virtual folder
func (h *FilesHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	var req DeleteFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode delete-folder request", "error", err)
		writeValidationError(w, r, "Invalid request body")
		return
	}

	err := h.service.DeleteFolder(r.Context(), pagewright.DeleteFolderRequest{
		WebsiteID:  WebsiteIDFromContext(r.Context()),
		FolderPath: req.Path,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"status": "deleted"})
}
