package pagewright

import (
	"bytes"
	"context"
	"io"
	"strings"
)

// UploadFiles uploads a batch of files into a logical folder. Each file's
// outcome is independent: an existing blob yields a "conflict" entry and the
// batch continues. Image uploads get a thumbnail artifact written next to
// the original; thumbnail failures are logged and never fail the upload.
func (s *service) UploadFiles(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if req.WebsiteID == 0 {
		return nil, ErrMissingWebsite
	}

	prefix := normalizePrefix(req.FolderPath)
	if !prefixAllowed(prefix) {
		return nil, ErrForbiddenPath
	}

	if inner, ok := strings.CutPrefix(prefix, imagesRoot); ok && inner != "" {
		seg, _, _ := strings.Cut(inner, "/")
		if s.ResolveFolder(ctx, req.WebsiteID, seg) == nil {
			return nil, ErrProviderNotAllowed
		}
	}

	result := &UploadResult{
		UploadedFiles: []string{},
		Results:       []FileResult{},
	}
	result.Summary.Total = len(req.Files)

	for _, file := range req.Files {
		key := prefix + file.Name

		exists, err := s.blobStore.Exists(ctx, key)
		if err != nil {
			return nil, &StorageError{Key: key, Op: "exists", Err: err}
		}
		if exists {
			result.Summary.Conflicts++
			result.Results = append(result.Results, FileResult{
				Name:   file.Name,
				Key:    key,
				Status: "conflict",
			})
			continue
		}

		data, err := io.ReadAll(file.Reader)
		if err != nil {
			return nil, &StorageError{Key: key, Op: "read", Err: err}
		}

		err = s.blobStore.UploadWithParams(ctx, bytes.NewReader(data), UploadParams{
			ObjectKey: key,
			MimeType:  file.MimeType,
		})
		if err != nil {
			return nil, &StorageError{Key: key, Op: "upload", Err: err}
		}

		if strings.HasPrefix(file.MimeType, "image/") {
			s.writeThumbnail(ctx, prefix, file.Name, data)
		}

		result.Summary.Success++
		result.UploadedFiles = append(result.UploadedFiles, file.Name)
		result.Results = append(result.Results, FileResult{
			Name:   file.Name,
			Key:    key,
			Status: "uploaded",
		})
	}

	s.logger.Info("upload batch finished",
		"website_id", req.WebsiteID,
		"folder", prefix,
		"success", result.Summary.Success,
		"conflicts", result.Summary.Conflicts)

	return result, nil
}

// writeThumbnail stores the tmb-0 artifact the folder browser hides.
func (s *service) writeThumbnail(ctx context.Context, prefix, name string, data []byte) {
	thumb, err := makeThumbnail(data, thumbnailMaxWidth)
	if err != nil {
		s.logger.Warn("thumbnail generation failed", "file", name, "error", err)
		return
	}

	key := prefix + "tmb-0-" + name
	err = s.blobStore.UploadWithParams(ctx, bytes.NewReader(thumb), UploadParams{
		ObjectKey: key,
		MimeType:  "image/jpeg",
	})
	if err != nil {
		s.logger.Warn("thumbnail upload failed", "key", key, "error", err)
	}
}
