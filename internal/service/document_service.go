package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/krispatl/mootie/internal/openai"
	errs "github.com/krispatl/mootie/internal/pkg/errors"
)

// DocumentAPI is the slice of the provider client the lifecycle
// adapter needs. Narrow so tests can fake the provider.
type DocumentAPI interface {
	UploadFile(ctx context.Context, filename string, r io.Reader) (*openai.File, error)
	GetFile(ctx context.Context, fileID string) (*openai.File, error)
	DeleteFile(ctx context.Context, fileID string) error
	AttachFile(ctx context.Context, storeID, fileID string) (*openai.VectorStoreEntry, error)
	DetachFile(ctx context.Context, storeID, fileID string) error
	ListVectorFiles(ctx context.Context, storeID string) ([]openai.VectorStoreEntry, error)
}

const (
	defaultVerifyTimeout  = 30 * time.Second
	defaultVerifyInterval = 2 * time.Second
)

// DocumentService mediates between the HTTP surface and the provider's
// file + vector store APIs. It owns the two-step upload and delete
// contracts; the provider owns all state.
type DocumentService struct {
	api     DocumentAPI
	storeID string
}

func NewDocumentService(api DocumentAPI, storeID string) *DocumentService {
	return &DocumentService{api: api, storeID: storeID}
}

type UploadResult struct {
	FileID       string `json:"file_id"`
	Filename     string `json:"filename"`
	VectorStatus string `json:"vector_status"`
}

type FileInfo struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Bytes     int64  `json:"bytes,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Upload creates the file resource, then attaches it to the vector
// store. An attach failure after a successful create is reported as a
// partial failure carrying the orphaned file id; it is never collapsed
// into plain success or failure.
func (s *DocumentService) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	if s.storeID == "" {
		return nil, errs.ErrConfig
	}
	logger := logutil.GetLogger(ctx).With(zap.String("filename", filename))

	file, err := s.api.UploadFile(ctx, filename, r)
	if err != nil {
		logger.Error("file create failed", zap.Error(err))
		return nil, fmt.Errorf("create file: %w", err)
	}
	logger = logger.With(zap.String("file_id", file.ID))

	entry, err := s.api.AttachFile(ctx, s.storeID, file.ID)
	if err != nil {
		logger.Error("attach failed, file orphaned", zap.Error(err))
		return nil, &errs.PartialFailureError{Step: "attach", ResourceID: file.ID, Cause: err}
	}
	logger.Info("document indexed", zap.String("vector_status", entry.Status))
	return &UploadResult{FileID: file.ID, Filename: file.Filename, VectorStatus: entry.Status}, nil
}

// Delete detaches the file from the vector store and then deletes the
// underlying resource. A 404 on either step means the resource is
// already gone and counts as success, so repeated deletes are no-ops.
func (s *DocumentService) Delete(ctx context.Context, fileID string) error {
	if s.storeID == "" {
		return errs.ErrConfig
	}
	logger := logutil.GetLogger(ctx).With(zap.String("file_id", fileID))

	if err := s.api.DetachFile(ctx, s.storeID, fileID); err != nil {
		if !errs.IsNotFound(err) {
			logger.Error("detach failed", zap.Error(err))
			return fmt.Errorf("detach file: %w", err)
		}
		logger.Debug("detach skipped, entry already gone")
	}
	if err := s.api.DeleteFile(ctx, fileID); err != nil {
		if !errs.IsNotFound(err) {
			logger.Error("file delete failed, index entry gone", zap.Error(err))
			return &errs.PartialFailureError{Step: "delete_file", ResourceID: fileID, Cause: err}
		}
		logger.Debug("file delete skipped, resource already gone")
	}
	logger.Info("document deleted")
	return nil
}

// List reflects current provider state. Filenames are resolved
// best-effort; an entry whose metadata lookup fails is still listed.
func (s *DocumentService) List(ctx context.Context) ([]FileInfo, error) {
	if s.storeID == "" {
		return nil, errs.ErrConfig
	}
	entries, err := s.api.ListVectorFiles(ctx, s.storeID)
	if err != nil {
		return nil, fmt.Errorf("list vector files: %w", err)
	}
	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info := FileInfo{ID: entry.ID, Filename: "Unknown file", Status: entry.Status}
		if file, err := s.api.GetFile(ctx, entry.ID); err == nil {
			info.Filename = file.Filename
			info.Bytes = file.Bytes
			info.CreatedAt = file.CreatedAt
		} else {
			logutil.GetLogger(ctx).Warn("file metadata lookup failed",
				zap.String("file_id", entry.ID), zap.Error(err))
		}
		files = append(files, info)
	}
	return files, nil
}

// VerifyDeleted polls List until fileID disappears or the wall-clock
// budget elapses. Timeout is reported as verified=false, not an error;
// the index is eventually consistent and "still pending" is a valid
// answer.
func (s *DocumentService) VerifyDeleted(ctx context.Context, fileID string, timeout, interval time.Duration) (bool, error) {
	if timeout <= 0 {
		timeout = defaultVerifyTimeout
	}
	if interval <= 0 {
		interval = defaultVerifyInterval
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		entries, err := s.api.ListVectorFiles(ctx, s.storeID)
		if err == nil && !containsFile(entries, fileID) {
			return true, nil
		}
		if err != nil {
			logutil.GetLogger(ctx).Warn("verify poll failed", zap.String("file_id", fileID), zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-deadline.C:
			return false, nil
		case <-ticker.C:
		}
	}
}

func containsFile(entries []openai.VectorStoreEntry, fileID string) bool {
	for _, e := range entries {
		if e.ID == fileID {
			return true
		}
	}
	return false
}
