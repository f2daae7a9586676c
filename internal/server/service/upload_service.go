package service

import (
	"context"
	"fmt"
	"io"

	"github.com/anthanhphan/go-file-uploader/internal/server/domain"
	"github.com/anthanhphan/go-file-uploader/internal/server/port"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/spaolacci/murmur3"
)

// uploadService writes the files of one request into the storage root.
type uploadService struct {
	store port.FileStore
	names NamePolicy
}

// plannedFile pairs an incoming file with its resolved stored name.
type plannedFile struct {
	file   domain.IncomingFile
	stored string
}

func newUploadService(store port.FileStore, names NamePolicy) *uploadService {
	return &uploadService{store: store, names: names}
}

// storeFiles runs the upload workflow: plan names, ensure the root, then write in order.
// There is no rollback; a failure leaves earlier files on disk.
func (s *uploadService) storeFiles(ctx context.Context, files []domain.IncomingFile) (domain.UploadResult, error) {
	var result domain.UploadResult
	if len(files) == 0 {
		return result, port.ErrNoFiles
	}

	plan, err := s.planNames(files)
	if err != nil {
		logger.Warnw("Upload rejected", "error", err.Error())
		return result, err
	}

	if err := s.store.EnsureRoot(ctx); err != nil {
		logger.Errorw("Storage root unavailable", "root", s.store.Root(), "error", err.Error())
		return result, fmt.Errorf("%w: %v", port.ErrStorageUnavailable, err)
	}

	logger.Infow("Upload started", "files", len(plan), "root", s.store.Root())

	for _, p := range plan {
		if err := s.storeOne(ctx, p); err != nil {
			logger.Errorw(
				"Upload failed",
				"file_name", p.file.Name,
				"stored", len(result.Stored),
				"remaining", len(plan)-len(result.Stored),
				"error", err.Error(),
			)
			return result, err
		}
		result.Stored = append(result.Stored, p.stored)
	}

	logger.Infow("Upload completed", "files", len(result.Stored))
	return result, nil
}

// planNames resolves every stored name before anything touches disk.
func (s *uploadService) planNames(files []domain.IncomingFile) ([]plannedFile, error) {
	plan := make([]plannedFile, 0, len(files))
	for _, f := range files {
		stored, err := s.names.StoredName(f.Name)
		if err != nil {
			return nil, err
		}
		plan = append(plan, plannedFile{file: f, stored: stored})
	}
	return plan, nil
}

// storeOne reads the whole file into memory and writes it under its stored name.
func (s *uploadService) storeOne(ctx context.Context, p plannedFile) error {
	if p.file.Open == nil {
		return fmt.Errorf("file %q has no content source", p.file.Name)
	}

	src, err := p.file.Open()
	if err != nil {
		return fmt.Errorf("open %q: %w", p.file.Name, err)
	}
	data, err := io.ReadAll(src)
	_ = src.Close()
	if err != nil {
		return fmt.Errorf("read %q: %w", p.file.Name, err)
	}

	if err := s.store.Write(ctx, p.stored, data); err != nil {
		return err
	}

	logger.Infow(
		"File written",
		"file_name", p.file.Name,
		"stored_name", p.stored,
		"size_bytes", len(data),
		"checksum", murmur3.Sum32(data),
	)
	return nil
}
