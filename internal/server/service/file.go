package service

import (
	"context"

	"github.com/anthanhphan/go-file-uploader/internal/server/domain"
	"github.com/anthanhphan/go-file-uploader/internal/server/port"
)

// FileServiceImpl is the facade that wires use-case services for file operations.
type FileServiceImpl struct {
	store port.FileStore
	names NamePolicy

	uploadUseCase *uploadService
}

// Ensure FileServiceImpl implements port.FileService.
var _ port.FileService = (*FileServiceImpl)(nil)

// NewFileService builds the file service facade. A nil policy keeps reported names.
func NewFileService(store port.FileStore, names NamePolicy) *FileServiceImpl {
	if names == nil {
		names = originalNames{}
	}

	svc := &FileServiceImpl{
		store: store,
		names: names,
	}
	svc.uploadUseCase = newUploadService(store, names)

	return svc
}

// StoreFiles delegates upload handling to the upload use-case service.
func (s *FileServiceImpl) StoreFiles(ctx context.Context, files []domain.IncomingFile) (domain.UploadResult, error) {
	return s.uploadUseCase.storeFiles(ctx, files)
}
