package port

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-file-uploader/internal/server/domain"
)

var (
	ErrNoFiles            = errors.New("no files provided")
	ErrInvalidFileName    = errors.New("invalid file name")
	ErrStorageUnavailable = errors.New("storage root unavailable")
)

// FileService defines the business logic for storing uploaded files.
type FileService interface {
	// StoreFiles writes every file to the storage root, one at a time.
	// Files stored before a failure stay on disk and are listed in the result.
	StoreFiles(ctx context.Context, files []domain.IncomingFile) (domain.UploadResult, error)
}
