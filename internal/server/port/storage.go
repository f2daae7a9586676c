package port

import "context"

//go:generate mockgen -destination=../service/mocks/storage_mock.go -package=mocks -source=storage.go

// FileStore defines the interface for the flat storage root.
type FileStore interface {
	// EnsureRoot creates the storage root and missing parents. It is a no-op if present.
	EnsureRoot(ctx context.Context) error

	// Write stores data under name, replacing any existing file of that name.
	Write(ctx context.Context, name string, data []byte) error

	// Root returns the storage root directory.
	Root() string
}
