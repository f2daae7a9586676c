package diskstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anthanhphan/go-file-uploader/internal/server/port"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store keeps uploaded files in one flat directory.
// Writes are not atomic: a crash mid-write can leave a truncated file.
type Store struct {
	root string
}

// Ensure Store implements port.FileStore.
var _ port.FileStore = (*Store)(nil)

func New(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) EnsureRoot(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.root, dirPerm); err != nil {
		return fmt.Errorf("create storage root %s: %w", s.root, err)
	}
	return nil
}

// Write expects name to be a single path element; callers validate it.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.root, name)
	if filepath.Dir(path) != s.root {
		return fmt.Errorf("%w: %q escapes storage root", port.ErrInvalidFileName, name)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
