package uploader

import (
	"fmt"
	"os"
	"path/filepath"
)

// bytesPerMB is the divisor used for every megabyte figure.
const bytesPerMB = 1024 * 1024

// File is one entry of an upload batch.
type File struct {
	Name    string
	Size    int64
	Content []byte
}

// Batch is the ordered set of files selected in one interaction.
type Batch struct {
	Files []File
}

func (b Batch) Count() int {
	return len(b.Files)
}

func (b Batch) TotalBytes() int64 {
	var total int64
	for _, f := range b.Files {
		total += f.Size
	}
	return total
}

// NewFile builds a batch entry from in-memory content.
func NewFile(name string, content []byte) File {
	return File{Name: name, Size: int64(len(content)), Content: content}
}

// LoadFiles reads the given paths into batch entries, named by their base name.
func LoadFiles(paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		files = append(files, NewFile(filepath.Base(path), content))
	}
	return files, nil
}
