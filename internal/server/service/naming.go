package service

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/anthanhphan/go-file-uploader/internal/server/config"
	"github.com/anthanhphan/go-file-uploader/internal/server/port"
	"github.com/anthanhphan/go-file-uploader/pkg/idgen"
)

//go:generate mockgen -destination=mocks/naming_mock.go -package=mocks -source=naming.go

const maxFileNameBytes = 255

// IDGenerator defines ID generation capability.
type IDGenerator interface {
	Next() (int64, error)
}

// NamePolicy maps a client-reported file name to the name stored on disk.
type NamePolicy interface {
	StoredName(reported string) (string, error)
}

// NewNamePolicy resolves the configured policy. idGen is only needed for snowflake names.
func NewNamePolicy(kind string, idGen IDGenerator) (NamePolicy, error) {
	switch kind {
	case "", config.NamePolicyOriginal:
		return originalNames{}, nil
	case config.NamePolicySnowflake:
		if idGen == nil {
			return nil, fmt.Errorf("name policy %q requires an id generator", kind)
		}
		return generatedNames{idGen: idGen}, nil
	default:
		return nil, fmt.Errorf("unknown name policy %q", kind)
	}
}

// originalNames stores files under exactly the reported name.
type originalNames struct{}

func (originalNames) StoredName(reported string) (string, error) {
	if err := ValidateFileName(reported); err != nil {
		return "", err
	}
	return reported, nil
}

// generatedNames stores files as <id><ext>, keeping the reported extension.
type generatedNames struct {
	idGen IDGenerator
}

func (g generatedNames) StoredName(reported string) (string, error) {
	if err := ValidateFileName(reported); err != nil {
		return "", err
	}
	id, err := g.idGen.Next()
	if err != nil {
		return "", fmt.Errorf("failed to generate file id: %w", err)
	}
	return idgen.FileName(id, reported), nil
}

// ValidateFileName accepts a name only if it is a single path element of graphic runes.
// Space separators such as U+00A0 and U+202F are allowed; control, format and
// line/paragraph separator runes are not.
func ValidateFileName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", port.ErrInvalidFileName, name)
	case len(name) > maxFileNameBytes:
		return fmt.Errorf("%w: longer than %d bytes", port.ErrInvalidFileName, maxFileNameBytes)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", port.ErrInvalidFileName, name)
	}

	for _, r := range name {
		if r == unicode.ReplacementChar || !unicode.IsGraphic(r) {
			return fmt.Errorf("%w: %q contains non-graphic runes", port.ErrInvalidFileName, name)
		}
	}
	return nil
}
