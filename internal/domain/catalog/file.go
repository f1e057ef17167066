package catalog

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrLoadCatalog wraps failures to read or parse a catalog file.
var ErrLoadCatalog = errors.New("failed to load catalog")

// catalogDoc mirrors the YAML catalog file layout.
type catalogDoc struct {
	Version string            `koanf:"version"`
	Active  []string          `koanf:"active"`
	Aliases map[string]string `koanf:"aliases"`
	Planned []string          `koanf:"planned"`
}

// LoadFile reads a catalog override from a YAML file. The file must declare
// a version and at least one active niche.
func LoadFile(path string) (*Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}

	var doc catalogDoc
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}

	switch {
	case doc.Version == "":
		return nil, fmt.Errorf("%w: missing version", ErrLoadCatalog)
	case len(doc.Active) == 0:
		return nil, fmt.Errorf("%w: no active niches", ErrLoadCatalog)
	}

	return New(doc.Version, doc.Active, doc.Aliases, doc.Planned), nil
}
