package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LoadFile reads the document at path. Files ending in .yaml or .yml use the YAML format, anything
// else the text format.
func LoadFile(path string) (*Almanac, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return ParseText(filepath.Base(path), f)
	}
}
