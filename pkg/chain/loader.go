package chain

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/reifyd/scriptify/pkg/errors"
)

// Load reads and parses a chain definition file. The format is chosen by
// extension: .hcl parses as HCL, everything else as YAML.
func Load(path string) (*Chain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ParseError(path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return ParseHCL(data, path)
	}
	return ParseYAML(data, path)
}
