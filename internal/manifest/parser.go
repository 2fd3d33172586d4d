package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Read decodes manifest text into a CargoManifest.
func Read(text string) (*CargoManifest, error) {
	var m CargoManifest
	if _, err := toml.Decode(text, &m); err != nil {
		pe := &ParseError{Err: err}
		var tomlErr toml.ParseError
		if errors.As(err, &tomlErr) {
			pe.Line = tomlErr.Position.Line
		}
		return nil, pe
	}
	return &m, nil
}

// ReadFile reads and decodes the manifest at path.
func ReadFile(path string) (*CargoManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Read(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
