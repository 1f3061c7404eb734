package extract

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// ErrExists is returned when output file exists and overwriting was not
// requested.
var ErrExists = errors.New("destination already exists")

// EncodeClasses renders class map as YAML document.
func EncodeClasses(m ClassMap) ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("unable to encode class names: %w", err)
	}
	return data, nil
}

// WriteOutput writes data to file name or to w when name is empty.
func WriteOutput(w io.Writer, name string, data []byte, overwrite bool) error {
	if len(name) == 0 {
		_, err := w.Write(data)
		return err
	}

	if !overwrite {
		if _, err := os.Stat(name); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, name)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("unable to write '%s': %w", name, err)
	}
	return nil
}
