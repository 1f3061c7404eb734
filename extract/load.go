package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	yaml "gopkg.in/yaml.v3"

	"atomcss/styles"
)

// Components maps component names of a style file to their slots.
type Components map[string]styles.StylesBySlot

// Expand returns files under dir matching any of the patterns, relative to
// dir with forward slashes, sorted and without duplicates.
func Expand(dir string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, errors.New("no input patterns have been specified")
	}

	fsys := os.DirFS(dir)
	var files []string
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("bad input pattern %q", p)
		}
		matches, err := doublestar.Glob(fsys, p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("unable to expand pattern %q: %w", p, err)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// Matches reports whether relative path name matches any of the patterns.
func Matches(patterns []string, name string) bool {
	name = filepath.ToSlash(name)
	for _, p := range patterns {
		if ok, err := doublestar.Match(filepath.ToSlash(p), name); err == nil && ok {
			return true
		}
	}
	return false
}

// LoadComponents reads style definitions from YAML or JSON file.
func LoadComponents(path string) (Components, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read styles: %w", err)
	}
	return DecodeComponents(data)
}

// DecodeComponents decodes YAML (or JSON) document:
//
//	button:
//	  root:
//	    color: red
//	    ":hover":
//	      color: blue
func DecodeComponents(data []byte) (Components, error) {
	var res Components
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&res); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to decode styles: %w", err)
	}
	for name, c := range res {
		if c == nil {
			return nil, fmt.Errorf("component %q has no slots", name)
		}
	}
	return res, nil
}
