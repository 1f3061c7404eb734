// Package extract resolves style definition files ahead of time and produces
// the resulting stylesheets and class name maps.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"atomcss/common"
	"atomcss/store"
	"atomcss/styles"
)

// Options describe a single extraction.
type Options struct {
	Dir       string
	Patterns  []string
	Direction common.Direction
	Workers   int
	Renderer  []styles.Option
	Store     *store.Store
}

// ClassMap holds resolved class names: file -> component -> slot -> classes.
type ClassMap map[string]map[string]map[string]string

// Result is the outcome of extraction.
type Result struct {
	Renderer *styles.Renderer
	Files    []string
	Classes  ClassMap
}

type loaded struct {
	name       string
	components Components
}

// Extract loads every matching file and resolves all components into a
// fresh renderer. Files are read concurrently, resolved in sorted order so
// the output does not depend on timing. Declaration errors do not stop
// extraction, they are returned combined with a complete result.
func Extract(ctx context.Context, opts Options, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}

	files, err := Expand(opts.Dir, opts.Patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		log.Warn("No style files found", zap.String("dir", opts.Dir), zap.Strings("patterns", opts.Patterns))
	}

	inputs := make([]loaded, len(files))
	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := LoadComponents(filepath.Join(opts.Dir, filepath.FromSlash(name)))
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			inputs[i] = loaded{name: name, components: c}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := styles.NewRenderer(log, opts.Renderer...)
	if opts.Store != nil {
		snap, found, err := opts.Store.Load()
		if err != nil {
			return nil, err
		}
		if found {
			if err := r.Restore(snap); err != nil {
				return nil, fmt.Errorf("unable to restore stored rules: %w", err)
			}
		}
	}

	res := &Result{Renderer: r, Files: files, Classes: make(ClassMap, len(files))}
	var errs error
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		classes := make(map[string]map[string]string, len(in.components))
		for _, name := range sortedNames(in.components) {
			m, err := r.Resolve(in.components[name], opts.Direction)
			for _, e := range multierr.Errors(err) {
				errs = multierr.Append(errs, fmt.Errorf("%s: %s: %w", in.name, name, e))
			}
			classes[name] = m.ClassNames()
		}
		res.Classes[in.name] = classes
		log.Debug("Styles resolved", zap.String("file", in.name), zap.Int("components", len(in.components)))
	}

	if opts.Store != nil {
		if err := opts.Store.Save(r.Snapshot()); err != nil {
			return nil, err
		}
	}
	return res, errs
}

func sortedNames(c Components) []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Encode renders extracted stylesheets in requested format.
func (res *Result) Encode(format common.OutputFormat) ([]byte, error) {
	switch format {
	case common.OutputFormatCss:
		return []byte(res.Renderer.Registry().String()), nil
	case common.OutputFormatXhtml:
		var buf bytes.Buffer
		if _, err := res.Renderer.Registry().WriteStyleElements(&buf); err != nil {
			return nil, fmt.Errorf("unable to render style elements: %w", err)
		}
		return buf.Bytes(), nil
	case common.OutputFormatIon:
		return res.Renderer.Snapshot().Encode()
	}
	return nil, fmt.Errorf("unsupported output format %s", format)
}
