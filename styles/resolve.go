package styles

import (
	"slices"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"atomcss/common"
	"atomcss/css"
)

// Style is a style object: property names map to values, selector and
// at-rule keys map to nested style objects.
type Style map[string]any

// StylesBySlot holds style objects of a component by slot name.
type StylesBySlot map[string]Style

func asStyle(v any) (map[string]any, bool) {
	switch s := v.(type) {
	case Style:
		return s, true
	case map[string]any:
		return s, true
	}
	return nil, false
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Resolve converts style objects into class names inserting missing rules.
// Slots and keys are processed in sorted order. Declarations that cannot be
// resolved are reported as *DeclarationError in the returned (combined)
// error while the rest of the styles is still resolved.
func (r *Renderer) Resolve(styles StylesBySlot, dir common.Direction) (ClassNameMap, error) {
	res := ClassNameMap{Dir: dir, Slots: make(map[string]ClassesMap, len(styles))}

	var errs error
	for _, slot := range sortedKeys(styles) {
		w := walker{r: r, slot: slot, classes: make(ClassesMap)}
		w.walk(styles[slot], Context{}, nil)
		res.Slots[slot] = w.classes
		errs = multierr.Append(errs, w.errs)
	}

	if errs != nil {
		r.log.Debug("Styles resolved with errors", zap.Int("slots", len(styles)), zap.Int("errors", len(multierr.Errors(errs))))
	}
	return res, errs
}

type walker struct {
	r       *Renderer
	slot    string
	classes ClassesMap
	errs    error
}

func (w *walker) fail(path []string, property string, err error) {
	w.r.observer.DeclarationFailed(FailureKind(err))
	w.errs = multierr.Append(w.errs, &DeclarationError{
		Slot:     w.slot,
		Path:     slices.Clone(path),
		Property: property,
		Err:      err,
	})
}

func (w *walker) walk(style map[string]any, ctx Context, path []string) {
	for _, key := range sortedKeys(style) {
		value := style[key]
		if value == nil {
			continue
		}

		prop := css.HyphenateProperty(key)
		if nested, ok := asStyle(value); ok && prop != "animation-name" {
			w.nested(key, nested, ctx, path)
			continue
		}

		if prop == "animation-name" {
			w.animation(key, value, ctx, path)
			continue
		}

		d, err := NewDeclaration(key, value, ctx)
		if err != nil {
			w.fail(path, key, err)
			continue
		}
		w.declare(path, d, nil)
	}
}

func (w *walker) nested(key string, style map[string]any, ctx Context, path []string) {
	var (
		inner Context
		err   error
	)
	if strings.HasPrefix(key, "@") {
		keyword, prelude, _ := strings.Cut(strings.TrimSpace(key), " ")
		inner, err = ctx.withAtRule(keyword, prelude)
	} else {
		inner, err = ctx.withSelector(key)
	}
	if err != nil {
		w.fail(path, "", err)
		return
	}
	w.walk(style, inner, append(path[:len(path):len(path)], key))
}

// animation handles animation-name which may define keyframes in place.
func (w *walker) animation(key string, value any, ctx Context, path []string) {
	ltr, rtl, found, err := w.r.animationNames(value)
	if err != nil {
		w.fail(path, key, err)
		return
	}

	d, err := NewDeclaration(key, strings.Join(ltr, ", "), ctx)
	if err != nil {
		w.fail(path, key, err)
		return
	}
	if !found {
		w.declare(path, d, nil)
		return
	}

	m, err := NewDeclaration(key, strings.Join(rtl, ", "), ctx)
	if err != nil {
		w.fail(path, key, err)
		return
	}
	if slices.Equal(m.Values, d.Values) {
		w.declare(path, d, nil)
		return
	}
	w.declare(path, d, &m)
}

// declare inserts the declaration. Unless the right-to-left variant is given
// it is derived by mirroring.
func (w *walker) declare(path []string, d Declaration, rtl *Declaration) {
	if rtl == nil {
		if m, ok := Mirror(d); ok {
			rtl = &m
		}
	}
	rec, err := w.r.InsertDeclaration(d, rtl)
	if err != nil {
		w.fail(path, d.Property, err)
		return
	}
	w.classes[rec.Hash] = rec.Classes
}
