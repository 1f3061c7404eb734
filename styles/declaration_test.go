package styles

import (
	"errors"
	"math"
	"testing"
)

func TestNewDeclaration(t *testing.T) {
	tests := []struct {
		name     string
		property string
		value    any
		wantProp string
		wantBody string
	}{
		{"camel case", "backgroundColor", " RED ", "background-color", "background-color:red;"},
		{"vendor prefix", "WebkitBoxFlex", 1, "-webkit-box-flex", "-webkit-box-flex:1;"},
		{"ms prefix", "msFlex", "1", "-ms-flex", "-ms-flex:1;"},
		{"zero", "margin", 0, "margin", "margin:0;"},
		{"float", "opacity", 0.5, "opacity", "opacity:0.5;"},
		{"int64", "zIndex", int64(3), "z-index", "z-index:3;"},
		{"uint8", "order", uint8(2), "order", "order:2;"},
		{"fallbacks", "display", []any{"-webkit-box", "flex"}, "display", "display:-webkit-box;display:flex;"},
		{"string fallbacks", "display", []string{"grid", "flex"}, "display", "display:grid;display:flex;"},
		{"custom property", "--Brand", "Red", "--Brand", "--Brand:Red;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDeclaration(tt.property, tt.value, Context{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Property != tt.wantProp {
				t.Errorf("expected property %q, got %q", tt.wantProp, d.Property)
			}
			if got := d.body(); got != tt.wantBody {
				t.Errorf("expected body %q, got %q", tt.wantBody, got)
			}
		})
	}
}

func TestNewDeclaration_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		property string
		value    any
	}{
		{"nan", "opacity", math.NaN()},
		{"inf", "opacity", math.Inf(1)},
		{"struct", "color", struct{}{}},
		{"bool", "color", true},
		{"empty fallback", "display", []any{}},
		{"null in fallback", "display", []any{"flex", nil}},
		{"nested fallback", "display", []any{[]any{"flex"}}},
		{"bad property", "col or", "red"},
		{"bad value", "color", "red;}"},
		{"empty value", "color", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDeclaration(tt.property, tt.value, Context{})
			if !errors.Is(err, ErrMalformedDeclaration) {
				t.Errorf("expected ErrMalformedDeclaration, got %v", err)
			}
		})
	}
}

func TestDeclaration_Rule(t *testing.T) {
	ctx := Context{Selectors: []string{"&:hover"}, Media: "(min-width: 100px)"}
	d, err := NewDeclaration("color", "red", ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := "@media (min-width: 100px){.fx:hover{color:red;}}"
	if got := d.Rule("fx"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestHasher(t *testing.T) {
	h := NewHasher("")
	if h.Prefix() != DefaultClassPrefix {
		t.Errorf("expected default prefix, got %q", h.Prefix())
	}

	a, _ := NewDeclaration("color", " RED", Context{})
	b, _ := NewDeclaration("color", "red", Context{})
	c, _ := NewDeclaration("color", "red", Context{Selectors: []string{"&:hover"}})
	d, _ := NewDeclaration("background-color", "red", Context{})

	if h.Hash(a) != h.Hash(b) {
		t.Error("equal declarations must have equal hashes")
	}
	if h.Hash(a) == h.Hash(c) {
		t.Error("declarations in different contexts must have different hashes")
	}
	if h.Hash(a) == h.Hash(d) {
		t.Error("declarations of different properties must have different hashes")
	}

	names := h.ClassNames(h.Hash(a), true)
	if names.LTR != "f"+string(h.Hash(a)) {
		t.Errorf("unexpected LTR class %q", names.LTR)
	}
	if names.RTL == "" || names.RTL == names.LTR {
		t.Errorf("unexpected RTL class %q", names.RTL)
	}
	if h.ClassNames(h.Hash(a), false).RTL != "" {
		t.Error("expected no RTL class for direction neutral declaration")
	}
	if NewHasher("x").ClassNames(h.Hash(a), false).LTR[0] != 'x' {
		t.Error("expected configured prefix")
	}
}
