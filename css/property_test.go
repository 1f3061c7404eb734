package css_test

import (
	"errors"
	"testing"

	"atomcss/css"
)

func TestHyphenateProperty(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"color", "color"},
		{"backgroundColor", "background-color"},
		{"WebkitBoxFlex", "-webkit-box-flex"},
		{"MozAppearance", "-moz-appearance"},
		{"msFlex", "-ms-flex"},
		{"borderTopLeftRadius", "border-top-left-radius"},
		{"background-color", "background-color"},
		{"--brandColor", "--brandColor"},
	}
	for _, tt := range tests {
		if got := css.HyphenateProperty(tt.in); got != tt.want {
			t.Errorf("HyphenateProperty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeProperty(t *testing.T) {
	got, err := css.NormalizeProperty(" paddingInlineStart ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "padding-inline-start" {
		t.Errorf("expected padding-inline-start, got %q", got)
	}

	for _, bad := range []string{"", "--", "1color", "col or", "color:", "--a b", "margin--top", "a_b"} {
		if _, err := css.NormalizeProperty(bad); !errors.Is(err, css.ErrMalformed) {
			t.Errorf("NormalizeProperty(%q): expected ErrMalformed, got %v", bad, err)
		}
	}
}
