package styles

import "testing"

func TestMirror(t *testing.T) {
	tests := []struct {
		property string
		value    string
		wantProp string
		wantVal  string
		mirrored bool
	}{
		{"marginLeft", "10px", "margin-right", "10px", true},
		{"right", "0", "left", "0", true},
		{"borderTopLeftRadius", "4px", "border-top-right-radius", "4px", true},
		{"float", "left", "float", "right", true},
		{"textAlign", "right", "text-align", "left", true},
		{"textAlign", "center", "text-align", "center", false},
		{"padding", "1px 2px 3px 4px", "padding", "1px 4px 3px 2px", true},
		{"padding", "1px 2px 3px 2px", "padding", "1px 2px 3px 2px", false},
		{"margin", "1px 2px", "margin", "1px 2px", false},
		{"borderRadius", "1px 2px 3px 4px", "border-radius", "2px 1px 4px 3px", true},
		{"borderRadius", "1px 2px", "border-radius", "2px 1px", true},
		{"borderRadius", "5px", "border-radius", "5px", false},
		{"cursor", "e-resize", "cursor", "w-resize", true},
		{"cursor", "pointer", "cursor", "pointer", false},
		{"backgroundPositionX", "left 10px", "background-position-x", "right 10px", true},
		{"direction", "ltr", "direction", "rtl", true},
		{"color", "red", "color", "red", false},
		{"marginLeft", "10px /* @noflip */", "margin-left", "10px", false},
	}
	for _, tt := range tests {
		t.Run(tt.property+":"+tt.value, func(t *testing.T) {
			d, err := NewDeclaration(tt.property, tt.value, Context{})
			if err != nil {
				t.Fatal(err)
			}
			m, ok := Mirror(d)
			if ok != tt.mirrored {
				t.Fatalf("expected mirrored=%v, got %v", tt.mirrored, ok)
			}
			if m.Property != tt.wantProp || m.Values[0] != tt.wantVal {
				t.Errorf("expected %s:%s, got %s:%s", tt.wantProp, tt.wantVal, m.Property, m.Values[0])
			}
		})
	}
}

func TestMirror_DoesNotModifyOriginal(t *testing.T) {
	d, _ := NewDeclaration("float", []any{"left", "right"}, Context{})
	m, ok := Mirror(d)
	if !ok {
		t.Fatal("expected mirroring")
	}
	if d.Values[0] != "left" || d.Values[1] != "right" {
		t.Errorf("original changed: %q", d.Values)
	}
	if m.Values[0] != "right" || m.Values[1] != "left" {
		t.Errorf("unexpected mirrored values: %q", m.Values)
	}
}
