package layout

import (
	"testing"
)

func TestNewIsBlank(t *testing.T) {
	l := New()
	for i := 0; i < NumKeys; i++ {
		if l.KeyAt(i) != Blank {
			t.Errorf("KeyAt(%d) = %q, expected blank", i, l.KeyAt(i))
		}
	}
	if l.HasThumbKeys() {
		t.Error("new layout reports thumb keys")
	}
}

func TestSetKeyAt(t *testing.T) {
	l := New()
	l.SetKeyAt(0, 'q')
	l.SetKeyAt(39, 'e')
	if got := l.KeyAt(0); got != 'q' {
		t.Errorf("KeyAt(0) = %q, expected q", got)
	}
	if got := l.KeyAt(39); got != 'e' {
		t.Errorf("KeyAt(39) = %q, expected e", got)
	}
}

func TestSetKeyAtOutOfRange(t *testing.T) {
	l := New()
	before := l.FlatArray()

	// Out-of-range writes are silent no-ops.
	l.SetKeyAt(-1, 'x')
	l.SetKeyAt(NumKeys, 'x')
	l.SetKeyAt(1000, 'x')

	if l.FlatArray() != before {
		t.Error("out-of-range SetKeyAt modified the layout")
	}
	if got := l.KeyAt(-1); got != Blank {
		t.Errorf("KeyAt(-1) = %q, expected blank", got)
	}
	if got := l.KeyAt(NumKeys); got != Blank {
		t.Errorf("KeyAt(NumKeys) = %q, expected blank", got)
	}
}

func TestFlatArrayOrder(t *testing.T) {
	l := New()
	for i := 0; i < NumKeys; i++ {
		l.SetKeyAt(i, rune('a'+i%26))
	}
	flat := l.FlatArray()
	for i := 0; i < NumKeys; i++ {
		if flat[i] != rune('a'+i%26) {
			t.Fatalf("FlatArray()[%d] = %q, expected %q", i, flat[i], rune('a'+i%26))
		}
	}
}

func TestFindChar(t *testing.T) {
	l := New()
	l.SetKeyAt(3, 'E')
	l.SetKeyAt(17, 'e')
	l.SetKeyAt(36, 'e')

	tests := []struct {
		name string
		ch   rune
		want []int
	}{
		{"lowercase query", 'e', []int{3, 17, 36}},
		{"uppercase query", 'E', []int{3, 17, 36}},
		{"absent char", 'z', nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.FindChar(tt.ch)
			if len(got) != len(tt.want) {
				t.Fatalf("FindChar(%q) = %v, expected %v", tt.ch, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("FindChar(%q) = %v, expected %v", tt.ch, got, tt.want)
				}
			}
		})
	}
}

func TestHasThumbKeys(t *testing.T) {
	for idx := LeftInnerThumbIndex; idx <= RightInnerThumbIndex; idx++ {
		l := New()
		l.SetKeyAt(idx, 'e')
		if !l.HasThumbKeys() {
			t.Errorf("thumb key at %d not detected", idx)
		}
	}

	l := New()
	l.SetKeyAt(0, 'q')
	if l.HasThumbKeys() {
		t.Error("matrix key misreported as thumb key")
	}
}

func TestEqual(t *testing.T) {
	a := New()
	b := New()
	if !a.Equal(b) {
		t.Error("two blank layouts not equal")
	}
	a.SetKeyAt(5, 'x')
	if a.Equal(b) {
		t.Error("differing layouts reported equal")
	}
	b.SetKeyAt(5, 'x')
	if !a.Equal(b) {
		t.Error("identical layouts not equal")
	}
	if a.Equal(nil) {
		t.Error("layout equal to nil")
	}
}
