package layout

import "unicode"

// Blank is the value of an unset key slot.
const Blank = ' '

// Layout holds the character assignment for each of the 40 canonical
// positions. The zero value is not usable; construct with New so that unset
// slots read as Blank. All operations are total: reads never fail and the
// setter ignores out-of-range indices.
//
// A Layout is not safe for concurrent mutation, but distinct instances may be
// used freely from concurrent goroutines; the package-level tables are
// immutable after init.
type Layout struct {
	keys [NumKeys]rune
}

// New returns a layout with every slot set to Blank.
func New() *Layout {
	l := &Layout{}
	for i := range l.keys {
		l.keys[i] = Blank
	}
	return l
}

// SetKeyAt assigns ch to the canonical index. An index outside [0, NumKeys)
// is a silent no-op.
//
// TODO(catalog): decide whether an out-of-range index should instead return
// an error; the upstream data has never produced one, so the lenient
// behavior is kept until that is settled.
func (l *Layout) SetKeyAt(index int, ch rune) {
	if index < 0 || index >= NumKeys {
		return
	}
	l.keys[index] = ch
}

// KeyAt returns the character at the canonical index, or Blank for an unset
// or out-of-range index.
func (l *Layout) KeyAt(index int) rune {
	if index < 0 || index >= NumKeys {
		return Blank
	}
	return l.keys[index]
}

// FlatArray returns all 40 slots in the canonical linearization: left-top,
// right-top, left-home, right-home, left-bottom, right-bottom, then the four
// thumb slots in left-inner, left-outer, right-outer, right-inner order.
// This ordering is the interchange contract between the layout model, the
// codec, and the scoring engine.
func (l *Layout) FlatArray() [NumKeys]rune {
	return l.keys
}

// FindChar returns the canonical indices holding ch, compared
// case-insensitively. The result is in ascending index order and empty when
// the character is not assigned anywhere.
func (l *Layout) FindChar(ch rune) []int {
	want := unicode.ToLower(ch)
	var out []int
	for i, k := range l.keys {
		if unicode.ToLower(k) == want {
			out = append(out, i)
		}
	}
	return out
}

// HasThumbKeys reports whether any of the four thumb slots is assigned.
func (l *Layout) HasThumbKeys() bool {
	for i := LeftInnerThumbIndex; i <= RightInnerThumbIndex; i++ {
		if l.keys[i] != Blank {
			return true
		}
	}
	return false
}

// Equal reports whether two layouts agree on every slot.
func (l *Layout) Equal(other *Layout) bool {
	if other == nil {
		return false
	}
	return l.keys == other.keys
}
