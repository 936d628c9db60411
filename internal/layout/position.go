// Package layout models a 40-key split ergonomic keyboard independent of any
// external string encoding. Two hands of three rows by six columns plus two
// thumb keys per hand, addressed through one fixed position table so every
// consumer agrees on the same linearization.
package layout

// Hand identifies which half of the board a key sits on.
type Hand int

const (
	LeftHand Hand = iota
	RightHand
)

func (h Hand) String() string {
	if h == LeftHand {
		return "left"
	}
	return "right"
}

// Row identifies the physical row of a key.
type Row int

const (
	TopRow Row = iota
	HomeRow
	BottomRow
	ThumbRow
)

func (r Row) String() string {
	switch r {
	case TopRow:
		return "top"
	case HomeRow:
		return "home"
	case BottomRow:
		return "bottom"
	default:
		return "thumb"
	}
}

// Finger identifies which finger rests on or reaches a key.
type Finger int

const (
	PinkyFinger Finger = iota
	RingFinger
	MiddleFinger
	IndexFinger
	ThumbFinger
)

// ThumbSlot distinguishes the two thumb keys on a hand. Inner is the key
// nearest the board's center line.
type ThumbSlot int

const (
	InnerThumb ThumbSlot = iota
	OuterThumb
)

// Position is the immutable physical metadata for one canonical key index.
// Column runs 0..5 left to right within the hand, so column 0 is the outer
// pinky column on the left hand and the innermost column on the right hand.
// Thumb is only meaningful when Row is ThumbRow.
type Position struct {
	Index  int
	Hand   Hand
	Row    Row
	Column int
	Finger Finger
	Thumb  ThumbSlot
	Home   bool
}

// NumKeys is the number of addressable canonical positions.
const NumKeys = 40

// Canonical indices for the four thumb slots. The flat ordering places them
// after the 36 matrix keys as left-inner, left-outer, right-outer, right-inner.
const (
	LeftInnerThumbIndex  = 36
	LeftOuterThumbIndex  = 37
	RightOuterThumbIndex = 38
	RightInnerThumbIndex = 39
)

// Columns per hand per row in the main matrix.
const columnsPerHand = 6

// Positions maps every canonical index 0..39 to its physical metadata. The
// matrix section interleaves hands row by row: left-top, right-top, left-home,
// right-home, left-bottom, right-bottom, six columns each.
var Positions [NumKeys]Position

func init() {
	rows := []Row{TopRow, HomeRow, BottomRow}
	i := 0
	for _, row := range rows {
		for _, hand := range []Hand{LeftHand, RightHand} {
			for col := 0; col < columnsPerHand; col++ {
				Positions[i] = Position{
					Index:  i,
					Hand:   hand,
					Row:    row,
					Column: col,
					Finger: fingerFor(hand, col),
					Home:   row == HomeRow && isHomeColumn(hand, col),
				}
				i++
			}
		}
	}
	for _, t := range []struct {
		hand Hand
		slot ThumbSlot
	}{
		{LeftHand, InnerThumb},
		{LeftHand, OuterThumb},
		{RightHand, OuterThumb},
		{RightHand, InnerThumb},
	} {
		Positions[i] = Position{
			Index:  i,
			Hand:   t.hand,
			Row:    ThumbRow,
			Finger: ThumbFinger,
			Thumb:  t.slot,
		}
		i++
	}
}

// fingerFor returns the finger responsible for a matrix column. Both index
// fingers cover two columns: their own plus the stretch column toward the
// center of the board.
func fingerFor(hand Hand, col int) Finger {
	if hand == RightHand {
		col = columnsPerHand - 1 - col
	}
	switch col {
	case 0, 1:
		return PinkyFinger
	case 2:
		return RingFinger
	case 3:
		return MiddleFinger
	default:
		return IndexFinger
	}
}

// isHomeColumn reports whether a home-row column is one of the 8 resting keys
// (pinky through index on each hand; the outer pinky and center stretch
// columns are not resting positions).
func isHomeColumn(hand Hand, col int) bool {
	if hand == RightHand {
		col = columnsPerHand - 1 - col
	}
	return col >= 1 && col <= 4
}

// MatrixIndex returns the canonical index for a main-matrix key, or -1 if the
// coordinates fall outside the matrix.
func MatrixIndex(hand Hand, row Row, col int) int {
	if row == ThumbRow || col < 0 || col >= columnsPerHand {
		return -1
	}
	base := int(row) * 2 * columnsPerHand
	if hand == RightHand {
		base += columnsPerHand
	}
	return base + col
}

// ThumbIndex returns the canonical index for a thumb slot.
func ThumbIndex(hand Hand, slot ThumbSlot) int {
	switch {
	case hand == LeftHand && slot == InnerThumb:
		return LeftInnerThumbIndex
	case hand == LeftHand && slot == OuterThumb:
		return LeftOuterThumbIndex
	case hand == RightHand && slot == OuterThumb:
		return RightOuterThumbIndex
	default:
		return RightInnerThumbIndex
	}
}
