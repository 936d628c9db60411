package layout

import (
	"testing"
)

func TestPositionsTableShape(t *testing.T) {
	if len(Positions) != NumKeys {
		t.Fatalf("Positions has %d entries, expected %d", len(Positions), NumKeys)
	}
	for i, p := range Positions {
		if p.Index != i {
			t.Errorf("Positions[%d].Index = %d", i, p.Index)
		}
	}

	// 18 matrix keys per hand plus 2 thumbs.
	counts := map[Hand]int{}
	for _, p := range Positions {
		counts[p.Hand]++
	}
	if counts[LeftHand] != 20 || counts[RightHand] != 20 {
		t.Errorf("hand counts = %v, expected 20 per hand", counts)
	}
}

func TestCanonicalRowOrder(t *testing.T) {
	tests := []struct {
		name  string
		index int
		hand  Hand
		row   Row
		col   int
	}{
		{"first left top", 0, LeftHand, TopRow, 0},
		{"last left top", 5, LeftHand, TopRow, 5},
		{"first right top", 6, RightHand, TopRow, 0},
		{"last right top", 11, RightHand, TopRow, 5},
		{"first left home", 12, LeftHand, HomeRow, 0},
		{"first right home", 18, RightHand, HomeRow, 0},
		{"first left bottom", 24, LeftHand, BottomRow, 0},
		{"last right bottom", 35, RightHand, BottomRow, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Positions[tt.index]
			if p.Hand != tt.hand || p.Row != tt.row || p.Column != tt.col {
				t.Errorf("Positions[%d] = {%v %v col=%d}, expected {%v %v col=%d}",
					tt.index, p.Hand, p.Row, p.Column, tt.hand, tt.row, tt.col)
			}
		})
	}
}

func TestThumbPositions(t *testing.T) {
	tests := []struct {
		index int
		hand  Hand
		slot  ThumbSlot
	}{
		{LeftInnerThumbIndex, LeftHand, InnerThumb},
		{LeftOuterThumbIndex, LeftHand, OuterThumb},
		{RightOuterThumbIndex, RightHand, OuterThumb},
		{RightInnerThumbIndex, RightHand, InnerThumb},
	}
	for _, tt := range tests {
		p := Positions[tt.index]
		if p.Row != ThumbRow {
			t.Errorf("Positions[%d].Row = %v, expected thumb", tt.index, p.Row)
		}
		if p.Hand != tt.hand || p.Thumb != tt.slot {
			t.Errorf("Positions[%d] = {%v %v}, expected {%v %v}", tt.index, p.Hand, p.Thumb, tt.hand, tt.slot)
		}
		if p.Finger != ThumbFinger {
			t.Errorf("Positions[%d].Finger = %v, expected thumb", tt.index, p.Finger)
		}
		if got := ThumbIndex(tt.hand, tt.slot); got != tt.index {
			t.Errorf("ThumbIndex(%v, %v) = %d, expected %d", tt.hand, tt.slot, got, tt.index)
		}
	}
}

func TestMatrixIndex(t *testing.T) {
	// Every matrix position must round-trip through MatrixIndex.
	for i := 0; i < 36; i++ {
		p := Positions[i]
		if got := MatrixIndex(p.Hand, p.Row, p.Column); got != i {
			t.Errorf("MatrixIndex(%v, %v, %d) = %d, expected %d", p.Hand, p.Row, p.Column, got, i)
		}
	}

	if got := MatrixIndex(LeftHand, ThumbRow, 0); got != -1 {
		t.Errorf("MatrixIndex(thumb row) = %d, expected -1", got)
	}
	if got := MatrixIndex(LeftHand, TopRow, 6); got != -1 {
		t.Errorf("MatrixIndex(col 6) = %d, expected -1", got)
	}
	if got := MatrixIndex(RightHand, BottomRow, -1); got != -1 {
		t.Errorf("MatrixIndex(col -1) = %d, expected -1", got)
	}
}

func TestFingerAssignments(t *testing.T) {
	tests := []struct {
		name   string
		hand   Hand
		col    int
		finger Finger
	}{
		{"left outer pinky", LeftHand, 0, PinkyFinger},
		{"left pinky", LeftHand, 1, PinkyFinger},
		{"left ring", LeftHand, 2, RingFinger},
		{"left middle", LeftHand, 3, MiddleFinger},
		{"left index", LeftHand, 4, IndexFinger},
		{"left index stretch", LeftHand, 5, IndexFinger},
		{"right index stretch", RightHand, 0, IndexFinger},
		{"right index", RightHand, 1, IndexFinger},
		{"right middle", RightHand, 2, MiddleFinger},
		{"right ring", RightHand, 3, RingFinger},
		{"right pinky", RightHand, 4, PinkyFinger},
		{"right outer pinky", RightHand, 5, PinkyFinger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Positions[MatrixIndex(tt.hand, HomeRow, tt.col)]
			if p.Finger != tt.finger {
				t.Errorf("finger = %v, expected %v", p.Finger, tt.finger)
			}
		})
	}
}

func TestHomePositions(t *testing.T) {
	var home []int
	for _, p := range Positions {
		if p.Home {
			home = append(home, p.Index)
		}
	}
	// Eight resting keys: pinky through index on each hand's home row.
	expected := []int{13, 14, 15, 16, 19, 20, 21, 22}
	if len(home) != len(expected) {
		t.Fatalf("home positions = %v, expected %v", home, expected)
	}
	for i := range expected {
		if home[i] != expected[i] {
			t.Fatalf("home positions = %v, expected %v", home, expected)
		}
	}
}
