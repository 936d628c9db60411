package deeplink

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParseQuery(t *testing.T) {
	state := ParseQuery("lang=english&mode=ergo&preset=low-sfb&weights=sfb:100,rolls:20&pinned=graphite,octa8&search=col")

	want := State{
		Lang:    "english",
		Mode:    "ergo",
		Search:  "col",
		Preset:  "low-sfb",
		Weights: map[string]int{"sfb": 100, "rolls": 20},
		Pinned:  []string{"graphite", "octa8"},
	}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Errorf("ParseQuery mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQueryMalformed(t *testing.T) {
	assert.Equal(t, State{}, ParseQuery("a=%zz"))
	assert.Equal(t, State{}, ParseQuery(""))
}

func TestParseWeights(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]int
	}{
		{"empty", "", nil},
		{"single", "sfb:100", map[string]int{"sfb": 100}},
		{"multiple with spaces", "sfb: 100, rolls :20", map[string]int{"sfb": 100, "rolls": 20}},
		{"skips missing colon", "sfb:50,rolls", map[string]int{"sfb": 50}},
		{"skips non-numeric", "sfb:50,rolls:high", map[string]int{"sfb": 50}},
		{"skips out of range", "sfb:101,rolls:-1,pinky:0", map[string]int{"pinky": 0}},
		{"all invalid", "a,b:x", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseWeights(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseWeights(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestValuesRoundTrip(t *testing.T) {
	state := State{
		Lang:    "english",
		Preset:  "rolling",
		Weights: map[string]int{"sfb": 100, "rolls": 20, "pinky": 0},
		Pinned:  []string{"graphite"},
		Known:   []string{"qwerty", "colemak"},
	}

	back := Parse(state.Values())
	if diff := cmp.Diff(state, back); diff != "" {
		t.Errorf("values round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestValuesDeterministic(t *testing.T) {
	state := State{Weights: map[string]int{"sfb": 1, "rolls": 2, "pinky": 3, "lsb": 4}}
	first := state.Values().Encode()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, state.Values().Encode())
	}
	// Weight keys are sorted in the encoded form.
	assert.Equal(t, url.Values{"weights": {"lsb:4,pinky:3,rolls:2,sfb:1"}}, state.Values())
}

func TestValuesOmitsZeroFields(t *testing.T) {
	assert.Empty(t, State{}.Values())
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList(" , ,"))
	assert.Equal(t, []string{"a", "b"}, splitList("a, b"))
}
