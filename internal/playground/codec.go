// Package playground converts between the canonical layout model and the
// compact positional string used by the cyanophage playground URLs. The
// string format is an external bit-exact contract: 32 main positions, a
// left-bottom pinky position at offset 32 (placeholder `\`), an optional
// thumb letter at offset 33 disambiguated by a `thumb=l|r` query flag, and an
// optional left-home pinky position at offset 34 (placeholder `^`). Unset
// main positions are encoded as `-`.
package playground

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/ergodata/layout.report/internal/layout"
)

// DefaultBaseURL is the playground page the catalog links against.
const DefaultBaseURL = "https://cyanophage.github.io/playground.html"

// Canonical indices addressed by the three tail offsets of the encoded
// string. Offsets 32 and 34 carry the two left-hand pinky keys that do not
// fit in the 32 main positions; offset 33 carries the thumb letter.
const (
	bottomPinkyIndex = 24 // left hand, bottom row, outer pinky column
	homePinkyIndex   = 12 // left hand, home row, outer pinky column
)

// Placeholder sentinels used by the wire format for unset tail positions.
// They are encoding artifacts, never key assignments.
const (
	mainPlaceholder        = '-'
	bottomPinkyPlaceholder = '\\'
	homePinkyPlaceholder   = '^'
)

// mainPositions maps encoded string offsets 0..31 to canonical indices. Each
// visual row is eleven keys: five left-hand columns (the outer pinky column
// is excluded), then all six right-hand columns. The bottom row has no
// eleventh key; its right outer column closes the 32 main positions.
var mainPositions = [32]int{
	// top row: qwert | yuiop-
	1, 2, 3, 4, 5,
	6, 7, 8, 9, 10, 11,
	// home row: asdfg | hjkl;'
	13, 14, 15, 16, 17,
	18, 19, 20, 21, 22, 23,
	// bottom row: zxcvb | nm,./
	25, 26, 27, 28, 29,
	30, 31, 32, 33, 34,
}

// Decode parses a playground URL, a bare query string, or a raw encoded
// layout string into a canonical layout. Decoding is total: malformed input
// degrades through the fallback parse chain and unparseable content yields
// blank slots rather than an error. Trailing decoration beyond offset 34 is
// ignored.
func Decode(input string) *layout.Layout {
	raw := extractParam(input, "layout", true)
	side := extractParam(input, "thumb", false)

	l := layout.New()
	runes := []rune(raw)

	for i, idx := range mainPositions {
		if i >= len(runes) {
			break
		}
		if runes[i] == mainPlaceholder {
			continue
		}
		l.SetKeyAt(idx, unicode.ToLower(runes[i]))
	}

	if len(runes) > 32 && runes[32] != bottomPinkyPlaceholder {
		l.SetKeyAt(bottomPinkyIndex, unicode.ToLower(runes[32]))
	}
	if len(runes) > 34 && runes[34] != homePinkyPlaceholder {
		l.SetKeyAt(homePinkyIndex, unicode.ToLower(runes[34]))
	}
	if len(runes) > 33 && isASCIILetter(runes[33]) {
		idx := layout.LeftInnerThumbIndex
		if side == "r" {
			idx = layout.RightInnerThumbIndex
		}
		l.SetKeyAt(idx, unicode.ToLower(runes[33]))
	}

	return l
}

// Encode converts a layout to its encoded string and resolved thumb side
// flag. The side is "l", "r", or "" when neither hand has a letter on a
// thumb key; without a resolved side the string stops after offset 32 and
// the left-home pinky key is not carried.
func Encode(l *layout.Layout) (encoded string, side string) {
	flat := l.FlatArray()

	b := make([]rune, 0, 35)
	for _, idx := range mainPositions {
		ch := flat[idx]
		if ch == layout.Blank {
			ch = mainPlaceholder
		}
		b = append(b, ch)
	}

	ch := flat[bottomPinkyIndex]
	if ch == layout.Blank {
		ch = bottomPinkyPlaceholder
	}
	b = append(b, ch)

	thumb, side := resolveThumb(flat)
	if side != "" {
		b = append(b, thumb)
		hp := flat[homePinkyIndex]
		if hp == layout.Blank {
			hp = homePinkyPlaceholder
		}
		b = append(b, hp)
	}

	return string(b), side
}

// resolveThumb picks the thumb letter and side for encoding. The left hand
// wins when both hands qualify. On each hand the outer slot is examined
// first and the inner slot only when the outer is blank; a non-letter on the
// examined slot disqualifies the hand.
func resolveThumb(flat [layout.NumKeys]rune) (rune, string) {
	left := flat[layout.LeftOuterThumbIndex]
	if left == layout.Blank {
		left = flat[layout.LeftInnerThumbIndex]
	}
	if isASCIILetter(left) {
		return left, "l"
	}

	right := flat[layout.RightOuterThumbIndex]
	if right == layout.Blank {
		right = flat[layout.RightInnerThumbIndex]
	}
	if isASCIILetter(right) {
		return right, "r"
	}

	return 0, ""
}

// URL composes the full playground URL for a layout. Language is optional.
func URL(l *layout.Layout, language string) string {
	encoded, side := Encode(l)
	u := fmt.Sprintf("%s?layout=%s&mode=ergo", DefaultBaseURL, url.QueryEscape(encoded))
	if side != "" {
		u += "&thumb=" + side
	}
	if language != "" {
		u += "&lan=" + url.QueryEscape(language)
	}
	return u
}

// SetLanguage rewrites the lan parameter of a playground URL, adding it when
// missing. The rest of the URL is left byte-for-byte untouched so that
// hand-maintained links keep their original parameter order.
func SetLanguage(rawURL, language string) string {
	if i := strings.Index(rawURL, "lan="); i >= 0 && (i == 0 || rawURL[i-1] == '?' || rawURL[i-1] == '&') {
		end := strings.IndexByte(rawURL[i:], '&')
		if end < 0 {
			return rawURL[:i] + "lan=" + language
		}
		return rawURL[:i] + "lan=" + language + rawURL[i+end:]
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "lan=" + language
}

// extractParam pulls one query value out of input using an ordered chain of
// fallible parses: a structured URL parse, then a bare query-string parse,
// then (for the layout value only) the substring before the first `&`. Each
// stage runs only when the previous one yielded nothing. The returned value
// is percent-decoded exactly once: the first two stages decode as part of
// query parsing; the bare stage decodes `%XX` sequences itself, where a `+`
// is a literal key rather than a space and invalid escapes leave the text
// as-is.
func extractParam(input, key string, bareFallback bool) string {
	if u, err := url.Parse(input); err == nil && u.RawQuery != "" {
		if vals, err := url.ParseQuery(u.RawQuery); err == nil {
			if v := vals.Get(key); v != "" {
				return v
			}
		}
	}

	if vals, err := url.ParseQuery(input); err == nil {
		if v := vals.Get(key); v != "" {
			return v
		}
	}

	if !bareFallback {
		return ""
	}
	bare := input
	if i := strings.IndexByte(bare, '&'); i >= 0 {
		bare = bare[:i]
	}
	bare = strings.TrimPrefix(bare, key+"=")
	if decoded, err := url.PathUnescape(bare); err == nil {
		return decoded
	}
	return bare
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
