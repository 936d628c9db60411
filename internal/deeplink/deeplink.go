// Package deeplink parses and formats the catalog UI's shareable query
// parameters. Parsing never fails: unrecognized or malformed values fall
// back to zero values so an old or mangled link still opens the catalog.
package deeplink

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// State is the UI state carried in a deep link.
type State struct {
	Lang      string
	Mode      string
	Search    string
	Preset    string
	Weights   map[string]int // metric name -> weight, from "k1:v1,k2:v2,..."
	Highlight string
	Pinned    []string
	Known     []string
	Target    string
	Wordset   string
}

// Parse extracts a State from raw query parameters.
func Parse(vals url.Values) State {
	return State{
		Lang:      vals.Get("lang"),
		Mode:      vals.Get("mode"),
		Search:    vals.Get("search"),
		Preset:    vals.Get("preset"),
		Weights:   parseWeights(vals.Get("weights")),
		Highlight: vals.Get("highlight"),
		Pinned:    splitList(vals.Get("pinned")),
		Known:     splitList(vals.Get("known")),
		Target:    vals.Get("target"),
		Wordset:   vals.Get("wordset"),
	}
}

// ParseQuery parses a raw query string into a State. A malformed query
// yields the zero State.
func ParseQuery(rawQuery string) State {
	vals, err := url.ParseQuery(rawQuery)
	if err != nil {
		return State{}
	}
	return Parse(vals)
}

// Values renders the State back into query parameters, omitting zero
// fields. Weight keys are emitted sorted so links are deterministic.
func (s State) Values() url.Values {
	vals := url.Values{}
	set := func(key, v string) {
		if v != "" {
			vals.Set(key, v)
		}
	}
	set("lang", s.Lang)
	set("mode", s.Mode)
	set("search", s.Search)
	set("preset", s.Preset)
	set("weights", formatWeights(s.Weights))
	set("highlight", s.Highlight)
	set("pinned", strings.Join(s.Pinned, ","))
	set("known", strings.Join(s.Known, ","))
	set("target", s.Target)
	set("wordset", s.Wordset)
	return vals
}

// parseWeights decodes the "k1:v1,k2:v2" weight encoding. Entries without a
// colon, with an unparseable value, or outside [0,100] are skipped.
func parseWeights(s string) map[string]int {
	if s == "" {
		return nil
	}
	out := make(map[string]int)
	for _, pair := range strings.Split(s, ",") {
		key, val, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil || v < 0 || v > 100 {
			continue
		}
		out[strings.TrimSpace(key)] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func formatWeights(w map[string]int) string {
	if len(w) == 0 {
		return ""
	}
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+strconv.Itoa(w[k]))
	}
	return strings.Join(parts, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
