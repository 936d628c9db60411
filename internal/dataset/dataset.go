// Package dataset models the pre-built catalog data file produced by the
// stats scraper: a set of layouts, each with per-language ergonomics
// metrics, plus the language list and scrape timestamp. The file is an
// external collaborator's output and is read-only input here.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MetricValue is one raw metric as delivered by the scraper: either a
// decimal percentage string like "4.38%" or a plain number. The zero value
// means the metric is absent.
type MetricValue string

// UnmarshalJSON accepts a JSON string, number, or null.
func (m *MetricValue) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*m = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*m = MetricValue(v)
		return nil
	}
	// Bare number; keep its textual form.
	*m = MetricValue(s)
	return nil
}

// MarshalJSON emits the raw textual form as a JSON string, or null when
// absent, matching what the scraper writes.
func (m MetricValue) MarshalJSON() ([]byte, error) {
	if m == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(m))
}

// Float parses the metric, stripping a trailing percent sign. Missing or
// unparseable values yield 0; tolerating dirty community data is a
// functional requirement, not an oversight.
func (m MetricValue) Float() float64 {
	s := strings.TrimSuffix(strings.TrimSpace(string(m)), "%")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// IsSet reports whether the scraper delivered a value for this metric.
func (m MetricValue) IsSet() bool { return m != "" }

// Metrics is the per-language measurement record for one layout. Every
// field is optional; the names mirror the scraper's output keys.
type Metrics struct {
	TotalWordEffort  MetricValue `json:"total_word_effort,omitempty"`
	Effort           MetricValue `json:"effort,omitempty"`
	SameFingerBigram MetricValue `json:"same_finger_bigrams,omitempty"`
	SkipBigrams1U    MetricValue `json:"skip_bigrams_1u,omitempty"`
	SkipBigrams2U    MetricValue `json:"skip_bigrams_2u,omitempty"`
	LatStretch       MetricValue `json:"lat_stretch_bigrams,omitempty"`
	Scissors         MetricValue `json:"scissors,omitempty"`
	PinkyOff         MetricValue `json:"pinky_off,omitempty"`
	BigramRollIn     MetricValue `json:"bigram_roll_in,omitempty"`
	BigramRollOut    MetricValue `json:"bigram_roll_out,omitempty"`
	RollIn           MetricValue `json:"roll_in,omitempty"`
	RollOut          MetricValue `json:"roll_out,omitempty"`
	Redirect         MetricValue `json:"redirect,omitempty"`
	WeakRedirect     MetricValue `json:"weak_redirect,omitempty"`
	Alt              MetricValue `json:"alt,omitempty"`
	AltSFS           MetricValue `json:"alt_sfs,omitempty"`
}

// metricFields maps storage keys to struct field accessors, in the
// scraper's output order.
var metricFields = []struct {
	key string
	get func(*Metrics) *MetricValue
}{
	{"total_word_effort", func(m *Metrics) *MetricValue { return &m.TotalWordEffort }},
	{"effort", func(m *Metrics) *MetricValue { return &m.Effort }},
	{"same_finger_bigrams", func(m *Metrics) *MetricValue { return &m.SameFingerBigram }},
	{"skip_bigrams_1u", func(m *Metrics) *MetricValue { return &m.SkipBigrams1U }},
	{"skip_bigrams_2u", func(m *Metrics) *MetricValue { return &m.SkipBigrams2U }},
	{"lat_stretch_bigrams", func(m *Metrics) *MetricValue { return &m.LatStretch }},
	{"scissors", func(m *Metrics) *MetricValue { return &m.Scissors }},
	{"pinky_off", func(m *Metrics) *MetricValue { return &m.PinkyOff }},
	{"bigram_roll_in", func(m *Metrics) *MetricValue { return &m.BigramRollIn }},
	{"bigram_roll_out", func(m *Metrics) *MetricValue { return &m.BigramRollOut }},
	{"roll_in", func(m *Metrics) *MetricValue { return &m.RollIn }},
	{"roll_out", func(m *Metrics) *MetricValue { return &m.RollOut }},
	{"redirect", func(m *Metrics) *MetricValue { return &m.Redirect }},
	{"weak_redirect", func(m *Metrics) *MetricValue { return &m.WeakRedirect }},
	{"alt", func(m *Metrics) *MetricValue { return &m.Alt }},
	{"alt_sfs", func(m *Metrics) *MetricValue { return &m.AltSFS }},
}

// MetricKeys lists the known metric storage keys in canonical order.
func MetricKeys() []string {
	keys := make([]string, len(metricFields))
	for i, f := range metricFields {
		keys[i] = f.key
	}
	return keys
}

// Fields returns the set metrics as key/raw-value pairs, for row-per-metric
// storage.
func (m *Metrics) Fields() map[string]string {
	out := make(map[string]string)
	for _, f := range metricFields {
		if v := *f.get(m); v.IsSet() {
			out[f.key] = string(v)
		}
	}
	return out
}

// SetField assigns a metric by its storage key. Unknown keys are reported
// but otherwise ignored so newer data files remain loadable.
func (m *Metrics) SetField(key, value string) bool {
	for _, f := range metricFields {
		if f.key == key {
			*f.get(m) = MetricValue(value)
			return true
		}
	}
	return false
}

// LayoutRecord is one catalog entry: identity, playground link, and metrics
// keyed by language.
type LayoutRecord struct {
	Name    string             `json:"name"`
	URL     string             `json:"url"`
	Thumb   bool               `json:"thumb"`
	Website string             `json:"website,omitempty"`
	Year    int                `json:"year,omitempty"`
	Family  string             `json:"family,omitempty"`
	Metrics map[string]Metrics `json:"metrics"`
}

// MetricsFor returns the record's metrics for a language, or a zero record
// when the language was never scraped for this layout.
func (r *LayoutRecord) MetricsFor(language string) Metrics {
	return r.Metrics[language]
}

// Document is the root of the data file.
type Document struct {
	ScrapedAt string         `json:"scraped_at"`
	Languages []string       `json:"languages"`
	Layouts   []LayoutRecord `json:"layouts"`
}

// maxFileSize caps the data file read for safety (the real catalog is well
// under 1MB).
const maxFileSize = 16 * 1024 * 1024

// Load reads and validates a data file.
func Load(path string) (*Document, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("data file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat data file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("data file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid data file: %w", err)
	}
	return &doc, nil
}

// Validate checks the document's structural requirements. Metric values are
// deliberately not validated here; imperfect per-metric data degrades at
// scoring time instead of rejecting the whole catalog.
func (d *Document) Validate() error {
	if len(d.Layouts) == 0 {
		return fmt.Errorf("no layouts in document")
	}
	seen := make(map[string]bool, len(d.Layouts))
	for i, l := range d.Layouts {
		if l.Name == "" {
			return fmt.Errorf("layout %d has no name", i)
		}
		if seen[l.Name] {
			return fmt.Errorf("duplicate layout name %q", l.Name)
		}
		seen[l.Name] = true
	}
	return nil
}
