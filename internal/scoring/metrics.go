package scoring

import "github.com/ergodata/layout.report/internal/dataset"

// ExtractFeatures reduces a raw per-language metric record to the seven
// weighted features. Rolls counts inward rolls only (bigram and trigram);
// outward rolls are less comfortable and deliberately excluded from the
// credit. Missing or unparseable metrics extract to 0.
func ExtractFeatures(m dataset.Metrics) Features {
	return Features{
		SFB:      m.SameFingerBigram.Float(),
		SFS:      m.SkipBigrams1U.Float(),
		LSB:      m.LatStretch.Float(),
		Scissors: m.Scissors.Float(),
		Rolls:    m.BigramRollIn.Float() + m.RollIn.Float(),
		Redirect: m.Redirect.Float(),
		Pinky:    m.PinkyOff.Float(),
	}
}

// Candidates builds the scoring input for one language from catalog
// records. Records without any metrics for the language still participate,
// with all features 0, matching the tolerant handling everywhere else.
func Candidates(records []dataset.LayoutRecord, language string) []Candidate {
	out := make([]Candidate, 0, len(records))
	for i := range records {
		out = append(out, Candidate{
			Name:     records[i].Name,
			Features: ExtractFeatures(records[i].MetricsFor(language)),
		})
	}
	return out
}
