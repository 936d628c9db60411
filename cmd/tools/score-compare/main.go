// Command score-compare visualises how stable the ranking of two layouts is
// as the rest of the catalog is added to the comparison, under the anchored
// and min-max normalizations. It writes one PNG per normalization and prints
// the crossover counts; the anchored plot should show zero crossovers.
//
// Usage:
//
//	go run ./cmd/tools/score-compare -data site/data.json -a graphite -b octa8
//
// Flags:
//
//	-data  Path to a scraped data file (default: data.json)
//	-lan   Language to score (default: english)
//	-a     First layout name (default: graphite)
//	-b     Second layout name (default: octa8)
//	-sims  Number of random insertion orders (default: 10)
//	-seed  RNG seed (default: 42)
//	-out   Output directory for the PNGs (default: .)
package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/ergodata/layout.report/internal/charts"
	"github.com/ergodata/layout.report/internal/dataset"
	"github.com/ergodata/layout.report/internal/scoring"
)

func main() {
	dataPath := flag.String("data", "data.json", "Path to a scraped data file")
	lang := flag.String("lan", "english", "Language to score")
	nameA := flag.String("a", "graphite", "First layout name")
	nameB := flag.String("b", "octa8", "Second layout name")
	sims := flag.Int("sims", 10, "Number of random insertion orders")
	seed := flag.Int64("seed", 42, "RNG seed")
	outDir := flag.String("out", ".", "Output directory for the PNGs")
	flag.Parse()

	doc, err := dataset.Load(*dataPath)
	if err != nil {
		log.Fatalf("Failed to load data file: %v", err)
	}
	log.Printf("Loaded %d layouts from %s", len(doc.Layouts), *dataPath)

	candidates := scoring.Candidates(doc.Layouts, *lang)
	report, err := scoring.SimulateStability(candidates, scoring.DefaultWeights(), *nameA, *nameB, *sims, *seed)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	log.Printf("anchored: %d crossovers across %d simulations", report.Anchored.Crossovers, *sims)
	log.Printf("minmax:   %d crossovers across %d simulations", report.MinMax.Crossovers, *sims)

	anchoredPath := filepath.Join(*outDir, "stability_anchored.png")
	if err := charts.SaveStabilityPlot(report.Anchored, report.LayoutA, report.LayoutB, anchoredPath); err != nil {
		log.Fatalf("Failed to write anchored plot: %v", err)
	}
	minmaxPath := filepath.Join(*outDir, "stability_minmax.png")
	if err := charts.SaveStabilityPlot(report.MinMax, report.LayoutA, report.LayoutB, minmaxPath); err != nil {
		log.Fatalf("Failed to write minmax plot: %v", err)
	}
	log.Printf("Wrote %s and %s", anchoredPath, minmaxPath)
}
