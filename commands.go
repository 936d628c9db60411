package main

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/ergodata/layout.report/internal/config"
	"github.com/ergodata/layout.report/internal/dataset"
	"github.com/ergodata/layout.report/internal/db"
	"github.com/ergodata/layout.report/internal/deeplink"
	"github.com/ergodata/layout.report/internal/layout"
	"github.com/ergodata/layout.report/internal/playground"
	"github.com/ergodata/layout.report/internal/scoring"
)

// runIngest loads a scraped data file and upserts it into the catalog.
func runIngest(path string) {
	if path == "" {
		log.Fatal("ingest requires a data file path")
	}

	doc, err := dataset.Load(path)
	if err != nil {
		log.Fatalf("failed to load data file: %v", err)
	}

	database, err := db.NewDB(*dbFile)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	run, err := database.IngestDocument(doc, path)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}
	log.Printf("ingested %d layouts (%d metric rows) from %s, run %s", run.LayoutCount, run.MetricCount, path, run.RunID)
}

// runMigrate drives the embedded schema migrations without starting the
// server. Unlike serve and ingest it never migrates implicitly.
func runMigrate(args []string) {
	if len(args) == 0 {
		log.Fatal("migrate requires an action: up, down, version, or force <version>")
	}

	database, err := db.OpenDB(*dbFile)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	switch args[0] {
	case "up":
		if err := database.MigrateUp(); err != nil {
			log.Fatalf("migrate up failed: %v", err)
		}
		log.Print("migrations applied")
	case "down":
		if err := database.MigrateDown(); err != nil {
			log.Fatalf("migrate down failed: %v", err)
		}
		log.Print("rolled back one migration")
	case "version":
		version, dirty, err := database.MigrateVersion()
		if err != nil {
			log.Fatalf("migrate version failed: %v", err)
		}
		log.Printf("schema version %d (dirty=%v)", version, dirty)
	case "force":
		if len(args) < 2 {
			log.Fatal("migrate force requires a version number")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("invalid version %q: %v", args[1], err)
		}
		if err := database.MigrateForce(version); err != nil {
			log.Fatalf("migrate force failed: %v", err)
		}
		log.Printf("forced schema version to %d", version)
	default:
		log.Fatalf("unknown migrate action %q", args[0])
	}
}

// scoreWeights resolves the weight vector for the score command: preset
// first, then individual overrides on top, same as the API.
func scoreWeights() scoring.Weights {
	w := scoring.DefaultWeights()
	if *preset != "" {
		w = config.Preset(*preset)
	}
	if *weights != "" {
		state := deeplink.Parse(url.Values{"weights": []string{*weights}})
		w = w.Merge(state.Weights)
	}
	return w
}

// runScore prints the scored catalog for the configured language, best
// first.
func runScore() {
	database, err := db.NewDB(*dbFile)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	records, err := database.ListLayouts()
	if err != nil {
		log.Fatalf("failed to list layouts: %v", err)
	}
	if len(records) == 0 {
		log.Fatal("catalog is empty; run ingest first")
	}

	result := scoring.Score(scoring.Candidates(records, *language), scoreWeights())

	type row struct {
		name  string
		score float64
	}
	rows := make([]row, 0, len(result.Scores))
	for name, score := range result.Scores {
		rows = append(rows, row{name, score})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		return rows[i].name < rows[j].name
	})

	fmt.Printf("language=%s basis=%s layouts=%d\n", *language, result.Basis, len(rows))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%.1f\n", i+1, r.name, r.score)
	}
	w.Flush()
}

// runDecode prints the canonical key grid for a playground URL.
func runDecode(input string) {
	if input == "" {
		log.Fatal("decode requires a playground URL or layout string")
	}

	l := playground.Decode(input)
	flat := l.FlatArray()

	printHalf := func(label string, from int) {
		fmt.Printf("%-7s", label)
		for i := from; i < from+6; i++ {
			fmt.Printf(" %s", displayKey(flat[i]))
		}
		fmt.Printf("  |")
		for i := from + 6; i < from+12; i++ {
			fmt.Printf(" %s", displayKey(flat[i]))
		}
		fmt.Println()
	}
	printHalf("top", 0)
	printHalf("home", 12)
	printHalf("bottom", 24)

	fmt.Printf("thumbs  %s %s  |  %s %s\n",
		displayKey(flat[layout.LeftOuterThumbIndex]),
		displayKey(flat[layout.LeftInnerThumbIndex]),
		displayKey(flat[layout.RightInnerThumbIndex]),
		displayKey(flat[layout.RightOuterThumbIndex]))
	fmt.Printf("has_thumb=%v\n", l.HasThumbKeys())
}

// runEncode builds a layout from a string of keys in canonical slot order
// and prints its playground encoding. Underscores mark blank slots.
func runEncode(keys string) {
	if keys == "" {
		log.Fatal("encode requires a key string (underscore for blank slots)")
	}

	l := layout.New()
	i := 0
	for _, ch := range keys {
		if i >= layout.NumKeys {
			log.Fatalf("too many keys: at most %d allowed", layout.NumKeys)
		}
		if ch != '_' {
			l.SetKeyAt(i, ch)
		}
		i++
	}

	encoded, side := playground.Encode(l)
	fmt.Printf("layout=%s\n", encoded)
	if side != "" {
		fmt.Printf("thumb=%s\n", side)
	}
	fmt.Printf("url=%s\n", playground.URL(l, *language))
}

func displayKey(ch rune) string {
	if ch == layout.Blank {
		return "·"
	}
	return string(ch)
}
