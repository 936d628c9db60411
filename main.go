package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ergodata/layout.report/internal/api"
	"github.com/ergodata/layout.report/internal/charts"
	"github.com/ergodata/layout.report/internal/db"
)

var (
	devMode  = flag.Bool("dev", false, "Run in dev mode")
	listen   = flag.String("listen", ":8080", "Listen address")
	dbFile   = flag.String("db", "catalog.db", "Path to the catalog database")
	language = flag.String("lan", api.DefaultLanguage, "Default language for scoring")
	preset   = flag.String("preset", "", "Named weight preset for the score command")
	weights  = flag.String("weights", "", "Weight overrides for the score command, e.g. sfb:100,rolls:0")
)

func main() {
	flag.Parse()

	switch cmd := flag.Arg(0); cmd {
	case "", "serve":
		runServe()
	case "ingest":
		runIngest(flag.Arg(1))
	case "migrate":
		runMigrate(flag.Args()[1:])
	case "score":
		runScore()
	case "decode":
		runDecode(flag.Arg(1))
	case "encode":
		runEncode(flag.Arg(1))
	default:
		log.Fatalf("unknown command %q (want serve, ingest, migrate, score, decode, or encode)", cmd)
	}
}

func runServe() {
	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	database, err := db.NewDB(*dbFile)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if run, err := database.LastIngestRun(); err != nil {
		log.Printf("failed to read last ingest run: %v", err)
	} else if run == nil {
		log.Print("catalog is empty; run ingest to populate it")
	} else {
		log.Printf("catalog last ingested from %s: %d layouts, %d metric rows (run %s)",
			run.Source, run.LayoutCount, run.MetricCount, run.RunID)
	}

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := http.NewServeMux()

		// mount the admin debugging routes (accessible only in dev mode or
		// over Tailscale)
		database.AttachAdminRoutes(mux)

		// mount the chart handlers over the same catalog
		charts.NewWebServer(database, *language).AttachChartRoutes(mux)

		// create a new API server instance over the database and mount the
		// API handlers
		apiMux := api.NewServer(database, *language).ServeMux()
		mux.Handle("/api/", http.StripPrefix("/api", apiMux))

		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintln(w, "layout.report catalog server; API under /api/, charts under /charts/")
		})

		// per-request logging is noisy; only wanted while iterating locally
		var h http.Handler = mux
		if *devMode {
			h = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				log.Printf("got request %q", r.URL.Path)
				mux.ServeHTTP(w, r)
			})
		}

		server := &http.Server{
			Addr:    *listen,
			Handler: h,
		}

		// Start server in a goroutine so it doesn't block
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		// Wait for context cancellation to shut down server
		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		// Create a shutdown context with a timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}

		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
