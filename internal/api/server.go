// Package api is the catalog's HTTP JSON surface: scored layout listings,
// single-layout lookups, and the playground codec exposed as endpoints.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/ergodata/layout.report/internal/config"
	"github.com/ergodata/layout.report/internal/db"
	"github.com/ergodata/layout.report/internal/deeplink"
	"github.com/ergodata/layout.report/internal/httputil"
	"github.com/ergodata/layout.report/internal/layout"
	"github.com/ergodata/layout.report/internal/playground"
	"github.com/ergodata/layout.report/internal/scoring"
)

// DefaultLanguage is assumed when a request does not name one.
const DefaultLanguage = "english"

type Server struct {
	db   *db.DB
	lang string
}

func NewServer(database *db.DB, defaultLang string) *Server {
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}
	return &Server{db: database, lang: defaultLang}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/layouts", s.listLayouts)
	mux.HandleFunc("/layout", s.getLayout)
	mux.HandleFunc("/languages", s.listLanguages)
	mux.HandleFunc("/status", s.status)
	mux.HandleFunc("/presets", s.listPresets)
	mux.HandleFunc("/decode", s.decodeLayout)
	mux.HandleFunc("/encode", s.encodeLayout)
	mux.HandleFunc("/", s.homeHandler)
	return mux
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Welcome to the Layout Catalog Server!"))
}

// resolveRequest extracts language and weights from the shared deep-link
// parameters: preset first, then individual weight overrides on top.
func (s *Server) resolveRequest(r *http.Request) (string, scoring.Weights) {
	state := deeplink.Parse(r.URL.Query())

	lang := state.Lang
	if lang == "" {
		lang = s.lang
	}

	weights := scoring.DefaultWeights()
	if state.Preset != "" {
		weights = config.Preset(state.Preset)
	}
	return lang, weights.Merge(state.Weights)
}

// ScoredLayout is one row of the catalog listing.
type ScoredLayout struct {
	Name    string  `json:"name"`
	URL     string  `json:"url"`
	Website string  `json:"website,omitempty"`
	Year    int     `json:"year,omitempty"`
	Family  string  `json:"family,omitempty"`
	Thumb   bool    `json:"thumb"`
	Score   float64 `json:"score"`
}

type layoutsResponse struct {
	Language string         `json:"language"`
	Basis    scoring.Basis  `json:"basis"`
	Layouts  []ScoredLayout `json:"layouts"`
}

func (s *Server) listLayouts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	lang, weights := s.resolveRequest(r)

	records, err := s.db.ListLayouts()
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list layouts: %v", err))
		return
	}
	if len(records) == 0 {
		httputil.NotFound(w, "catalog is empty; run ingest first")
		return
	}

	result := scoring.Score(scoring.Candidates(records, lang), weights)

	resp := layoutsResponse{Language: lang, Basis: result.Basis}
	for _, rec := range records {
		// stored URLs point at the scraped language; retarget them to the
		// requested one
		u := rec.URL
		if u != "" {
			u = playground.SetLanguage(u, lang)
		}
		resp.Layouts = append(resp.Layouts, ScoredLayout{
			Name:    rec.Name,
			URL:     u,
			Website: rec.Website,
			Year:    rec.Year,
			Family:  rec.Family,
			Thumb:   rec.Thumb,
			Score:   result.Scores[rec.Name],
		})
	}
	sort.SliceStable(resp.Layouts, func(i, j int) bool {
		return resp.Layouts[i].Score > resp.Layouts[j].Score
	})

	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		httputil.BadRequest(w, "name parameter is required")
		return
	}

	rec, err := s.db.GetLayout(name)
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (s *Server) listLanguages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	langs, err := s.db.Languages()
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list languages: %v", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"languages": langs})
}

// statusResponse reports catalog freshness; last_ingest is null until the
// first ingest.
type statusResponse struct {
	LastIngest *db.IngestRun `json:"last_ingest"`
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	run, err := s.db.LastIngestRun()
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to read last ingest run: %v", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statusResponse{LastIngest: run})
}

func (s *Server) listPresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, config.Presets)
}

// decodeResponse exposes a decoded layout as the canonical flat array.
type decodeResponse struct {
	Keys     []string `json:"keys"`
	HasThumb bool     `json:"has_thumb"`
}

func (s *Server) decodeLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	input := r.URL.Query().Get("url")
	if input == "" {
		httputil.BadRequest(w, "url parameter is required")
		return
	}

	l := playground.Decode(input)
	flat := l.FlatArray()
	keys := make([]string, len(flat))
	for i, ch := range flat {
		keys[i] = string(ch)
	}
	httputil.WriteJSON(w, http.StatusOK, decodeResponse{Keys: keys, HasThumb: l.HasThumbKeys()})
}

type encodeRequest struct {
	Keys     []string `json:"keys"`
	Language string   `json:"language,omitempty"`
}

type encodeResponse struct {
	Layout string `json:"layout"`
	Thumb  string `json:"thumb,omitempty"`
	URL    string `json:"url"`
}

func (s *Server) encodeLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var req encodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(req.Keys) > layout.NumKeys {
		httputil.BadRequest(w, fmt.Sprintf("at most %d keys allowed, got %d", layout.NumKeys, len(req.Keys)))
		return
	}

	l := layout.New()
	for i, k := range req.Keys {
		for _, ch := range k {
			l.SetKeyAt(i, ch)
			break
		}
	}

	encoded, side := playground.Encode(l)
	httputil.WriteJSON(w, http.StatusOK, encodeResponse{
		Layout: encoded,
		Thumb:  side,
		URL:    playground.URL(l, req.Language),
	})
}
