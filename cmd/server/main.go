// Command server converts the source dictionary at startup and exposes the
// result as a JSON lookup API.
//
// Endpoints:
//
//	GET  /api/analyze?form=<word>
//	POST /api/analyze/text   body: {"text":"..."}
//	GET  /api/lemma?word=<headword>
//	GET  /api/grammemes
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/rs/cors"

	isv "github.com/bt2901/interslavic-utils"
	"github.com/bt2901/interslavic-utils/internal/app"
	"github.com/bt2901/interslavic-utils/internal/config"
)

// ---- JSON response types ------------------------------------------------

type analyzeResponse struct {
	Form     string         `json:"form"`
	Analyses []isv.Analysis `json:"analyses"`
}

type analyzeTextResponse struct {
	Results []isv.TokenResult `json:"results"`
}

type lemmaResponse struct {
	Word   string           `json:"word"`
	Lemmas []*isv.LemmaNode `json:"lemmas"`
}

type grammemesResponse struct {
	Grammemes []isv.GrammemeNode `json:"grammemes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// ---- handlers -----------------------------------------------------------

func handleAnalyze(idx *isv.Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		form := r.URL.Query().Get("form")
		if form == "" {
			writeError(w, http.StatusBadRequest, "missing 'form' query parameter")
			return
		}
		analyses := idx.Analyze(form)
		status := http.StatusOK
		if len(analyses) == 0 {
			status = http.StatusNotFound
		}
		writeJSON(w, status, analyzeResponse{Form: form, Analyses: analyses})
	}
}

func handleAnalyzeText(idx *isv.Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
			writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
			return
		}
		writeJSON(w, http.StatusOK, analyzeTextResponse{Results: idx.AnalyzeText(body.Text)})
	}
}

func handleLemma(idx *isv.Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		word := r.URL.Query().Get("word")
		if word == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		lemmas := idx.Paradigm(word)
		if len(lemmas) == 0 {
			writeError(w, http.StatusNotFound, fmt.Sprintf("lemma %q not found", word))
			return
		}
		writeJSON(w, http.StatusOK, lemmaResponse{Word: word, Lemmas: lemmas})
	}
}

func handleGrammemes(idx *isv.Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		writeJSON(w, http.StatusOK, grammemesResponse{Grammemes: idx.Grammemes()})
	}
}

func newMux(idx *isv.Index) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze/text", handleAnalyzeText(idx))
	mux.HandleFunc("/api/analyze", handleAnalyze(idx))
	mux.HandleFunc("/api/lemma", handleLemma(idx))
	mux.HandleFunc("/api/grammemes", handleGrammemes(idx))
	return mux
}

// ---- main ---------------------------------------------------------------

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	addrFlag := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}

	logger.Info("loading dictionary", slog.String("source", cfg.Convert.SourcePath))
	tagSet, err := isv.LoadTagSet(cfg.Convert.MappingPath)
	if err != nil {
		logger.Error("load grammemes", slog.String("error", err.Error()))
		os.Exit(1)
	}
	dict, err := isv.Load(cfg.Convert.SourcePath, isv.Options{
		Logger: logger,
		Merge:  cfg.Convert.MergePolicy(),
	})
	if err != nil {
		logger.Error("load dictionary", slog.String("error", err.Error()))
		os.Exit(1)
	}
	idx := isv.NewIndex(dict, tagSet)
	logger.Info("dictionary loaded", slog.Int("lemmas", dict.Len()), slog.Int("forms", idx.Size()))

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.Origins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(newMux(idx))

	logger.Info("listening", slog.String("addr", cfg.Server.Addr))
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
