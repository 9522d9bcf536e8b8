package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ughe/asreval/corpus"
	"github.com/ughe/asreval/metrics"
	"github.com/ughe/asreval/report"
)

const (
	maxRequestBytes = 8 << 20
	// Largest alignment table built for one pair
	maxRequestCells = 4 << 20
)

type scoreRequest struct {
	Reference  string `json:"reference"`
	Hypothesis string `json:"hypothesis"`
	Lines      bool   `json:"lines"`     // Score the texts as line paired corpora
	HasIDs     bool   `json:"ids"`       // Lines end with an utterance id
	MergeGaps  bool   `json:"group"`     // Coalesce adjacent error runs
	MinCount   int    `json:"min_count"` // Confusion filter for the response
}

// scorer serves scoring requests. Every request gets its own session;
// totals accumulates all of them for /api/summary.
type scorer struct {
	mu     sync.Mutex
	totals *corpus.Session
}

func newScorer() *scorer {
	return &scorer{totals: corpus.NewSession(corpus.Options{Confusions: true})}
}

func (sc *scorer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("POST /api/score", sc.handleScore)
	mux.HandleFunc("GET /api/summary", sc.handleSummary)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (sc *scorer) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		metrics.RequestErrors.WithLabelValues("decode").Inc()
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	start := time.Now()
	s := corpus.NewSession(corpus.Options{
		HasIDs:     req.HasIDs,
		Confusions: true,
		Diff:       true,
		MergeGaps:  req.MergeGaps,
		MaxCells:   maxRequestCells,
	})
	var results []*corpus.Result
	collect := func(res *corpus.Result) error {
		results = append(results, res)
		return nil
	}
	var err error
	if req.Lines {
		err = s.Run(r.Context(), strings.NewReader(req.Reference), strings.NewReader(req.Hypothesis), collect)
	} else {
		var res *corpus.Result
		if res, err = s.Score(1, req.Reference, req.Hypothesis); err == nil {
			err = collect(res)
		}
	}
	if err != nil {
		var mismatch *corpus.IdentifierMismatchError
		switch {
		case errors.As(err, &mismatch), errors.Is(err, corpus.ErrMissingIdentifier):
			metrics.RequestErrors.WithLabelValues("identifier").Inc()
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, corpus.ErrPairTooLarge):
			metrics.RequestErrors.WithLabelValues("too_large").Inc()
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		default:
			metrics.RequestErrors.WithLabelValues("score").Inc()
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	for _, res := range results {
		metrics.Observe(res)
	}
	summary := s.Summary()
	metrics.ObserveRun(summary, time.Since(start))

	sc.mu.Lock()
	sc.totals.Merge(s)
	sc.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := report.WriteJSON(w, report.NewJSON(summary, req.MinCount, results)); err != nil {
		log.Printf("[WARN] write response: %v", err)
	}
}

func (sc *scorer) handleSummary(w http.ResponseWriter, r *http.Request) {
	minCount := 0
	sc.mu.Lock()
	j := report.NewJSON(sc.totals.Summary(), minCount, nil)
	sc.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	if err := report.WriteJSON(w, j); err != nil {
		log.Printf("[WARN] write response: %v", err)
	}
}

func serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: newScorer().routes()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	log.Printf("Serving HTTP on http://0.0.0.0%s/ ...\n", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
