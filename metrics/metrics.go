// Package metrics exposes Prometheus collectors for the scoring service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/ughe/asreval/corpus"
)

var (
	PairsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "asreval_pairs_total",
		Help: "Transcript pairs scored",
	})

	RefTokensTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "asreval_ref_tokens_total",
		Help: "Reference tokens scored",
	})

	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "asreval_errors_total",
		Help: "Scored errors by kind",
	}, []string{"kind"})

	SentenceWER = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "asreval_sentence_wer",
		Help:    "Per-sentence error rate of pairs with a non-empty reference",
		Buckets: []float64{0, 0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1.0, 1.5, 2.0},
	})

	WERLatest = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "asreval_wer_latest",
		Help: "Corpus WER percentage of the most recent scoring request",
	})

	ScoreDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "asreval_score_duration_seconds",
		Help:    "Time to score one request",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
	})

	RequestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "asreval_request_errors_total",
		Help: "Rejected scoring requests by reason",
	}, []string{"reason"})
)

// Observe records one scored pair.
func Observe(r *corpus.Result) {
	PairsTotal.Inc()
	RefTokensTotal.Add(float64(len(r.Ref)))
	ErrorsTotal.WithLabelValues("substitution").Add(float64(r.Counts.Substitutions))
	ErrorsTotal.WithLabelValues("insertion").Add(float64(r.Counts.Insertions))
	ErrorsTotal.WithLabelValues("deletion").Add(float64(r.Counts.Deletions))
	if r.RateOK {
		SentenceWER.Observe(r.Rate)
	}
}

// ObserveRun records the outcome of one request.
func ObserveRun(s corpus.Summary, elapsed time.Duration) {
	ScoreDuration.Observe(elapsed.Seconds())
	if s.Defined {
		WERLatest.Set(s.WER)
	}
}
