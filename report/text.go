// Package report formats scored transcripts as the classic text report,
// JSON, or PDF.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ughe/asreval/corpus"
	"github.com/ughe/asreval/score"
)

// Options selects the optional sections of the text report.
type Options struct {
	Confusions bool // Print the confusion tables
	Lengths    bool // Print mean error rate by reference length
	MinCount   int  // Hide confusions seen this many times or fewer
}

const rule = 60

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// WriteInstance prints one scored pair: its diff, when rendered, and the
// sentence counts next to the running totals.
func WriteInstance(w io.Writer, r *corpus.Result) error {
	p := &printer{w: w}
	if r.Diff != nil {
		p.printf("%s\n", strings.Repeat("=", rule))
		p.printf("REF: %s\n", r.Diff.Ref)
		p.printf("HYP: %s\n", r.Diff.Hyp)
	}
	if r.ID != "" {
		p.printf("SENTENCE %d  %s\n", r.Index, r.ID)
	} else {
		p.printf("SENTENCE %d\n", r.Index)
	}
	p.printf("Correct          = %s  %3d   (%6d)\n", percent(r.Counts.Matches, len(r.Ref)), r.Counts.Matches, r.Totals.Matches)
	p.printf("Errors           = %s  %3d   (%6d)\n", percent(r.Counts.Errors, len(r.Ref)), r.Counts.Errors, r.Totals.Errors)
	return p.err
}

func percent(n, d int) string {
	if d == 0 {
		return "  n/a "
	}
	return fmt.Sprintf("%5.1f%%", 100*float64(n)/float64(d))
}

// WriteSummary prints the selected tables followed by the corpus WRR and
// WER.
func WriteSummary(w io.Writer, s corpus.Summary, opts Options) error {
	p := &printer{w: w}
	if opts.Confusions && s.Confusions != nil && !s.Confusions.Empty() {
		writeConfusions(p, s.Confusions, opts.MinCount)
	}
	if opts.Lengths {
		writeLengths(p, s.Buckets)
	}
	if s.Defined {
		p.printf("WRR: %f %% (%10d / %10d)\n", s.WRR, s.Matches, s.RefTokens)
		p.printf("WER: %f %% (%10d / %10d)\n", s.WER, s.Errors, s.RefTokens)
	} else {
		p.printf("WRR: n/a (%10d / %10d)\n", s.Matches, s.RefTokens)
		p.printf("WER: n/a (%10d / %10d)\n", s.Errors, s.RefTokens)
	}
	return p.err
}

func writeConfusions(p *printer, c *score.Confusions, minCount int) {
	if len(c.Insertions) > 0 {
		p.printf("INSERTIONS:\n")
		for _, wc := range c.TopInsertions(minCount) {
			p.printf("%20s %10d\n", wc.Word, wc.Count)
		}
	}
	if len(c.Deletions) > 0 {
		p.printf("DELETIONS:\n")
		for _, wc := range c.TopDeletions(minCount) {
			p.printf("%20s %10d\n", wc.Word, wc.Count)
		}
	}
	if len(c.Substitutions) > 0 {
		p.printf("SUBSTITUTIONS:\n")
		for _, sc := range c.TopSubstitutions(minCount) {
			p.printf("%20s -> %20s   %10d\n", sc.Ref, sc.Hyp, sc.Count)
		}
	}
}

// writeLengths prints every length up to the longest reference. Lengths
// with no sentences print nan.
func writeLengths(p *printer, b corpus.Buckets) {
	for l := 0; l <= b.MaxLength(); l++ {
		if mean, ok := b.Mean(l); ok {
			p.printf("%5d %f\n", l, mean)
		} else {
			p.printf("%5d nan\n", l)
		}
	}
	p.printf("\n")
}
