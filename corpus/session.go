// Package corpus scores line paired reference and hypothesis transcripts
// and aggregates the counts over a whole run.
package corpus

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/ughe/asreval/align"
	"github.com/ughe/asreval/diff"
	"github.com/ughe/asreval/score"
	"github.com/ughe/asreval/transcript"
)

type Options struct {
	HasIDs     bool                 // Last token of every line is an utterance id
	Confusions bool                 // Tally inserted, deleted and substituted words
	Diff       bool                 // Render each pair
	MergeGaps  bool                 // Coalesce adjacent error runs into one replace
	Strict     bool                 // Fail when the transcripts differ in line count
	Workers    int                  // Align pairs on this many goroutines
	MaxCells   int                  // Reject pairs with len(ref)*len(hyp) above this; 0 is no limit
	Tokenize   transcript.Tokenizer // Defaults to transcript.Words
	Logger     *log.Logger          // Defaults to log.Default()
}

// Totals are the running counts of a run. WER and WRR come from these,
// not from averaging sentence rates.
type Totals struct {
	Sentences int `json:"sentences"`
	RefTokens int `json:"ref_tokens"`
	score.Counts
}

// WER is 100 * Errors / RefTokens. ok is false with no reference tokens.
func (t Totals) WER() (wer float64, ok bool) {
	if t.RefTokens == 0 {
		return 0, false
	}
	return 100 * float64(t.Errors) / float64(t.RefTokens), true
}

// WRR is 100 * Matches / RefTokens. ok is false with no reference tokens.
func (t Totals) WRR() (wrr float64, ok bool) {
	if t.RefTokens == 0 {
		return 0, false
	}
	return 100 * float64(t.Matches) / float64(t.RefTokens), true
}

func (t *Totals) add(o Totals) {
	t.Sentences += o.Sentences
	t.RefTokens += o.RefTokens
	t.Counts.Add(o.Counts)
}

// Result is one scored pair.
type Result struct {
	Index   int            `json:"sentence"`
	ID      string         `json:"id,omitempty"`
	Ref     []string       `json:"ref"`
	Hyp     []string       `json:"hyp"`
	Opcodes []align.Opcode `json:"opcodes"`
	Counts  score.Counts   `json:"counts"`
	Diff    *diff.Lines    `json:"diff,omitempty"`
	// Rate is Errors / len(Ref). RateOK is false for an empty reference.
	Rate   float64 `json:"rate"`
	RateOK bool    `json:"rate_defined"`
	// Totals are the running totals including this pair.
	Totals Totals `json:"-"`
}

// Session owns the state of one evaluation run. It is not safe for
// concurrent use; Run parallelizes alignment but records results on the
// calling goroutine.
type Session struct {
	ID         string
	opts       Options
	totals     Totals
	buckets    Buckets
	confusions *score.Confusions
	empty      int
	dropped    int
}

func NewSession(opts Options) *Session {
	if opts.Tokenize == nil {
		opts.Tokenize = transcript.Words
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	s := &Session{
		ID:      uuid.NewString(),
		opts:    opts,
		buckets: make(Buckets),
	}
	if opts.Confusions {
		s.confusions = score.NewConfusions()
	}
	return s
}

// Score aligns one pair of raw lines and adds it to the session. index is
// the 1-based sentence number used in errors and reports.
func (s *Session) Score(index int, refLine, hypLine string) (*Result, error) {
	r, err := s.align(index, refLine, hypLine)
	if err != nil {
		return nil, err
	}
	s.record(r)
	return r, nil
}

// align computes a Result without touching the session, so it may run on
// any goroutine.
func (s *Session) align(index int, refLine, hypLine string) (*Result, error) {
	r := &Result{Index: index}
	if s.opts.HasIDs {
		var refID, hypID string
		var refOK, hypOK bool
		refLine, refID, refOK = transcript.SplitLineID(refLine)
		hypLine, hypID, hypOK = transcript.SplitLineID(hypLine)
		if !refOK || !hypOK {
			return nil, fmt.Errorf("line %d: %w", index, ErrMissingIdentifier)
		}
		if refID != hypID {
			return nil, &IdentifierMismatchError{index, refID, hypID}
		}
		r.ID = refID
	}
	r.Ref = s.opts.Tokenize(refLine)
	r.Hyp = s.opts.Tokenize(hypLine)
	if s.opts.MaxCells > 0 && int64(len(r.Ref))*int64(len(r.Hyp)) > int64(s.opts.MaxCells) {
		return nil, fmt.Errorf("line %d: %d x %d tokens: %w", index, len(r.Ref), len(r.Hyp), ErrPairTooLarge)
	}

	a := align.Align(r.Ref, r.Hyp)
	r.Counts = score.Classify(a)
	r.Opcodes = a.Opcodes
	if s.opts.MergeGaps {
		r.Opcodes = align.MergeGaps(r.Opcodes)
	}
	if s.opts.Diff {
		lines := diff.Render(r.Opcodes, r.Ref, r.Hyp)
		r.Diff = &lines
	}
	if len(r.Ref) > 0 {
		r.Rate = float64(r.Counts.Errors) / float64(len(r.Ref))
		r.RateOK = true
	}
	return r, nil
}

func (s *Session) record(r *Result) {
	s.totals.add(Totals{Sentences: 1, RefTokens: len(r.Ref), Counts: r.Counts})
	if s.confusions != nil {
		s.confusions.Accumulate(r.Opcodes, r.Ref, r.Hyp)
	}
	// Empty references have no rate and stay out of the length table
	if r.RateOK {
		s.buckets.Add(len(r.Ref), r.Rate)
	} else {
		s.empty++
	}
	r.Totals = s.totals
}

// Merge folds the counts of o into s. o is left unchanged.
func (s *Session) Merge(o *Session) {
	s.totals.add(o.totals)
	s.buckets.merge(o.buckets)
	if s.confusions != nil && o.confusions != nil {
		s.confusions.Merge(o.confusions)
	}
	s.empty += o.empty
	s.dropped += o.dropped
}

func (s *Session) Totals() Totals {
	return s.totals
}

func (s *Session) Buckets() Buckets {
	return s.buckets
}

// Confusions is nil unless Options.Confusions is set.
func (s *Session) Confusions() *score.Confusions {
	return s.confusions
}

// Summary is the final state of a run.
type Summary struct {
	ID string `json:"run_id"`
	Totals
	WER             float64           `json:"wer"`
	WRR             float64           `json:"wrr"`
	Defined         bool              `json:"defined"`
	EmptyReferences int               `json:"empty_references"`
	Dropped         int               `json:"dropped"`
	Lengths         []LengthStat      `json:"lengths"`
	Buckets         Buckets           `json:"-"`
	Confusions      *score.Confusions `json:"-"`
}

func (s *Session) Summary() Summary {
	wer, ok := s.totals.WER()
	wrr, _ := s.totals.WRR()
	return Summary{
		ID:              s.ID,
		Totals:          s.totals,
		WER:             wer,
		WRR:             wrr,
		Defined:         ok,
		EmptyReferences: s.empty,
		Dropped:         s.dropped,
		Lengths:         s.buckets.Stats(),
		Buckets:         s.buckets,
		Confusions:      s.confusions,
	}
}
