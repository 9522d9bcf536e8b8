package corpus

import (
	"context"
	"io"

	"github.com/ughe/asreval/transcript"
)

type pair struct {
	index    int
	ref, hyp string
}

type outcome struct {
	r   *Result
	err error
}

// Run scores every line pair of ref and hyp in order, calling fn (if not
// nil) with each result after it is recorded. Iteration stops at the end
// of the shorter transcript; the unpaired lines of the longer one are
// counted as dropped, or fail the run with ErrLengthMismatch in strict
// mode. The first error aborts the run.
func (s *Session) Run(ctx context.Context, ref, hyp io.Reader, fn func(*Result) error) error {
	refLines, hypLines := transcript.NewLines(ref), transcript.NewLines(hyp)
	var err error
	if s.opts.Workers > 1 {
		err = s.runParallel(ctx, refLines, hypLines, fn)
	} else {
		err = s.runSerial(ctx, refLines, hypLines, fn)
	}
	if err != nil {
		return err
	}
	if err := refLines.Err(); err != nil {
		return err
	}
	if err := hypLines.Err(); err != nil {
		return err
	}
	return s.checkDropped(refLines, hypLines)
}

func next(refLines, hypLines *transcript.Lines, index int) (pair, bool) {
	r, ok := refLines.Next()
	if !ok {
		return pair{}, false
	}
	h, ok := hypLines.Next()
	if !ok {
		// The reference line is already consumed and has no partner
		refLines.Unread()
		return pair{}, false
	}
	return pair{index, r, h}, true
}

func (s *Session) runSerial(ctx context.Context, refLines, hypLines *transcript.Lines, fn func(*Result) error) error {
	for index := 1; ; index++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, ok := next(refLines, hypLines, index)
		if !ok {
			return nil
		}
		r, err := s.Score(p.index, p.ref, p.hyp)
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(r); err != nil {
				return err
			}
		}
	}
}

// runParallel aligns pairs on a pool of workers. Each pair gets its own
// reply channel, queued in input order, so results are recorded and
// delivered in the same order as the serial path.
func (s *Session) runParallel(ctx context.Context, refLines, hypLines *transcript.Lines, fn func(*Result) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		pair
		reply chan outcome
	}
	jobs := make(chan job)
	queue := make(chan chan outcome, s.opts.Workers)

	go func() {
		defer close(jobs)
		defer close(queue)
		for index := 1; ; index++ {
			p, ok := next(refLines, hypLines, index)
			if !ok {
				return
			}
			j := job{p, make(chan outcome, 1)}
			select {
			case queue <- j.reply:
			case <-ctx.Done():
				return
			}
			select {
			case jobs <- j:
			case <-ctx.Done():
				return
			}
		}
	}()
	for w := 0; w < s.opts.Workers; w++ {
		go func() {
			for j := range jobs {
				r, err := s.align(j.index, j.ref, j.hyp)
				j.reply <- outcome{r, err}
			}
		}()
	}

	var runErr error
	if err := ctx.Err(); err != nil {
		runErr = err
		cancel()
	}
	for reply := range queue {
		if runErr != nil {
			continue // Drain so the reader can exit
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			cancel()
			continue
		}
		var o outcome
		select {
		case o = <-reply:
		case <-ctx.Done():
			runErr = ctx.Err()
			continue
		}
		if o.err != nil {
			runErr = o.err
			cancel()
			continue
		}
		s.record(o.r)
		if fn != nil {
			if err := fn(o.r); err != nil {
				runErr = err
				cancel()
			}
		}
	}
	if runErr == nil {
		// The reader stops early if the caller's context is canceled
		runErr = ctx.Err()
	}
	return runErr
}

func (s *Session) checkDropped(refLines, hypLines *transcript.Lines) error {
	dropped := 0
	for _, l := range []*transcript.Lines{refLines, hypLines} {
		for {
			if _, ok := l.Next(); !ok {
				break
			}
			dropped++
		}
		if err := l.Err(); err != nil {
			return err
		}
	}
	if dropped == 0 {
		return nil
	}
	if s.opts.Strict {
		return ErrLengthMismatch
	}
	s.dropped += dropped
	s.opts.Logger.Printf("[WARN] Transcripts differ in length: ignoring %d unpaired lines", dropped)
	return nil
}
