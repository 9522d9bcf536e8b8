package main

import (
	"fmt"
	"io"

	"github.com/ughe/asreval/corpus"
	"github.com/ughe/asreval/report"
)

// Aligns two literal transcripts and prints the diff, optionally with the
// opcodes behind it
func diffCommand(ref, hyp string, group, ops bool, stdout io.Writer) error {
	s := corpus.NewSession(corpus.Options{Diff: true, MergeGaps: group})
	r, err := s.Score(1, ref, hyp)
	if err != nil {
		return err
	}
	if err := report.WriteInstance(stdout, r); err != nil {
		return err
	}
	if ops {
		for _, op := range r.Opcodes {
			fmt.Fprintf(stdout, "%v\n", op)
		}
	}
	return nil
}
