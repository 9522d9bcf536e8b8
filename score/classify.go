// Package score derives error counts and confusion tables from alignments.
package score

import (
	"fmt"

	"github.com/ughe/asreval/align"
)

// Counts are the per-pair statistics of one alignment. Errors counts each
// error run by its longer span; Substitutions, Insertions and Deletions
// break that number down and always sum to Errors.
type Counts struct {
	Matches       int `json:"matches"`
	Errors        int `json:"errors"`
	Substitutions int `json:"substitutions"`
	Insertions    int `json:"insertions"`
	Deletions     int `json:"deletions"`
}

// Classify counts a. The match count is checked against the matching
// blocks of the alignment; disagreement means the aligner is broken.
func Classify(a align.Alignment) Counts {
	c := ClassifyOps(a.Opcodes)
	blocked := 0
	for _, b := range a.Blocks {
		blocked += b.Size
	}
	if blocked != c.Matches {
		panic(fmt.Sprintf("score: opcodes match %d tokens but blocks match %d", c.Matches, blocked))
	}
	return c
}

// ClassifyOps counts a bare opcode sequence.
func ClassifyOps(ops []align.Opcode) Counts {
	var c Counts
	for _, op := range ops {
		switch op.Kind {
		case align.Equal:
			c.Matches += op.RefLen()
		case align.Insert:
			c.Insertions += op.HypLen()
		case align.Delete:
			c.Deletions += op.RefLen()
		case align.Replace:
			n, m := op.RefLen(), op.HypLen()
			c.Substitutions += min(n, m)
			if n > m {
				c.Deletions += n - m
			} else {
				c.Insertions += m - n
			}
		}
		if op.IsError() {
			c.Errors += op.Len()
		}
	}
	return c
}

// Add accumulates o into c.
func (c *Counts) Add(o Counts) {
	c.Matches += o.Matches
	c.Errors += o.Errors
	c.Substitutions += o.Substitutions
	c.Insertions += o.Insertions
	c.Deletions += o.Deletions
}
