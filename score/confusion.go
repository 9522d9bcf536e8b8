package score

import (
	"sort"

	"github.com/ughe/asreval/align"
)

// Substitution is a reference token recognized as a hypothesis token.
type Substitution struct {
	Ref string `json:"ref"`
	Hyp string `json:"hyp"`
}

// Confusions tallies which tokens were inserted, deleted, or substituted
// over a run. Counts only grow.
type Confusions struct {
	Insertions    map[string]int
	Deletions     map[string]int
	Substitutions map[Substitution]int
}

func NewConfusions() *Confusions {
	return &Confusions{
		Insertions:    make(map[string]int),
		Deletions:     make(map[string]int),
		Substitutions: make(map[Substitution]int),
	}
}

// Accumulate adds the errors in ops. Every reference token of a replace run
// is tallied against every hypothesis token of the run, so a 2x2 run adds
// four substitutions.
func (c *Confusions) Accumulate(ops []align.Opcode, ref, hyp []string) {
	for _, op := range ops {
		switch op.Kind {
		case align.Insert:
			for _, w := range hyp[op.J1:op.J2] {
				c.Insertions[w]++
			}
		case align.Delete:
			for _, w := range ref[op.I1:op.I2] {
				c.Deletions[w]++
			}
		case align.Replace:
			for _, w1 := range ref[op.I1:op.I2] {
				for _, w2 := range hyp[op.J1:op.J2] {
					c.Substitutions[Substitution{w1, w2}]++
				}
			}
		}
	}
}

// Merge adds every count of o into c.
func (c *Confusions) Merge(o *Confusions) {
	for w, n := range o.Insertions {
		c.Insertions[w] += n
	}
	for w, n := range o.Deletions {
		c.Deletions[w] += n
	}
	for s, n := range o.Substitutions {
		c.Substitutions[s] += n
	}
}

// Empty reports whether nothing has been tallied.
func (c *Confusions) Empty() bool {
	return len(c.Insertions) == 0 && len(c.Deletions) == 0 && len(c.Substitutions) == 0
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type SubstitutionCount struct {
	Substitution
	Count int `json:"count"`
}

// TopInsertions returns inserted words seen more than minCount times, most
// frequent first.
func (c *Confusions) TopInsertions(minCount int) []WordCount {
	return top(c.Insertions, minCount)
}

// TopDeletions returns deleted words seen more than minCount times, most
// frequent first.
func (c *Confusions) TopDeletions(minCount int) []WordCount {
	return top(c.Deletions, minCount)
}

// TopSubstitutions returns substitutions seen more than minCount times, most
// frequent first.
func (c *Confusions) TopSubstitutions(minCount int) []SubstitutionCount {
	out := make([]SubstitutionCount, 0)
	for s, n := range c.Substitutions {
		if n > minCount {
			out = append(out, SubstitutionCount{s, n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Ref != out[j].Ref {
			return out[i].Ref < out[j].Ref
		}
		return out[i].Hyp < out[j].Hyp
	})
	return out
}

func top(table map[string]int, minCount int) []WordCount {
	out := make([]WordCount, 0)
	for w, n := range table {
		if n > minCount {
			out = append(out, WordCount{w, n})
		}
	}
	// Ties sort by word so reports are stable
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out
}
