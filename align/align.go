// Package align computes minimum edit distance alignments between token
// sequences and decomposes them into equal, insert, delete and replace runs.
package align

import (
	"github.com/ughe/asreval/editdist"
)

// Block is a maximal run of matching tokens: ref[I:I+Size] == hyp[J:J+Size].
type Block struct {
	I    int `json:"i"`
	J    int `json:"j"`
	Size int `json:"size"`
}

// Alignment is one minimum-cost alignment of a reference and hypothesis.
type Alignment struct {
	Opcodes  []Opcode
	Blocks   []Block
	Distance int
}

type step struct {
	kind Kind
	i, j int // Cell the step leaves from, moving towards (0,0)
}

// Align returns the alignment of ref and hyp. When several alignments have
// the minimum cost, backtracking prefers a diagonal move, then a deletion,
// then an insertion, so the result is reproducible.
func Align(ref, hyp []string) Alignment {
	dist := editdist.Table(ref, hyp)
	steps := backtrack(ref, hyp, dist)
	return Alignment{
		Opcodes:  compress(steps),
		Blocks:   matchingBlocks(steps),
		Distance: dist[len(ref)][len(hyp)],
	}
}

// Opcodes is Align(ref, hyp).Opcodes.
func Opcodes(ref, hyp []string) []Opcode {
	return Align(ref, hyp).Opcodes
}

// backtrack walks from the bottom right of dist to the origin and returns
// the steps in forward order.
func backtrack(ref, hyp []string, dist [][]int) []step {
	i, j := len(ref), len(hyp)
	steps := make([]step, 0, max(i, j))
	for i > 0 || j > 0 {
		d := dist[i][j]
		if i > 0 && j > 0 {
			if ref[i-1] == hyp[j-1] && dist[i-1][j-1] == d {
				steps = append(steps, step{Equal, i - 1, j - 1})
				i, j = i-1, j-1
				continue
			}
			if ref[i-1] != hyp[j-1] && dist[i-1][j-1]+1 == d {
				steps = append(steps, step{Replace, i - 1, j - 1})
				i, j = i-1, j-1
				continue
			}
		}
		if i > 0 && dist[i-1][j]+1 == d {
			steps = append(steps, step{Delete, i - 1, j})
			i--
			continue
		}
		steps = append(steps, step{Insert, i, j - 1})
		j--
	}
	for l, r := 0, len(steps)-1; l < r; l, r = l+1, r-1 {
		steps[l], steps[r] = steps[r], steps[l]
	}
	return steps
}

// compress merges consecutive steps of the same kind into one opcode.
func compress(steps []step) []Opcode {
	ops := make([]Opcode, 0)
	for _, s := range steps {
		di, dj := 1, 1
		switch s.kind {
		case Insert:
			di = 0
		case Delete:
			dj = 0
		}
		if n := len(ops); n > 0 && ops[n-1].Kind == s.kind {
			ops[n-1].I2 += di
			ops[n-1].J2 += dj
			continue
		}
		ops = append(ops, Opcode{s.kind, s.i, s.i + di, s.j, s.j + dj})
	}
	return ops
}

// matchingBlocks collects runs of diagonal equal steps straight from the
// backtrack, without going through the opcodes.
func matchingBlocks(steps []step) []Block {
	blocks := make([]Block, 0)
	for _, s := range steps {
		if s.kind != Equal {
			continue
		}
		if n := len(blocks); n > 0 {
			last := &blocks[n-1]
			if last.I+last.Size == s.i && last.J+last.Size == s.j {
				last.Size++
				continue
			}
		}
		blocks = append(blocks, Block{s.i, s.j, 1})
	}
	return blocks
}

// MergeGaps coalesces each run of adjacent non-equal opcodes into a single
// opcode, so the regions between matching blocks become one replace (or a
// pure insert or delete). Replace spans may then differ in length.
func MergeGaps(ops []Opcode) []Opcode {
	merged := make([]Opcode, 0, len(ops))
	for _, op := range ops {
		n := len(merged)
		if n == 0 || op.Kind == Equal || merged[n-1].Kind == Equal {
			merged = append(merged, op)
			continue
		}
		last := &merged[n-1]
		last.I2, last.J2 = op.I2, op.J2
		switch {
		case last.RefLen() == 0:
			last.Kind = Insert
		case last.HypLen() == 0:
			last.Kind = Delete
		default:
			last.Kind = Replace
		}
	}
	return merged
}

// Apply replays ops against ref and returns the resulting sequence, which
// equals the hypothesis the opcodes were computed against.
func Apply(ops []Opcode, ref, hyp []string) []string {
	out := make([]string, 0, len(hyp))
	for _, op := range ops {
		switch op.Kind {
		case Equal:
			out = append(out, ref[op.I1:op.I2]...)
		case Insert, Replace:
			out = append(out, hyp[op.J1:op.J2]...)
		case Delete:
		}
	}
	return out
}

// Cost is the number of errors ops represent, counting each error run by
// its longer span.
func Cost(ops []Opcode) int {
	cost := 0
	for _, op := range ops {
		if op.IsError() {
			cost += op.Len()
		}
	}
	return cost
}
