// Package diff renders an alignment as two column-aligned rows in the
// style of the align.c / Sphinx scoring output: matches lower case, errors
// upper case, and asterisks where one side has no token.
package diff

import (
	"strings"
	"unicode/utf8"

	"github.com/ughe/asreval/align"
)

// Lines holds the rendered reference and hypothesis rows.
type Lines struct {
	Ref string `json:"ref"`
	Hyp string `json:"hyp"`
}

// Render lays out ref and hyp according to ops. Both rows have the same
// number of space separated slots and each pair of slots has equal width.
func Render(ops []align.Opcode, ref, hyp []string) Lines {
	r, h := Slots(ops, ref, hyp)
	return Lines{strings.Join(r, " "), strings.Join(h, " ")}
}

// Slots returns the rendered tokens of each row before joining.
func Slots(ops []align.Opcode, ref, hyp []string) ([]string, []string) {
	var r, h []string
	for _, op := range ops {
		switch op.Kind {
		case align.Equal:
			for _, w := range ref[op.I1:op.I2] {
				r = append(r, strings.ToLower(w))
			}
			for _, w := range hyp[op.J1:op.J2] {
				h = append(h, strings.ToLower(w))
			}
		case align.Delete:
			for _, w := range ref[op.I1:op.I2] {
				w = strings.ToUpper(w)
				r = append(r, w)
				h = append(h, stars(w))
			}
		case align.Insert:
			for _, w := range hyp[op.J1:op.J2] {
				w = strings.ToUpper(w)
				r = append(r, stars(w))
				h = append(h, w)
			}
		case align.Replace:
			rs, hs := replace(ref[op.I1:op.I2], hyp[op.J1:op.J2])
			r = append(r, rs...)
			h = append(h, hs...)
		}
	}
	return r, h
}

// replace pairs the two spans slot by slot. The shorter span is padded
// with absent slots which render as asterisks.
func replace(ref, hyp []string) ([]string, []string) {
	n := max(len(ref), len(hyp))
	r, h := make([]string, n), make([]string, n)
	for i := 0; i < n; i++ {
		switch {
		case i >= len(ref):
			h[i] = strings.ToUpper(hyp[i])
			r[i] = stars(h[i])
		case i >= len(hyp):
			r[i] = strings.ToUpper(ref[i])
			h[i] = stars(r[i])
		default:
			w1, w2 := strings.ToUpper(ref[i]), strings.ToUpper(hyp[i])
			r[i], h[i] = pad(w1, width(w2)), pad(w2, width(w1))
		}
	}
	return r, h
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

func stars(w string) string {
	return strings.Repeat("*", width(w))
}

func pad(w string, n int) string {
	if d := n - width(w); d > 0 {
		return w + strings.Repeat(" ", d)
	}
	return w
}
