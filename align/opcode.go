package align

import (
	"fmt"
)

// Kind labels one alignment operation.
type Kind int

const (
	Equal Kind = iota
	Insert
	Delete
	Replace
)

var kindNames = [...]string{"equal", "insert", "delete", "replace"}

func (k Kind) String() string {
	if k < Equal || k > Replace {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name so opcodes read well in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	if k < Equal || k > Replace {
		return nil, fmt.Errorf("invalid opcode kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("invalid opcode kind %q", text)
}

// Opcode covers ref[I1:I2] and hyp[J1:J2]. Build opcodes with the New*
// constructors so every opcode has a shape valid for its Kind.
type Opcode struct {
	Kind Kind `json:"kind"`
	I1   int  `json:"i1"`
	I2   int  `json:"i2"`
	J1   int  `json:"j1"`
	J2   int  `json:"j2"`
}

// NewEqual spans n tokens that match, starting at ref[i] and hyp[j].
func NewEqual(i, j, n int) Opcode {
	return Opcode{Equal, i, i + n, j, j + n}
}

// NewInsert spans hyp[j1:j2], inserted before ref[i].
func NewInsert(i, j1, j2 int) Opcode {
	return Opcode{Insert, i, i, j1, j2}
}

// NewDelete spans ref[i1:i2], deleted before hyp[j].
func NewDelete(i1, i2, j int) Opcode {
	return Opcode{Delete, i1, i2, j, j}
}

// NewReplace substitutes hyp[j1:j2] for ref[i1:i2]. The spans may differ
// in length.
func NewReplace(i1, i2, j1, j2 int) Opcode {
	return Opcode{Replace, i1, i2, j1, j2}
}

// RefLen is the number of reference tokens covered.
func (op Opcode) RefLen() int {
	return op.I2 - op.I1
}

// HypLen is the number of hypothesis tokens covered.
func (op Opcode) HypLen() int {
	return op.J2 - op.J1
}

// Len is the larger of the two span lengths.
func (op Opcode) Len() int {
	return max(op.RefLen(), op.HypLen())
}

// IsError reports whether op is an insertion, deletion, or substitution.
func (op Opcode) IsError() bool {
	return op.Kind != Equal
}

// Validate checks that the spans fit the opcode kind.
func (op Opcode) Validate() error {
	if op.I1 < 0 || op.J1 < 0 || op.I2 < op.I1 || op.J2 < op.J1 {
		return fmt.Errorf("%v: invalid span", op)
	}
	switch op.Kind {
	case Equal:
		if op.RefLen() != op.HypLen() || op.RefLen() == 0 {
			return fmt.Errorf("%v: equal spans must be non-empty and the same length", op)
		}
	case Insert:
		if op.RefLen() != 0 || op.HypLen() == 0 {
			return fmt.Errorf("%v: insert must cover hypothesis tokens only", op)
		}
	case Delete:
		if op.HypLen() != 0 || op.RefLen() == 0 {
			return fmt.Errorf("%v: delete must cover reference tokens only", op)
		}
	case Replace:
		if op.RefLen() == 0 || op.HypLen() == 0 {
			return fmt.Errorf("%v: replace must cover both sides", op)
		}
	default:
		return fmt.Errorf("%v: unknown kind", op)
	}
	return nil
}

func (op Opcode) String() string {
	return fmt.Sprintf("%v ref[%d:%d] hyp[%d:%d]", op.Kind, op.I1, op.I2, op.J1, op.J2)
}

// CheckPartition verifies that ops are valid and that their spans cover
// [0,n) and [0,m) in order without gaps or overlaps.
func CheckPartition(ops []Opcode, n, m int) error {
	i, j := 0, 0
	for k, op := range ops {
		if err := op.Validate(); err != nil {
			return fmt.Errorf("opcode %d: %w", k, err)
		}
		if op.I1 != i || op.J1 != j {
			return fmt.Errorf("opcode %d: %v does not start at ref[%d] hyp[%d]", k, op, i, j)
		}
		i, j = op.I2, op.J2
	}
	if i != n || j != m {
		return fmt.Errorf("opcodes end at ref[%d] hyp[%d], expected ref[%d] hyp[%d]", i, j, n, m)
	}
	return nil
}
