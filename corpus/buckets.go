package corpus

import (
	"sort"
)

// Buckets groups per-sentence error rates by reference length.
type Buckets map[int][]float64

func (b Buckets) Add(length int, rate float64) {
	b[length] = append(b[length], rate)
}

// Mean is the average rate of sentences with the given length. ok is false
// when there are none.
func (b Buckets) Mean(length int) (mean float64, ok bool) {
	rates := b[length]
	if len(rates) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, r := range rates {
		sum += r
	}
	return sum / float64(len(rates)), true
}

// MaxLength is the longest bucketed reference length, or -1 if empty.
func (b Buckets) MaxLength() int {
	n := -1
	for l := range b {
		n = max(n, l)
	}
	return n
}

type LengthStat struct {
	Length    int     `json:"length"`
	Sentences int     `json:"sentences"`
	Mean      float64 `json:"mean"`
}

// Stats lists the non-empty buckets by increasing length.
func (b Buckets) Stats() []LengthStat {
	stats := make([]LengthStat, 0, len(b))
	for l, rates := range b {
		if len(rates) == 0 {
			continue
		}
		mean, _ := b.Mean(l)
		stats = append(stats, LengthStat{l, len(rates), mean})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Length < stats[j].Length })
	return stats
}

func (b Buckets) merge(o Buckets) {
	for l, rates := range o {
		b[l] = append(b[l], rates...)
	}
}
