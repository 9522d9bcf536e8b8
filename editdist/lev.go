package editdist

// Table returns the full Wagner-Fischer distance table between a and b.
// dist[i][j] is the edit distance between a[:i] and b[:j].
func Table[T comparable](a []T, b []T) [][]int {
	dist := make([][]int, len(a)+1)
	dist[0] = make([]int, len(b)+1)
	for j := 0; j < len(b)+1; j++ {
		dist[0][j] = j // First row
	}
	for i := 1; i < len(a)+1; i++ {
		dist[i] = make([]int, len(b)+1)
		dist[i][0] = i // First col
		for j := 1; j < len(b)+1; j++ {
			ins := dist[i][j-1] + 1
			del := dist[i-1][j] + 1
			sub := dist[i-1][j-1]
			if a[i-1] != b[j-1] {
				sub += 1
			}
			dist[i][j] = min(sub, del, ins)
		}
	}
	return dist
}

// Distance is the edit distance between two token sequences
func Distance[T comparable](a []T, b []T) int {
	return Table(a, b)[len(a)][len(b)]
}

func Levenshtein(a []byte, b []byte) int {
	return Distance(a, b)
}

// CER is dist normalized by the length of the truth text
func CER(dist int, blen int) float64 {
	if dist == 0 {
		return 0.0 // Perfect match
	} else if blen == 0 {
		return 1.0 // 100% error if should be empty and not
	} else {
		return float64(dist) / float64(blen)
	}
}
