package diag

import "strings"

// MaxDistance is the largest edit distance Similar still treats as a typo.
const MaxDistance = 2

// Similar returns the candidate closest to name by case-insensitive edit
// distance, or "" when none is within MaxDistance. Ties go to the earliest
// candidate.
func Similar(name string, candidates []string) string {
	best, bestDist := "", MaxDistance+1
	lower := []rune(strings.ToLower(name))
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := levenshtein(lower, []rune(strings.ToLower(c)))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
