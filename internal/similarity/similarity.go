// Package similarity scores how many characters two strings share.
package similarity

// Text counts the characters a and b have in common using the classic
// similar_text scheme: take the longest common run, then recurse into the
// pieces on its left and on its right. Comparison is case sensitive and works
// on runes.
func Text(a, b string) int {
	return common([]rune(a), []rune(b))
}

func common(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	posA, posB, size := longestRun(a, b)
	if size == 0 {
		return 0
	}
	return size +
		common(a[:posA], b[:posB]) +
		common(a[posA+size:], b[posB+size:])
}

// longestRun returns the first longest common run; later runs of equal
// length do not replace it.
func longestRun(a, b []rune) (int, int, int) {
	var posA, posB, size int
	for i := range a {
		for j := range b {
			k := 0
			for i+k < len(a) && j+k < len(b) && a[i+k] == b[j+k] {
				k++
			}
			if k > size {
				posA, posB, size = i, j, k
			}
		}
	}
	return posA, posB, size
}
