package mastermind

// Partitions lists the partitions of n into at most maxParts positive,
// non-increasing terms. Larger leading terms come first, so
// Partitions(4, 2) is [[4] [3 1] [2 2]].
//
// Permuting colors never changes a guess's entropy at the start of a game,
// which is why only these canonical forms matter for an opening guess.
func Partitions(n, maxParts int) [][]int {
	if n < 0 || maxParts < 0 {
		return nil
	}
	var out [][]int
	partitions(n, maxParts, n, nil, &out)
	return out
}

// partitions appends to out every completion of prefix that partitions n into
// at most k terms, none larger than maxTerm.
func partitions(n, k, maxTerm int, prefix []int, out *[][]int) {
	if n > maxTerm*k {
		return
	}
	if n == 0 {
		*out = append(*out, append([]int{}, prefix...))
		return
	}
	for i := min(n, maxTerm); i >= 1; i-- {
		partitions(n-i, k-1, i, append(prefix, i), out)
	}
}
