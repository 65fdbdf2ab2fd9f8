package mastermind

import "fmt"

// DefaultMaxUniverse caps K^L for a single engine.
const DefaultMaxUniverse = 1 << 22

// UniverseSize returns colors^length, or false if it exceeds limit.
func UniverseSize(colors, length, limit int) (int, bool) {
	n := 1
	for i := 0; i < length; i++ {
		if n > limit/colors {
			return 0, false
		}
		n *= colors
	}
	return n, n <= limit
}

// Universe enumerates every code of the given length over colors colors in
// lexicographic order of color index. The codes share one backing array.
func Universe(colors, length, limit int) ([]Code, error) {
	if colors <= 0 || colors > MaxColors || length <= 0 {
		return nil, fmt.Errorf("%w: %d colors, length %d", ErrInvalidConfiguration, colors, length)
	}
	n, ok := UniverseSize(colors, length, limit)
	if !ok {
		return nil, fmt.Errorf("%w: %d^%d exceeds %d sequences", ErrResourceExhausted, colors, length, limit)
	}

	backing := make([]byte, n*length)
	out := make([]Code, n)
	digits := make([]int, length)
	for i := 0; i < n; i++ {
		c := Code(backing[i*length : (i+1)*length : (i+1)*length])
		for p, d := range digits {
			c[p] = byte(d)
		}
		out[i] = c
		// odometer increment, last position fastest
		for p := length - 1; p >= 0; p-- {
			digits[p]++
			if digits[p] < colors {
				break
			}
			digits[p] = 0
		}
	}
	return out, nil
}
