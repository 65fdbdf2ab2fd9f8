// internal/mastermind/classes.go
//
// Color equivalence classes.
//
// Two colors are equivalent while every guess played so far uses them the
// same number of times. The grouping ignores positions, so it is a heuristic:
// swapping two equivalent colors need not map candidates to candidates, and a
// guess and its representative can have different entropy until the classes
// are discrete.
//
// ColorPartition keeps the classes as an arena of disjoint groups plus a
// color -> group index that is rebuilt after every refinement.

package mastermind

// ColorPartition is a partition of the color indexes 0..K-1.
type ColorPartition struct {
	classes [][]int
	classOf []int
}

// NewColorPartition returns the coarsest partition: one class holding every color.
func NewColorPartition(colors int) *ColorPartition {
	all := make([]int, colors)
	for i := range all {
		all[i] = i
	}
	return newColorPartition(colors, [][]int{all})
}

func newColorPartition(colors int, classes [][]int) *ColorPartition {
	p := &ColorPartition{classes: classes, classOf: make([]int, colors)}
	for ci, cls := range classes {
		for _, c := range cls {
			p.classOf[c] = ci
		}
	}
	return p
}

// Len returns the number of classes.
func (p *ColorPartition) Len() int { return len(p.classes) }

// Discrete reports whether every color sits in its own class, i.e. no
// equivalences are left to exploit.
func (p *ColorPartition) Discrete() bool { return len(p.classes) == len(p.classOf) }

// Classes returns a copy of the classes in order.
func (p *ColorPartition) Classes() [][]int {
	out := make([][]int, len(p.classes))
	for i, cls := range p.classes {
		out[i] = append([]int(nil), cls...)
	}
	return out
}

// ClassOf returns the class containing color, or false when color is out of range.
func (p *ColorPartition) ClassOf(color int) ([]int, bool) {
	if color < 0 || color >= len(p.classOf) {
		return nil, false
	}
	return p.classes[p.classOf[color]], true
}

// ColorClasses groups the colors 0..colors-1 by how often they occur in
// guess. Groups are ordered by ascending count, colors within a group by
// index; counts nobody has are skipped.
func ColorClasses(colors int, guess Code) [][]int {
	counts := make([]int, colors)
	for _, c := range guess {
		counts[c]++
	}
	byCount := make([][]int, len(guess)+1)
	for c, n := range counts {
		byCount[n] = append(byCount[n], c)
	}
	out := make([][]int, 0, len(byCount))
	for _, grp := range byCount {
		if len(grp) > 0 {
			out = append(out, grp)
		}
	}
	return out
}

// Refine intersects every class with every class of ColorClasses(guess),
// keeping the non-empty intersections. It returns p itself when p is already
// discrete.
func (p *ColorPartition) Refine(guess Code) *ColorPartition {
	if p.Discrete() {
		return p
	}
	colors := len(p.classOf)
	guessClasses := ColorClasses(colors, guess)
	groupOf := make([]int, colors)
	for gi, grp := range guessClasses {
		for _, c := range grp {
			groupOf[c] = gi
		}
	}

	var next [][]int
	for _, cls := range p.classes {
		split := make([][]int, len(guessClasses))
		for _, c := range cls {
			g := groupOf[c]
			split[g] = append(split[g], c)
		}
		for _, part := range split {
			if len(part) > 0 {
				next = append(next, part)
			}
		}
	}
	return newColorPartition(colors, next)
}

// Representative renames the colors of guess, within each class, to the
// class members in the order they first appear in guess. Guesses with the
// same representative are interchangeable under the current partition.
func (p *ColorPartition) Representative(guess Code) Code {
	// mapping[c] is the renamed color plus one, 0 meaning unassigned.
	mapping := make([]int, len(p.classOf))
	used := make([]int, len(p.classes))
	out := make(Code, len(guess))
	for i, c := range guess {
		if mapping[c] == 0 {
			ci := p.classOf[c]
			mapping[c] = p.classes[ci][used[ci]] + 1
			used[ci]++
		}
		out[i] = byte(mapping[c] - 1)
	}
	return out
}
