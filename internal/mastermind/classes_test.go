package mastermind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/mastermind"
)

func TestColorClasses_ByCount(t *testing.T) {
	a, _ := mastermind.NewAlphabet("ABCDEF")
	got := mastermind.ColorClasses(a.Size(), mustParse(t, a, "AABC"))
	assert.Equal(t, [][]int{{3, 4, 5}, {1, 2}, {0}}, got)

	got = mastermind.ColorClasses(a.Size(), mustParse(t, a, "ABCD"))
	assert.Equal(t, [][]int{{4, 5}, {0, 1, 2, 3}}, got)
}

func TestColorPartition_Refine(t *testing.T) {
	a, _ := mastermind.NewAlphabet("ABCDEF")
	p := mastermind.NewColorPartition(a.Size())
	require.Equal(t, 1, p.Len())
	require.False(t, p.Discrete())

	p = p.Refine(mustParse(t, a, "AABC"))
	assert.Equal(t, [][]int{{3, 4, 5}, {1, 2}, {0}}, p.Classes())

	p = p.Refine(mustParse(t, a, "BDDD"))
	assert.Equal(t, [][]int{{4, 5}, {3}, {2}, {1}, {0}}, p.Classes())

	again := p.Refine(mustParse(t, a, "BDDD"))
	assert.Equal(t, p.Classes(), again.Classes(), "refining twice with one guess is idempotent")

	p = p.Refine(mustParse(t, a, "EEEE"))
	assert.True(t, p.Discrete())
	assert.Same(t, p, p.Refine(mustParse(t, a, "ABCD")))
}

func TestColorPartition_ClassOf(t *testing.T) {
	p := mastermind.NewColorPartition(3)
	cls, ok := p.ClassOf(2)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, cls)

	cls, ok = p.ClassOf(3)
	assert.False(t, ok)
	assert.Nil(t, cls)
	_, ok = p.ClassOf(-1)
	assert.False(t, ok)
}

func TestColorPartition_Representative(t *testing.T) {
	a, _ := mastermind.NewAlphabet("ABCDEF")
	p := mastermind.NewColorPartition(a.Size()).Refine(mustParse(t, a, "AABC"))

	rep := p.Representative(mustParse(t, a, "FCEB"))
	assert.Equal(t, "DBEC", a.Format(rep))

	// Swapping interchangeable colors gives the same representative.
	assert.Equal(t,
		a.Format(p.Representative(mustParse(t, a, "DDBF"))),
		a.Format(p.Representative(mustParse(t, a, "EECD"))))

	coarse := mastermind.NewColorPartition(a.Size())
	assert.Equal(t, "ABAC", a.Format(coarse.Representative(mustParse(t, a, "FDFA"))))
}

func TestColorPartition_RepresentativeDiscreteIsIdentity(t *testing.T) {
	a, _ := mastermind.NewAlphabet("ABC")
	p := mastermind.NewColorPartition(3).
		Refine(mustParse(t, a, "AAB"))
	require.True(t, p.Discrete())
	for _, s := range []string{"CBA", "AAA", "BCB"} {
		assert.Equal(t, s, a.Format(p.Representative(mustParse(t, a, s))))
	}
}
