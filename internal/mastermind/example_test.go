package mastermind_test

import (
	"fmt"
	"slices"

	"github.com/robalobadob/mastermind/internal/mastermind"
)

// ExamplePartitions lists the color groupings an opening guess of four pegs
// can take when at most two colors are used.
func ExamplePartitions() {
	fmt.Println(mastermind.Partitions(4, 2))
	// Output: [[4] [3 1] [2 2]]
}

func ExampleEngine_Update() {
	e, _ := mastermind.New("ABCD", 2)
	fmt.Println(e.InitialGuess(), e.NumCandidates())

	bits, _ := e.Update("AB", 1, 0)
	fmt.Printf("%.2f bits, %d left\n", bits, e.NumCandidates())
	fmt.Println(slices.Collect(e.Candidates()))
	fmt.Println(e.Classes())
	// Output:
	// AB 16
	// 1.42 bits, 6 left
	// [AA AC AD BB CB DB]
	// [CD AB]
}
