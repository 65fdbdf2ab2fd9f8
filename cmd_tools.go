// cmd_tools.go
//
// Offline solver tools: solve, partitions, candidates, classes, evaluate,
// entropy. Each prints plain text to stdout.

package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/config"
	"github.com/robalobadob/mastermind/internal/mastermind"
)

func engineOpts() []mastermind.Option {
	return []mastermind.Option{
		mastermind.WithMaxUniverse(config.GetEnvInt("MASTERMIND_MAX_UNIVERSE", mastermind.DefaultMaxUniverse)),
	}
}

func newSolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve COLORS SECRET",
		Short: "Let the engine break SECRET and print each turn",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			turns, err := mastermind.Solve(args[0], args[1], engineOpts()...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, t := range turns {
				fmt.Fprintf(out, "%2d. %s  %d black, %d white  %.3f bits  %d left\n",
					i+1, t.Guess, t.Outcome.Black, t.Outcome.White, t.Bits, t.Remaining)
			}
			fmt.Fprintf(out, "Solved %s in %d guesses.\n", args[1], len(turns))
			return nil
		},
	}
}

func newPartitionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "partitions N K",
		Short: "List the partitions of N into at most K parts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("N %q: %w", args[0], err)
			}
			k, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("K %q: %w", args[1], err)
			}
			for _, p := range mastermind.Partitions(n, k) {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func newCandidatesCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "candidates COLORS LENGTH",
		Short: "Enumerate every sequence in lexicographic order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("length %q: %w", args[1], err)
			}
			e, err := mastermind.New(args[0], n, engineOpts()...)
			if err != nil {
				return err
			}
			i := 0
			for c := range e.Candidates() {
				if limit > 0 && i >= limit {
					break
				}
				fmt.Fprintln(cmd.OutOrStdout(), c)
				i++
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "print at most this many (0 for all)")
	return cmd
}

func newClassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes COLORS GUESS [SEQUENCE]",
		Short: "Group colors by how often GUESS uses them, then print the representative of SEQUENCE (default GUESS)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := mastermind.NewAlphabet(args[0])
			if err != nil {
				return err
			}
			n := utf8.RuneCountInString(args[1])
			code, err := a.Parse(args[1], n)
			if err != nil {
				return err
			}
			seq := code
			if len(args) == 3 {
				if seq, err = a.Parse(args[2], n); err != nil {
					return err
				}
			}
			var classes []string
			for _, cls := range mastermind.ColorClasses(a.Size(), code) {
				classes = append(classes, a.FormatClass(cls))
			}
			refined := mastermind.NewColorPartition(a.Size()).Refine(code)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.Join(classes, " "))
			fmt.Fprintln(out, a.Format(refined.Representative(seq)))
			return nil
		},
	}
}

func newEvaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate COLORS SECRET GUESS",
		Short: "Score GUESS against SECRET",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := mastermind.NewAlphabet(args[0])
			if err != nil {
				return err
			}
			n := utf8.RuneCountInString(args[1])
			secret, err := a.Parse(args[1], n)
			if err != nil {
				return err
			}
			guess, err := a.Parse(args[2], n)
			if err != nil {
				return err
			}
			black, white, err := mastermind.Evaluate(secret, guess)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mastermind.Outcome{Black: black, White: white})
			return nil
		},
	}
}

func newEntropyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entropy COLORS GUESS",
		Short: "Expected information of GUESS against all sequences",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := mastermind.New(args[0], utf8.RuneCountInString(args[1]), engineOpts()...)
			if err != nil {
				return err
			}
			h, err := e.Entropy(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.4f bits\n", h)
			return nil
		},
	}
}
