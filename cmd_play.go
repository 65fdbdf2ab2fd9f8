// cmd_play.go
//
// `mastermind play`: the interactive assistant. The secret is held by the
// user, who types each guess with the black/white score it received:
//
//	> ABCD 0 2
//
// Other inputs: "hint", "candidates", "classes", "quit". Bad input prints an
// error and re-prompts; the session ends when the secret is pinned down.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/config"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/mastermind"
	"github.com/robalobadob/mastermind/internal/presets"
)

const maxListed = 20

func newPlayCmd() *cobra.Command {
	var preset string
	cmd := &cobra.Command{
		Use:   "play [COLORS LENGTH]",
		Short: "Interactive solver: report feedback, get suggestions",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("play takes COLORS LENGTH or no arguments, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			gc := game.Config{Preset: preset, MaxUniverse: config.GetEnvInt("MASTERMIND_MAX_UNIVERSE", mastermind.DefaultMaxUniverse)}
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("length %q: %w", args[1], err)
				}
				gc.Preset, gc.Colors, gc.Length = "", args[0], n
			} else {
				if err := presets.Init(config.GetEnv("MASTERMIND_PRESETS_FILE", "")); err != nil {
					return err
				}
				p, err := presets.Lookup(preset)
				if err != nil {
					return err
				}
				gc.Colors, gc.Length, gc.MaxGuesses = p.Colors, p.Length, p.MaxGuesses
			}
			g, err := game.New(gc)
			if err != nil {
				return err
			}
			return play(g, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "classic", "preset used when COLORS LENGTH are omitted")
	return cmd
}

// play runs the read/print loop until the game is over or in reaches EOF.
func play(g *game.Game, in io.Reader, out io.Writer) error {
	v := g.View()
	fmt.Fprintf(out, "Colors %s, length %d: %d possible secrets.\n", v.Colors, v.Length, v.Candidates)
	if h, err := g.Hint(); err == nil {
		fmt.Fprintf(out, "Suggested opening: %s (pattern %v, %.3f bits)\n", h.Guess, h.Opening, h.Entropy)
	}
	fmt.Fprintln(out, `Enter "GUESS BLACK WHITE", or hint, candidates, classes, quit.`)

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "quit", "exit":
			return nil
		case "hint":
			h, err := g.Hint()
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Try %s (%.3f bits, %d candidates)\n", h.Guess, h.Entropy, h.Candidates)
			continue
		case "candidates":
			cands, total := g.Candidates(maxListed)
			fmt.Fprintf(out, "%d candidates: %s", total, strings.Join(cands, " "))
			if total > len(cands) {
				fmt.Fprint(out, " ...")
			}
			fmt.Fprintln(out)
			continue
		case "classes":
			fmt.Fprintln(out, strings.Join(g.Classes(), " "))
			continue
		}

		if len(fields) != 3 {
			fmt.Fprintln(out, `error: expected "GUESS BLACK WHITE"`)
			continue
		}
		black, errB := strconv.Atoi(fields[1])
		white, errW := strconv.Atoi(fields[2])
		if errB != nil || errW != nil {
			fmt.Fprintln(out, "error: BLACK and WHITE must be integers")
			continue
		}
		entropy, err := g.Entropy(fields[0])
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		turn, state, err := g.ApplyFeedback(fields[0], black, white)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "%s: expected %.3f bits, gained %.3f bits, %d candidates left\n",
			turn.Guess, entropy, turn.Bits, turn.Remaining)

		switch state {
		case game.StateWon:
			fmt.Fprintf(out, "Solved in %d guesses.\n", len(g.View().Turns))
			return nil
		case game.StateSolved:
			fmt.Fprintf(out, "The only possibility is %s.\n", g.View().Solution)
			return nil
		}
	}
}
