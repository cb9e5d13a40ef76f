package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aceluke24/BDR-dice-roller/internal/dice"
)

var (
	playDice int
	playSeed uint64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if playDice < 1 {
			return errors.New("--dice must be at least 1")
		}
		var src dice.Source = dice.CryptoSource{}
		if cmd.Flags().Changed("seed") {
			src = dice.NewSeededSource(playSeed)
		}
		return play(dice.New(src), playDice, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	playCmd.Flags().IntVarP(&playDice, "dice", "n", 5, "Number of dice in the first roll")
	playCmd.Flags().Uint64Var(&playSeed, "seed", 0, "Seed for reproducible rolls")
	rootCmd.AddCommand(playCmd)
}

// play runs one game: an initial roll, then a bonus die each time the
// player presses Enter while bonus rolling is allowed. Typing q stops early.
func play(eng *dice.Engine, n int, in io.Reader, out io.Writer) error {
	g := eng.Roll(n)
	printGame(out, g)

	sc := bufio.NewScanner(in)
	for g.CanBonus {
		fmt.Fprint(out, "Bonus! Press Enter to roll another die (q to stop): ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			break
		}
		if strings.EqualFold(strings.TrimSpace(sc.Text()), "q") {
			break
		}
		eng.Bonus(&g)
		printGame(out, g)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Final: %d of %d dice match.\n", dice.MatchCount(g.Rolls, g.Base), len(g.Rolls))
	return nil
}

func printGame(out io.Writer, g dice.State) {
	var parts []string
	for _, grp := range dice.GroupForDisplay(g.Rolls) {
		parts = append(parts, fmt.Sprintf("%d×%d", grp.Value, grp.Size()))
	}
	base := "all wild"
	if g.Resolved() {
		base = fmt.Sprintf("base %d", g.Base)
	}
	fmt.Fprintf(out, "Rolls %v  [%s]  %s, %d match\n",
		g.Rolls, strings.Join(parts, " "), base, dice.MatchCount(g.Rolls, g.Base))
}
