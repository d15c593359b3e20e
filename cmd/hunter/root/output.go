package root

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"liferpg/internal/engine"
	"liferpg/internal/progression"
	"liferpg/internal/ui"
)

func idArg(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New(name + " is required")
		}
		if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
			return errors.New(name + " must be an integer")
		}
		return nil
	}
}

func oneArg(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New(name + " is required")
		}
		return nil
	}
}

// printSideEffects reports what happened around an operation: a streak break
// detected on load and any achievements it unlocked.
func printSideEffects(out io.Writer, res *engine.Result) {
	if res == nil {
		return
	}
	switch {
	case res.Streak.Restored:
		fmt.Fprintln(out, ui.Good.Render(ui.IconShield+" Streak saved by a banked recovery item"))
	case res.Streak.Broken:
		fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Streak broken"))
	}
	for _, a := range res.Unlocked {
		fmt.Fprintf(out, "%s %s %s\n", ui.Gold.Render(ui.IconTrophy+" Achievement unlocked:"), a.Name, ui.Muted.Render(fmt.Sprintf("(+%d %s)", a.Reward, ui.IconCoin)))
	}
}

func printEntry(out io.Writer, e progression.LedgerEntry) {
	line := fmt.Sprintf("%s %s %s %s", ui.Muted.Render(e.At.Local().Format("2006-01-02 15:04")), ui.EffectIcon(e.Kind), e.ItemID, ui.StatusText(string(e.Outcome)))
	if e.Detail != "" {
		line += " " + ui.Muted.Render(e.Detail)
	}
	if e.Error != "" {
		line += " " + ui.Bad.Render(e.Error)
	}
	fmt.Fprintln(out, line)
}

func printEffect(out io.Writer, e progression.AppliedEffect) {
	until := "-"
	if e.ExpiresAt != nil {
		until = e.ExpiresAt.Local().Format("Jan 2 15:04")
	}
	fmt.Fprintf(out, "- %s %s x%.2g %s\n", ui.EffectIcon(e.Kind), e.ItemID, e.Multiplier, ui.Muted.Render("until "+until))
}
