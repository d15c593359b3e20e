package root

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show hunter stats, effects and inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.Status(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			p := st.State.Profile
			printSideEffects(out, &st.Result)

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, p.Name))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%s %d/%d", ui.ProgressBar(p.CurrentXP, st.XPToNext, 20), p.CurrentXP, st.XPToNext)))
			fmt.Fprintln(out, ui.LabelValue("Coins", fmt.Sprintf("%s %d", ui.IconCoin, p.Currency)))
			streak := fmt.Sprintf("%s %d", ui.IconFire, p.Streak)
			if engine.StreakAtRisk(p, time.Now()) {
				streak += " " + ui.Warn.Render("(complete a mission today)")
			}
			fmt.Fprintln(out, ui.LabelValue("Streak", streak))
			if st.Multiplier > 1 {
				fmt.Fprintln(out, ui.LabelValue("XP multiplier", ui.Gold.Render(fmt.Sprintf("x%.2g", st.Multiplier))))
			}
			fmt.Fprintln(out, "")

			if len(p.Effects) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconBolt+" Active effects"))
				for _, e := range p.Effects {
					printEffect(out, e)
				}
				fmt.Fprintln(out, "")
			}

			if len(st.State.Inventory) > 0 {
				fmt.Fprintln(out, ui.H2.Render("🎒 Inventory"))
				ids := make([]string, 0, len(st.State.Inventory))
				for id := range st.State.Inventory {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				for _, id := range ids {
					fmt.Fprintf(out, "- %s x%d\n", id, st.State.Inventory[id])
				}
				fmt.Fprintln(out, "")
			}

			if len(st.State.Skills) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconBook+" Skills"))
				for _, sk := range st.State.Skills {
					fmt.Fprintf(out, "- %s %s %s\n", sk.Name, ui.Key.Render(fmt.Sprintf("lvl %d", sk.Level)), ui.Muted.Render(fmt.Sprintf("(%s, %d xp)", sk.Category, sk.XP)))
				}
				fmt.Fprintln(out, "")
			}

			if ev := p.Dungeon; ev != nil {
				fmt.Fprintf(out, "%s %s %s\n", ui.H2.Render(ui.IconGate+" Dungeon:"), ev.SkillID, ui.StatusText(string(ev.State)))
				fmt.Fprintln(out, "")
			}

			fmt.Fprintln(out, ui.LabelValue("Active missions", len(st.Missions)))
			fmt.Fprintln(out, ui.LabelValue("Active goals", len(st.Goals)))
			fmt.Fprintln(out, ui.LabelValue("Achievements", fmt.Sprintf("%d/%d", len(st.Unlocks), len(svc.AchievementDefs()))))
			return nil
		},
	}

	return cmd
}
