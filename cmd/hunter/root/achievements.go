package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	var evaluate bool

	cmd := &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"ach"},
		Short:   "Show achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if evaluate {
				newly, err := svc.EvaluateAchievements(ctx)
				if err != nil {
					return err
				}
				printSideEffects(out, &engine.Result{Unlocked: newly})
			}

			views, err := svc.Achievements(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements %d/%d", engine.CountEarned(views), len(views))))
			for _, v := range views {
				name := ui.Muted.Render(v.Name)
				mark := "🔒"
				if v.Earned {
					name = ui.Good.Render(v.Name)
					mark = v.Icon
				}
				fmt.Fprintf(out, "- %s %s %s %s\n", mark, name, ui.Muted.Render(v.Description),
					ui.Gold.Render(fmt.Sprintf("+%d %s", v.Reward, ui.IconCoin)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&evaluate, "evaluate", false, "Re-check criteria before listing")
	return cmd
}
