package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"liferpg/internal/ui"
)

func newStreakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Check the streak for a missed day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CheckStreak(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSideEffects(out, res)
			if !res.Streak.Broken {
				fmt.Fprintln(out, ui.Good.Render(ui.IconFire+" Streak intact"))
			}
			fmt.Fprintln(out, ui.LabelValue("Streak", res.State.Profile.Streak))
			return nil
		},
	}
}
