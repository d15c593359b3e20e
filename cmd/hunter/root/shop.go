package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"liferpg/internal/progression"
	"liferpg/internal/ui"
)

func newShopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "List items for sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCoin, "Shop"))
			for _, item := range svc.Shop() {
				fmt.Fprintf(out, "- %s %s %s %s\n",
					ui.EffectIcon(item.Effect.Kind()),
					ui.Key.Render(item.ID),
					ui.Gold.Render(fmt.Sprintf("%d %s", item.Price, ui.IconCoin)),
					ui.Muted.Render(item.Description))
			}
			return nil
		},
	}
}

func newBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <item>",
		Short: "Buy one unit of a shop item",
		Args:  oneArg("item"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Buy(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSideEffects(out, res)
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Bought"), args[0],
				ui.Muted.Render(fmt.Sprintf("(%d %s left)", res.State.Profile.Currency, ui.IconCoin)))
			return nil
		},
	}
}

func newUseCmd() *cobra.Command {
	var skillID string
	var missionID int64

	cmd := &cobra.Command{
		Use:   "use <item>",
		Short: "Use an owned item",
		Args:  oneArg("item"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Use(ctx, args[0], progression.Target{SkillID: skillID, MissionID: missionID})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSideEffects(out, &res.Result)
			printEntry(out, res.Entry)
			if res.Applied != nil {
				printEffect(out, *res.Applied)
			}
			if res.Token != nil {
				fmt.Fprintf(out, "%s %s\n", ui.LabelValue("Reroll token", res.Token.ID),
					ui.Muted.Render(fmt.Sprintf("(hunter mission reroll %s <title>)", res.Token.ID)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&skillID, "skill", "", "Target skill for skill boosts")
	cmd.Flags().Int64Var(&missionID, "mission", 0, "Target mission for rerolls")
	return cmd
}
