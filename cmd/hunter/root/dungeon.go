package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

func newDungeonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dungeon",
		Short: "Offer, accept, decline or resolve a dungeon event",
	}

	run := func(cmd *cobra.Command, op func(ctx context.Context, svc *engine.Service) (*engine.DungeonResult, error)) error {
		ctx := context.Background()
		svc, cleanup, err := openService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := op(ctx, svc)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		printSideEffects(out, &res.Result)
		line := fmt.Sprintf("%s %s %s", ui.H2.Render(ui.IconGate+" Dungeon"), res.Event.SkillID, ui.StatusText(string(res.Event.State)))
		if res.Event.ResolvedAt != nil {
			if res.Event.Success {
				line += " " + ui.Good.Render("cleared")
			} else {
				line += " " + ui.Bad.Render("failed")
			}
		}
		fmt.Fprintln(out, line)
		return nil
	}

	offer := &cobra.Command{
		Use:   "offer <skill>",
		Short: "Offer a dungeon for a skill",
		Args:  oneArg("skill"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *engine.Service) (*engine.DungeonResult, error) {
				return svc.OfferDungeon(ctx, args[0])
			})
		},
	}
	accept := &cobra.Command{
		Use:   "accept",
		Short: "Accept the offered dungeon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *engine.Service) (*engine.DungeonResult, error) {
				return svc.AcceptDungeon(ctx)
			})
		},
	}
	decline := &cobra.Command{
		Use:   "decline",
		Short: "Decline the current dungeon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *engine.Service) (*engine.DungeonResult, error) {
				return svc.DeclineDungeon(ctx)
			})
		},
	}

	var failed bool
	resolve := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the accepted dungeon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *engine.Service) (*engine.DungeonResult, error) {
				return svc.ResolveDungeon(ctx, !failed)
			})
		},
	}
	resolve.Flags().BoolVar(&failed, "fail", false, "Resolve as failed")

	cmd.AddCommand(offer, accept, decline, resolve)
	return cmd
}
