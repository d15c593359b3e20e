package root

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"liferpg/internal/ui"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"g"},
		Short:   "Manage long-term goals",
	}
	cmd.AddCommand(newGoalAddCmd(), newGoalListCmd(), newGoalDoneCmd())
	return cmd
}

func newGoalAddCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			g, err := svc.AddGoal(ctx, strings.Join(args, " "), category)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Good.Render(ui.IconPlus+" Added goal"), g.ID, g.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (body|mind|art|social|career)")
	return cmd
}

func newGoalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.ListGoals(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconGoal, "Goals"))
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No active goals."))
			}
			for _, g := range list {
				fmt.Fprintf(out, "- #%d %s %s\n", g.ID, g.Title, ui.Muted.Render("("+g.Category+")"))
			}
			return nil
		},
	}
}

func newGoalDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a goal",
		Args:  idArg("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := strconv.ParseInt(args[0], 10, 64)
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CompleteGoal(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSideEffects(out, res)
			fmt.Fprintf(out, "%s #%d\n", ui.Good.Render(ui.IconGoal+" Goal complete"), id)
			return nil
		},
	}
}
