package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"liferpg/internal/progression"
	"liferpg/internal/ui"
)

func newSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Manage skills",
	}
	cmd.AddCommand(newSkillAddCmd(), newSkillListCmd(), newSkillRmCmd())
	return cmd
}

func newSkillAddCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a skill",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("name is required")
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

			sk, err := svc.AddSkill(ctx, strings.Join(args, " "), category)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconPlus+" Added skill"), sk.Name, ui.Muted.Render("(id "+sk.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (body|mind|art|social|career)")
	return cmd
}

func newSkillListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List skills",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.ListSkills(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBook, "Skills"))
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No skills yet."))
			}
			for _, sk := range list {
				next := progression.SkillXPForLevel(sk.Level + 1)
				fmt.Fprintf(out, "- %s %s %s %s\n", ui.Key.Render(sk.ID), sk.Name,
					ui.Gold.Render(fmt.Sprintf("lvl %d", sk.Level)),
					ui.Muted.Render(fmt.Sprintf("(%s, %d/%d xp)", sk.Category, sk.XP, next)))
			}
			return nil
		},
	}
}

func newSkillRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a skill",
		Args:  oneArg("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteSkill(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconDone+" Deleted skill"), args[0])
			return nil
		},
	}
}
