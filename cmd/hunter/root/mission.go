package root

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"liferpg/internal/engine"
	"liferpg/internal/storage"
	"liferpg/internal/ui"
)

func newMissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mission",
		Aliases: []string{"m"},
		Short:   "Manage missions",
	}
	cmd.AddCommand(newMissionAddCmd(), newMissionListCmd(), newMissionDoneCmd(), newMissionRerollCmd())
	return cmd
}

func newMissionAddCmd() *cobra.Command {
	var rank, category, skill, every string
	var xp int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a mission",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := engine.ParseRank(rank)
			if err != nil {
				return err
			}
			rec, err := engine.ParseRecurrence(every)
			if err != nil {
				return err
			}
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			m, err := svc.AddMission(ctx, engine.AddMissionInput{
				Title:      strings.Join(args, " "),
				Category:   category,
				Rank:       r,
				SkillID:    skill,
				XPReward:   xp,
				Recurrence: rec,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n", ui.Good.Render(ui.IconPlus+" Added"), m.ID, m.Title,
				ui.Muted.Render(fmt.Sprintf("(%d xp, %d %s)", m.XPReward, m.CoinReward, ui.IconCoin)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&rank, "rank", "r", "E", "Rank (E|D|C|B|A|S)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (body|mind|art|social|career)")
	cmd.Flags().StringVarP(&skill, "skill", "s", "", "Skill that receives the XP")
	cmd.Flags().IntVar(&xp, "xp", 0, "Override the XP reward")
	cmd.Flags().StringVarP(&every, "every", "e", "", "Repeat the mission (daily|weekly|monthly)")
	return cmd
}

func newMissionListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List missions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if status == "all" {
				status = ""
			}
			list, err := svc.ListMissions(ctx, status)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconMission, "Missions"))
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No missions."))
				return nil
			}
			for _, m := range list {
				extra := m.Category
				if m.SkillID != nil {
					extra += ", " + *m.SkillID
				}
				if m.Recurrence != "" {
					extra += ", " + m.Recurrence
					if m.NextDueAt != nil && time.Now().Before(*m.NextDueAt) {
						extra += ", due " + m.NextDueAt.Local().Format("Jan 2")
					}
				}
				fmt.Fprintf(out, "- #%d %s %s %s %s\n", m.ID, m.Title, ui.StatusText(m.Status),
					ui.Gold.Render(fmt.Sprintf("%d xp", m.XPReward)), ui.Muted.Render("("+extra+")"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", storage.StatusActive, "Filter by status (active|done|all)")
	return cmd
}

func newMissionDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a mission",
		Args:  idArg("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := strconv.ParseInt(args[0], 10, 64)
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CompleteMission(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSideEffects(out, &res.Result)
			xp := fmt.Sprintf("+%d xp", res.XPAwarded)
			if res.Multiplier > 1 {
				xp += fmt.Sprintf(" (x%.2g)", res.Multiplier)
			}
			fmt.Fprintf(out, "%s #%d %s %s\n", ui.Good.Render(ui.IconDone+" Done"), id, ui.Gold.Render(xp),
				ui.Muted.Render(fmt.Sprintf("+%d %s", res.CoinsEarned, ui.IconCoin)))
			if res.LevelUp {
				fmt.Fprintf(out, "%s %d → %d\n", ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
			}
			if res.NextDueAt != nil {
				fmt.Fprintln(out, ui.Muted.Render("Back on "+res.NextDueAt.Local().Format("Mon Jan 2")))
			}
			if res.SkillLevelUp {
				fmt.Fprintln(out, ui.Gold.Render(ui.IconBook+" Skill level up"))
			}
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d", ui.IconFire, res.State.Profile.Streak)))
			return nil
		},
	}
}

func newMissionRerollCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "reroll <token> <title>",
		Short: "Redeem a reroll token for a new mission title",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("token and title are required")
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

			m, err := svc.RedeemReroll(ctx, args[0], strings.Join(args[1:], " "), category)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Good.Render(ui.IconScroll+" Rerolled"), m.ID, m.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "New category (default keeps the current one)")
	return cmd
}
