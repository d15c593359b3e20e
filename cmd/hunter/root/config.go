package root

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"liferpg/internal/config"
	"liferpg/internal/ui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialise the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconInfo, "Configuration"))
			fmt.Fprintln(out, ui.LabelValue("Player", fmt.Sprintf("%s (%s)", cfg.Player.Name, cfg.Player.ID)))
			fmt.Fprintln(out, ui.LabelValue("Database", orDefault(cfg.DatabasePath)))
			fmt.Fprintln(out, ui.LabelValue("Stack policy", cfg.StackPolicy()))
			fmt.Fprintln(out, ui.LabelValue("Dungeon rewards", fmt.Sprintf("%d skill xp, %d coins", cfg.Dungeon.SuccessSkillXP, cfg.Dungeon.SuccessCurrency)))
			fmt.Fprintln(out, ui.LabelValue("Log level", cfg.Logging.Level))
			fmt.Fprintln(out, ui.LabelValue("API addr", cfg.Server.Addr))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			} else if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconDone+" Wrote"), path)
			return nil
		},
	})
	return cmd
}

func orDefault(s string) string {
	if s == "" {
		return ui.Muted.Render("(default)")
	}
	return s
}
