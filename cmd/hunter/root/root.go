package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"liferpg/internal/ui"
)

const Version = "0.2.0"

var (
	configPath string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:           "hunter",
	Short:         "Hunter: life-RPG progression in your terminal",
	Long:          "Hunter turns missions, goals and skills into RPG progression: XP, levels, streaks, shop items, achievements and dungeon events.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.hunter/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file (overrides config)")

	rootCmd.AddCommand(
		newStatusCmd(),
		newShopCmd(),
		newBuyCmd(),
		newUseCmd(),
		newMissionCmd(),
		newGoalCmd(),
		newSkillCmd(),
		newAchievementsCmd(),
		newDungeonCmd(),
		newStreakCmd(),
		newLedgerCmd(),
		newBoardCmd(),
		newServeCmd(),
		newConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
