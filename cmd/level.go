package cmd

import (
	"fmt"
	"time"

	"pawtally/internal/cli"
	"pawtally/internal/pipeline"

	"github.com/spf13/cobra"
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Show pet-parent level, XP, and streak",
	RunE:  runLevel,
}

func init() {
	rootCmd.AddCommand(levelCmd)
}

func runLevel(_ *cobra.Command, _ []string) error {
	tr, closeStore, _, err := openTracker()
	if err != nil {
		return err
	}
	defer closeStore()

	now := time.Now()
	streak := pipeline.ComputeStreak(tr.Expenses(), now)
	xp := pipeline.ComputeTotalXP(tr.Pets(), tr.Expenses(), tr.Budgets(), streak, now)
	lvl := pipeline.ResolveLevel(xp)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LEVEL %d  %s", lvl.Level, lvl.Title)))
	fmt.Println()

	fmt.Printf("  XP          %s\n", cli.FormatNumber(int64(lvl.CurrentXP)))
	if lvl.IsMaxLevel {
		fmt.Println("  Progress    max level reached")
	} else {
		fmt.Printf("  Progress    %s  (%s XP to level %d)\n",
			cli.RenderBudgetBar(lvl.ProgressPercentage, 24),
			cli.FormatNumber(int64(lvl.XPNeeded)), lvl.Level+1)
	}

	switch {
	case streak.CurrentStreak > 0:
		fmt.Printf("  Streak      %d days  (last logged %s)\n", streak.CurrentStreak, streak.LastActivityDate)
	case streak.LastActivityDate != "":
		fmt.Printf("  Streak      broken  (last logged %s)\n", streak.LastActivityDate)
	default:
		fmt.Println("  Streak      none yet, log an expense to start one")
	}

	fmt.Println()
	fmt.Printf("  Pets %d · Expenses %d · Budgets %d · Active days %d\n",
		len(tr.Pets()), len(tr.Expenses()), len(tr.Budgets()),
		len(pipeline.ActivityDays(tr.Expenses())))

	return nil
}
