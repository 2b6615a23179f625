package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/quench-app/quench/internal/domain"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your points, level, streak, and milestones",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	st, err := svc.db.Load(svc.user())
	if errors.Is(err, domain.ErrStateNotFound) {
		fmt.Println("No entries yet. Start with: quench log -i 5")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("User:    %s\n", st.UserID)
	fmt.Printf("Points:  %d\n", st.TotalPoints)
	fmt.Printf("Level:   %d\n", st.CurrentLevel)
	fmt.Printf("Streak:  %d day(s)\n", st.StreakDays)
	if !st.LastActionDate.IsZero() {
		fmt.Printf("Last log: %s\n", st.LastActionDate.Format("2006-01-02"))
	}

	if len(st.MilestoneFlags) > 0 {
		flags := make([]string, 0, len(st.MilestoneFlags))
		for f := range st.MilestoneFlags {
			flags = append(flags, f)
		}
		sort.Strings(flags)
		fmt.Println("Milestones:")
		for _, f := range flags {
			fmt.Printf("  ✓ %s\n", f)
		}
	}

	if len(st.LevelAchievements) > 0 {
		fmt.Println("Levels reached:")
		for _, a := range st.LevelAchievements {
			fmt.Printf("  ★ L%d (%s) on %s\n",
				a.Level, a.MilestoneType, a.AchievedAt.Format("2006-01-02"))
		}
	}
	return nil
}
