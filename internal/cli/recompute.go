package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(recomputeCmd)
}

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Rebuild gamification state from the full journal history",
	Long: `Rebuild points, level, streak, milestones, and badge awards from
the complete activity history. Safe to run any number of times; the
derivation is idempotent.`,
	RunE: runRecompute,
}

func runRecompute(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	if _, err := svc.db.Ensure(svc.user()); err != nil {
		return err
	}
	res, err := svc.engine.Recompute(svc.user())
	if err != nil {
		return err
	}
	svc.notify.RecordResult(svc.user(), res)

	st := res.State
	fmt.Printf("Recomputed: %d points (base %d + streak %d + improvement %d + milestone %d), level %d, streak %d\n",
		st.TotalPoints, res.Points.Base, res.Points.StreakBonus,
		res.Points.ImprovementBonus, res.Points.MilestoneBonus, st.CurrentLevel, st.StreakDays)
	for _, b := range res.NewBadges {
		fmt.Printf("  🎖 Badge earned: %s (+%d pts)\n", b.Name, b.PointsReward)
	}
	return nil
}
