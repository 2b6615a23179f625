package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quench-app/quench/internal/app/journal"
)

func init() {
	logCmd.Flags().IntVarP(&logIntensity, "intensity", "i", 5, "How angry, 1 (mild) to 10 (boiling)")
	logCmd.Flags().BoolVar(&logAdvice, "advice", false, "Mark the entry as having received advice")
	logCmd.Flags().StringSliceVarP(&logEmotions, "emotions", "e", nil, "Emotion labels (e.g. frustrated,hurt)")
	logCmd.Flags().StringVarP(&logTrigger, "trigger", "t", "", "What set it off")
	rootCmd.AddCommand(logCmd)
}

var (
	logIntensity int
	logAdvice    bool
	logEmotions  []string
	logTrigger   string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log an anger event",
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	res, err := svc.journal.Log(journal.Entry{
		UserID:    svc.user(),
		Intensity: logIntensity,
		HasAdvice: logAdvice,
		Emotions:  logEmotions,
		Trigger:   logTrigger,
	})
	if err != nil {
		return err
	}
	svc.notify.RecordResult(svc.user(), res)

	st := res.State
	fmt.Printf("Logged. %d points, level %d, %d-day streak\n",
		st.TotalPoints, st.CurrentLevel, st.StreakDays)
	for _, a := range res.NewAchievements {
		fmt.Printf("  ★ Level %d reached (%s)\n", a.Level, a.MilestoneType)
	}
	for _, b := range res.NewBadges {
		fmt.Printf("  🎖 Badge earned: %s (+%d pts)\n", b.Name, b.PointsReward)
	}
	return nil
}
