package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List badges and which ones you have earned",
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	defs, err := svc.db.All()
	if err != nil {
		return err
	}
	earnedIDs, err := svc.db.ListIDs(svc.user())
	if err != nil {
		return err
	}
	earned := make(map[string]bool, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = true
	}

	for _, def := range defs {
		mark := " "
		if earned[def.ID] {
			mark = "✓"
		}
		fmt.Printf("[%s] %-18s %-11s +%-3d  %s\n",
			mark, def.Name, def.Type, def.PointsReward, def.Description)
	}
	fmt.Printf("\n%d of %d earned\n", len(earnedIDs), len(defs))
	return nil
}
