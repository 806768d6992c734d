package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the message dashboard counters",
	Long: `Show the aggregate counters for the message collection: total plus
one counter per handling status used by the dashboard.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService()
	if err != nil {
		return err
	}
	defer closeDB()

	stats := svc.Stats()

	if IsJSON() {
		data, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Total:        %d\n", stats.Total)
	fmt.Printf("Unread:       %d\n", stats.Unread)
	fmt.Printf("Read:         %d\n", stats.Read)
	fmt.Printf("Archived:     %d\n", stats.Archived)
	fmt.Printf("In progress:  %d\n", stats.InProgress)
	fmt.Printf("Completed:    %d\n", stats.Completed)
	fmt.Printf("Urgent:       %d\n", stats.Urgent)

	return nil
}
