package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayusman/nidra/internal/dataset"
	"github.com/ayusman/nidra/internal/session"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize collection sessions and label balance",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().String("db", envOr("NIDRA_DB", ""), "Session database path (default ~/.nidra/nidra.db)")
}

func runStats(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dir, err := dataDir()
		if err != nil {
			return err
		}
		dbPath = filepath.Join(dir, "nidra.db")
	}

	store, err := session.New(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.Sessions().List()
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No collection sessions recorded yet.")
		return nil
	}

	fmt.Printf("%-36s  %-19s  %-8s  %7s  %7s\n", "SESSION", "STARTED", "STATUS", "DROWSY", "ALERT")
	for _, s := range sessions {
		status := "running"
		if s.EndedAt != nil {
			status = "done"
		}
		fmt.Printf("%-36s  %-19s  %-8s  %7d  %7d\n",
			s.ID,
			s.StartedAt.Local().Format(time.DateTime),
			status,
			s.Counts[dataset.LabelDrowsy],
			s.Counts[dataset.LabelAlert],
		)
	}

	totals, err := store.Sessions().Totals()
	if err != nil {
		return err
	}

	drowsy := totals[dataset.LabelDrowsy]
	alert := totals[dataset.LabelAlert]
	fmt.Printf("\nTotal samples: %d (drowsy %d, alert %d)\n", drowsy+alert, drowsy, alert)

	return nil
}
