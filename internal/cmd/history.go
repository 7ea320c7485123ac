package cmd

import (
	"cmp"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/assetforge/assetctl/internal/config"
	"github.com/assetforge/assetctl/internal/history"
)

var historyFlags struct {
	database string
	limit    int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent build results from the history database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := newLogger()

		dbPath := historyFlags.database
		if dbPath == "" {
			root, err := config.Load(configPaths)
			if err != nil {
				return err
			}
			dbPath = root.History.Database
		}
		if dbPath == "" {
			return fmt.Errorf("no history database configured")
		}

		store, err := history.Open(cmd.Context(), dbPath, log)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(cmd.Context(), cmp.Or(historyFlags.limit, 50))
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"RUN", "TIME", "BUNDLE", "TARGET", "STATUS", "DETAIL"})
		for _, e := range entries {
			status, detail := "ok", e.Archive
			if !e.Ok {
				status, detail = "failed", e.Err
			}
			target := e.Target
			if target == "" {
				target = "-"
			}
			table.Append([]string{e.RunID, e.CreatedAt.Local().Format(time.DateTime), e.Bundle, target, status, detail})
		}
		table.Render()
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyFlags.database, "database", "", "history database path (default from configuration)")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 50, "maximum number of results to show")
	rootCmd.AddCommand(historyCmd)
}
