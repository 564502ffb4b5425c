package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/meetscribe/internal/catalog"
)

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := catalog.Open(filepath.Join(cfg.DataDir, "catalog.db"))
		if err != nil {
			return err
		}
		defer cat.Close()

		entries, err := cat.List(sessionsLimit)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		for _, e := range entries {
			duration := e.EndedAt.Sub(e.StartedAt).Round(time.Second)
			fmt.Printf("%-24s %s  %8s  %4d records  %s\n",
				e.ConversationID,
				e.StartedAt.Local().Format("2006-01-02 15:04"),
				duration,
				e.Records,
				e.ExportPath)
		}
		return nil
	},
}

func init() {
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 20, "maximum number of sessions to list")
	rootCmd.AddCommand(sessionsCmd)
}
