package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"essay-feedback/api/internal/feedback"
	"essay-feedback/api/internal/store"
)

type runLister interface {
	Recent(ctx context.Context, rowPageID string, limit int) ([]feedback.Run, error)
}

func runsCmd(envFile *string) *cobra.Command {
	var (
		rowPageID string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent feedback runs for a Notion row (requires DATABASE_URL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rowPageID == "" {
				return errors.New("--row-page-id is required")
			}
			cfg, _, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is not set")
			}

			db, err := store.Open(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			return listRuns(cmd.Context(), store.NewRunRepo(db), rowPageID, limit, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&rowPageID, "row-page-id", "", "Notion database row to list runs for")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of runs to show")

	return cmd
}

func listRuns(ctx context.Context, repo runLister, rowPageID string, limit int, out io.Writer) error {
	runs, err := repo.Recent(ctx, rowPageID, limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintf(out, "no runs for row %s\n", rowPageID)
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(out, "%s  text=%s engine=%s model=%s degraded=%t write_status=%d write_ok=%t\n",
			r.CreatedAt.UTC().Format(time.RFC3339), r.TextPageID, r.Engine, r.Model,
			r.Degraded, r.WriteStatus, r.WriteOK)
	}
	return nil
}
