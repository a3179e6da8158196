package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"essay-feedback/api/internal/app"
	"essay-feedback/api/internal/feedback"
)

func runCmd(envFile *string) *cobra.Command {
	var req feedback.Request

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process one essay without starting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.TextPageID = strings.TrimSpace(req.TextPageID)
			req.RowPageID = strings.TrimSpace(req.RowPageID)
			if req.TextPageID == "" || req.RowPageID == "" {
				return errors.New("--text-page-id and --row-page-id are required")
			}
			return runOnce(cmd.Context(), *envFile, req, cmd)
		},
	}

	cmd.Flags().StringVar(&req.TextPageID, "text-page-id", "", "Notion page holding the essay")
	cmd.Flags().StringVar(&req.RowPageID, "row-page-id", "", "Notion database row receiving the feedback")
	cmd.Flags().StringVar(&req.LLMName, "llm-name", "", "Engine override (default: LLM_ENGINE)")

	return cmd
}

func runOnce(ctx context.Context, envFile string, req feedback.Request, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, logger, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() { _ = a.Close() }()

	if cfg.TriggerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TriggerTimeout)
		defer cancel()
	}

	run, err := a.Service.Process(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "row %s: engine=%s model=%s degraded=%t write_status=%d\n",
		run.RowPageID, run.Engine, run.Model, run.Degraded, run.WriteStatus)
	if !run.WriteOK {
		return fmt.Errorf("notion update failed with status %d", run.WriteStatus)
	}
	return nil
}
