package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"telehealth_flow/internal/config"
	"telehealth_flow/internal/domain/audit"
	"telehealth_flow/internal/infrastructure/logger"
	"telehealth_flow/internal/infrastructure/storage"
	"telehealth_flow/internal/usecase"

	"github.com/spf13/cobra"
)

func auditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit trail tooling",
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export a flow audit trail as NDJSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			flowID, _ := cmd.Flags().GetString("flow-id")
			out, _ := cmd.Flags().GetString("out")
			bucket, _ := cmd.Flags().GetString("bucket")
			endpoint, _ := cmd.Flags().GetString("endpoint")
			verify, _ := cmd.Flags().GetBool("verify")
			return runAuditExport(cmd.Context(), cmd.OutOrStdout(), flowID, out, bucket, endpoint, verify)
		},
	}
	exportCmd.Flags().String("flow-id", "", "Flow to export")
	exportCmd.Flags().String("out", "", "Output file (stdout when empty)")
	exportCmd.Flags().String("bucket", "", "Upload to this S3 bucket instead of writing locally (defaults to AUDIT_EXPORT_BUCKET)")
	exportCmd.Flags().String("endpoint", "", "Custom S3 endpoint (MinIO, localstack)")
	exportCmd.Flags().Bool("verify", true, "Check the trail is a valid path through the state machine before exporting")
	_ = exportCmd.MarkFlagRequired("flow-id")

	cmd.AddCommand(exportCmd)
	return cmd
}

func runAuditExport(ctx context.Context, stdout io.Writer, flowID, out, bucket, endpoint string, verify bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	flowID = strings.TrimSpace(flowID)
	if flowID == "" {
		return usecase.ErrInvalidFlowID
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Env, cfg.LogLevel)

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	digester, err := audit.NewDigester(cfg.AuditDigestAlgorithm, cfg.AuditDigestKey)
	if err != nil {
		return err
	}
	trail := usecase.NewAuditTrail(store, store, digester)

	if verify {
		if err := trail.Verify(ctx, flowID); err != nil {
			return fmt.Errorf("verify audit trail of %s: %w", flowID, err)
		}
	}
	entries, err := trail.List(ctx, flowID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: %s", usecase.ErrFlowNotFound, flowID)
	}

	if bucket == "" && out == "" {
		bucket = cfg.AuditExportBucket
	}
	if bucket != "" {
		var buf bytes.Buffer
		if err := audit.WriteNDJSON(&buf, entries); err != nil {
			return err
		}
		exporter, err := storage.NewS3AuditExporter(ctx, bucket, cfg.AWSRegion, endpoint)
		if err != nil {
			return err
		}
		key, err := exporter.Upload(ctx, flowID, &buf)
		if err != nil {
			return err
		}
		log.Info().Str("flow_id", flowID).Str("bucket", bucket).Str("key", key).Int("entries", len(entries)).Msg("audit trail uploaded")
		return nil
	}

	w := stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}
	if err := audit.WriteNDJSON(w, entries); err != nil {
		return err
	}
	log.Info().Str("flow_id", flowID).Int("entries", len(entries)).Msg("audit trail exported")
	return nil
}
