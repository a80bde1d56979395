package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/export"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	GroupID: "listing",
	Short:   "Export every dog matching a filter as JSONL",
	Long: `Export every dog matching a filter as JSON Lines.

The first line is a header describing the export; each following line is one
dog. Output goes to stdout unless --out or --s3 is given. Several --out flags
and --s3 may be combined; every destination receives the same document.

With --every the export repeats on that interval until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		q, err := filterQuery(ctx, cmd, 1)
		if err != nil {
			return err
		}
		maxPages, _ := cmd.Flags().GetInt("max-pages")
		every, _ := cmd.Flags().GetDuration("every")
		if maxPages < 0 {
			return errors.New("--max-pages must not be negative")
		}
		if every < 0 {
			return errors.New("--every must not be negative")
		}

		var dests []export.Destination
		outs, _ := cmd.Flags().GetStringArray("out")
		for _, path := range outs {
			dests = append(dests, &export.FileDestination{Path: path})
		}
		if toS3, _ := cmd.Flags().GetBool("s3"); toS3 {
			if cfg.ExportS3Bucket == "" {
				return errors.New("--s3 requires export.s3_bucket to be configured")
			}
			d, err := export.NewS3Destination(ctx, cfg.ExportS3Bucket, cfg.ExportS3Key, cfg.ExportS3Region, cfg.ExportS3Endpoint)
			if err != nil {
				return err
			}
			dests = append(dests, d)
		}
		if len(dests) == 0 {
			dests = append(dests, &export.WriterDestination{W: cmd.OutOrStdout(), Label: "stdout"})
		}

		log := logger.Named("export")
		exporter := export.NewExporter(gateway, q.Filter, cfg.PageSize, maxPages, log)
		sched := export.NewScheduler(exporter, dests, every, log)

		if every == 0 {
			summary, err := sched.RunOnce(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d dogs (%d pages)\n", summary.Dogs, summary.Pages)
			return nil
		}

		log.Info("exporting periodically", zap.Duration("every", every), zap.Int("destinations", len(dests)))
		sched.Start()
		<-ctx.Done()
		sched.Stop()
		return nil
	},
}

func init() {
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringArray("out", nil, "write to this file (repeatable)")
	exportCmd.Flags().Bool("s3", false, "upload to the configured S3 bucket")
	exportCmd.Flags().Duration("every", 0, "repeat the export on this interval")
	exportCmd.Flags().Int("max-pages", 0, "stop after this many pages (0: no limit)")
}
