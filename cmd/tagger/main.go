package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stock-image-tagger/internal/container"
	"stock-image-tagger/internal/logger"
)

var (
	flagTables    string
	flagCategory  string
	flagReleases  string
	flagReportDir string
	flagDryRun    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tagger <directory>",
		Short: "Generate Adobe Stock metadata for a directory of images",
		Long: `tagger analyzes every image in a directory with the Gemini API and
generates marketplace-ready metadata: title, description, keywords, a new
abbreviated filename, use cases and target audience. One CSV row is written
per image; files are renamed in place unless --dry-run is given.`,
		Args: cobra.ExactArgs(1),
		RunE: run,

		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&flagTables, "config", "c", "", "path to the tables document (YAML)")
	rootCmd.Flags().StringVar(&flagCategory, "category", "", "Adobe Stock category for all images")
	rootCmd.Flags().StringVar(&flagReleases, "releases", "", "release identifiers for all images")
	rootCmd.Flags().StringVar(&flagReportDir, "report-dir", ".", "directory for the CSV report")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "generate metadata without renaming files")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Stop cleanly on operator interrupt; completed records are kept.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := container.NewContainer(ctx, container.Options{
		TablesPath: flagTables,
		ReportDir:  flagReportDir,
		DryRun:     flagDryRun,
	})
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.WithError(err).Error("Failed to close report")
		}
	}()

	summary, err := c.Orchestrator().Run(ctx, args[0], flagCategory, flagReleases)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"report":  c.ReportPath(),
		"metrics": c.Metrics().Summary(),
	}).Info("Run complete")

	// A populated error field on any record surfaces in the exit status.
	if summary.Failed > 0 {
		os.Exit(1)
	}
	return nil
}
