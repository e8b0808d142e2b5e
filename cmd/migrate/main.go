package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"rental-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/kelseyhightower/envconfig"
)

const (
	defaultSchema = "file://migrations/001_initial_schema.sql"
	defaultDevURL = "docker://postgres/17/dev"
)

// Applies the declarative schema to the database configured through the
// usual DB_* variables.
func main() {
	schema := flag.String("schema", defaultSchema, "desired schema as an atlas URL")
	devURL := flag.String("dev-url", defaultDevURL, "atlas dev database used to plan changes")
	dryRun := flag.Bool("dry-run", false, "print the plan without applying it")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		logger.Error("failed to load database config", "error", err)
		os.Exit(1)
	}

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		logger.Error("atlas binary not available", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := client.SchemaApply(ctx, &atlasexec.SchemaApplyParams{
		URL:         dbCfg.BuildDSN(),
		To:          *schema,
		DevURL:      *devURL,
		DryRun:      *dryRun,
		AutoApprove: true,
	})
	if err != nil {
		logger.Error("schema apply failed", "error", err)
		os.Exit(1)
	}

	logger.Info("schema applied",
		"database", dbCfg.DBName,
		"planned", len(res.Changes.Pending),
		"applied", len(res.Changes.Applied),
		"dry_run", *dryRun)
}
