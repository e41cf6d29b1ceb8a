package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"payment-recon/internal/config"
	"payment-recon/internal/engine"
	"payment-recon/internal/repository"
	"payment-recon/internal/service"
	"payment-recon/pkg/logger"
)

type options struct {
	switchFiles  string
	gatewayFiles string
	format       string
	outPath      string
}

func main() {
	var opts options
	flag.StringVar(&opts.switchFiles, "switch", "", "Comma-separated list of switch export files (CSV or XLSX)")
	flag.StringVar(&opts.gatewayFiles, "gateway", "", "Comma-separated list of gateway export files (CSV or XLSX)")
	flag.StringVar(&opts.format, "format", "json", "Output format: json, csv or xlsx")
	flag.StringVar(&opts.outPath, "out", "", "Output file (defaults to stdout)")
	flag.Parse()

	if opts.switchFiles == "" && opts.gatewayFiles == "" {
		fmt.Fprintln(os.Stderr, "Error: at least one of -switch or -gateway is required.")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// The report may go to stdout.
	logger.GetLogger().SetOutput(os.Stderr)
	logger.Init(cfg.App.LogLevel)

	if err := run(context.Background(), cfg, opts, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}

// run owns every opened file, so they are closed before main decides the exit code.
func run(ctx context.Context, cfg *config.Config, opts options, stdout io.Writer) error {
	policy, err := engine.ParseDuplicatePolicy(cfg.App.DuplicatePolicy)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	reconService := service.NewReconciliationService(
		repository.NewMemoryRepository(),
		engine.NewReconciliationEngine(engine.Options{
			SwitchColumns:   cfg.Columns.Switch,
			GatewayColumns:  cfg.Columns.Gateway,
			DuplicatePolicy: policy,
		}),
	)

	switchFiles, closeSwitch, err := openFiles(opts.switchFiles)
	if err != nil {
		return fmt.Errorf("failed to open switch files: %w", err)
	}
	defer closeSwitch()

	gatewayFiles, closeGateway, err := openFiles(opts.gatewayFiles)
	if err != nil {
		return fmt.Errorf("failed to open gateway files: %w", err)
	}
	defer closeGateway()

	jobResult, err := reconService.Reconcile(ctx, switchFiles, gatewayFiles)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	output, err := render(ctx, reconService, jobResult, opts.format)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if opts.outPath == "" {
		_, err = stdout.Write(output)
		return err
	}
	if err := os.WriteFile(opts.outPath, output, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.outPath, err)
	}
	return nil
}

func render(ctx context.Context, svc service.ReconciliationService, jobResult *service.JobResult, format string) ([]byte, error) {
	if strings.EqualFold(format, "json") {
		output, err := json.MarshalIndent(jobResult.Result, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(output, '\n'), nil
	}

	exportFormat, err := service.ParseExportFormat(format)
	if err != nil {
		return nil, err
	}
	file, err := svc.Export(ctx, jobResult.Job.JobID, exportFormat)
	if err != nil {
		return nil, err
	}
	return file.Data, nil
}

func openFiles(list string) ([]service.Upload, func(), error) {
	var (
		uploads []service.Upload
		opened  []io.Closer
	)
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, path := range strings.Split(list, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		uploads = append(uploads, service.Upload{Name: filepath.Base(path), Reader: f})
	}

	return uploads, closeAll, nil
}
