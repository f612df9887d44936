package main

import (
	"context"
	"errors"
	"os"

	"fintrack/internal/amqp"
	"fintrack/internal/cli"
	"fintrack/internal/log"
	"fintrack/internal/sheets"
	gsheet "fintrack/internal/sheets/google"
	"fintrack/internal/sheets/memory"
	"fintrack/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig(os.Getenv("FINTRACK_CONFIG"))
	if err != nil {
		cli.Fatal(cli.SetupLogger("info", "text", log.ComponentWorker), "Configuration validation failed", err)
	}
	logger := cli.SetupLogger(cfg.LogLevel, cfg.LogFormat, log.ComponentWorker)
	logger.Info("Starting fintrack-worker", log.FieldOperation, log.OpStartup)

	if !cfg.AMQPEnabled() {
		cli.Fatal(logger, "AMQP_URL is required for the worker", errors.New("no broker configured"))
	}

	var ledger sheets.LedgerWriter
	if cfg.SheetsEnabled() {
		client, err := gsheet.New(context.Background(), gsheet.Options{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			cli.Fatal(logger, "Failed to initialize Google Sheets client", err)
		}
		ledger = client
		logger.Info("Mirroring record events to Google Sheets", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		ledger = memory.New()
		logger.Info("Google Sheets disabled, record events are only logged")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		cli.Fatal(logger, "Failed to initialize AMQP client", err)
	}

	ctx, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, func(context.Context) error {
		return amqpClient.Close()
	})

	mirror := worker.NewMirrorWorker(ledger)
	go func() {
		if err := amqpClient.ConsumeRecordEvents(ctx, mirror.HandleRecordEvent); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Record event consumption stopped", log.FieldError, err)
		}
	}()
	logger.Info("Consuming record events", "queue", cfg.AMQPQueue)

	cli.WaitForShutdown(ctx, done)
}
