package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"pricescan/pkg/config"
	"pricescan/pkg/files"
	"pricescan/pkg/scanner"
	"pricescan/pkg/session"
)

// RunTerminal - price terminal over a keyboard-wedge scanner typing into in.
func RunTerminal(ctx context.Context, config *config.Terminal, in io.Reader, out io.Writer) error {
	logger := getLogger("TerminalApp")

	logger.Sugar().Infof("start TerminalApp")

	prices, closeLedger, err := openLedger(logger, config.Ledger)
	if err != nil {
		return err
	}
	defer closeLedger()

	input := bufio.NewReader(in)
	decoder := scanner.NewWedge(logger, input)
	controller := session.NewController(logger, prices, decoder, session.NewTerminal(out), scanner.NewOptions(config.Scanner))

	s := session.New()
	logger.Sugar().Infof("session=%s started", s.ID)
	if err := controller.Run(ctx, s, input); err != nil {
		logger.Sugar().Errorf("session=%s failed: (%s)", s.ID, err.Error())
		return err
	}

	logger.Sugar().Infof("TerminalApp stopped. Bye!")
	return nil
}

// RunList - prints every saved price.
func RunList(ctx context.Context, config *config.Terminal, out io.Writer) error {
	logger := getLogger("ListApp")

	prices, closeLedger, err := openLedger(logger, config.Ledger)
	if err != nil {
		return err
	}
	defer closeLedger()

	for _, record := range prices.Load(ctx) {
		if _, err := fmt.Fprintln(out, record); err != nil {
			return err
		}
	}
	return nil
}

// RunImport - imports code,price CSV files, directories contribute their .csv files.
func RunImport(ctx context.Context, config *config.Terminal, paths []string) error {
	logger := getLogger("ImportApp")

	logger.Sugar().Infof("start ImportApp")

	toImport, err := files.Collect(paths)
	if err != nil {
		logger.Sugar().Errorf("unable to collect files: (%s)", err.Error())
		return err
	}

	prices, closeLedger, err := openLedger(logger, config.Ledger)
	if err != nil {
		return err
	}
	defer closeLedger()

	importer := files.NewImporter(logger, prices, config.Importer)
	report, err := importer.Import(ctx, toImport)
	if err != nil {
		logger.Sugar().Errorf("unable to import files: (%s)", err.Error())
		return err
	}

	logger.Sugar().Infof("ImportApp done, files=%d, failed=%d, imported=%d, skipped=%d", report.Files, report.Failed, report.Imported, report.Skipped)
	return nil
}
