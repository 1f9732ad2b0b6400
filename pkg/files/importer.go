package files

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"pricescan/pkg/config"
	"pricescan/pkg/ledger"
	"pricescan/pkg/models"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type (
	Importer interface {
		// Import - parses code,price lines from files and saves them with a single ledger write.
		// Bad lines and unreadable files are logged and skipped.
		Import(ctx context.Context, files []File) (Report, error)
	}

	Report struct {
		Files    int
		Failed   int
		Imported int
		Skipped  int
	}

	result struct {
		records []models.PriceRecord
		skipped int
		err     error
	}

	importer struct {
		logger  *zap.Logger
		prices  ledger.Ledger
		workers int
	}
)

func NewImporter(logger *zap.Logger, prices ledger.Ledger, config config.Importer) Importer {
	log := logger.Named("FileImporter")
	workers := config.Workers
	if workers < 1 {
		workers = 1
	}
	return &importer{
		logger:  log,
		prices:  prices,
		workers: workers,
	}
}

func (p *importer) Import(ctx context.Context, files []File) (Report, error) {
	report := Report{Files: len(files)}

	queue := NewFileQueueInMem(len(files))
	for _, file := range files {
		if err := queue.Put(file); err != nil {
			return report, err
		}
	}
	_ = queue.Close()

	results := make([]result, len(files))
	wg := &sync.WaitGroup{}
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go p.readFiles(ctx, wg, queue, results)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return report, err
	}

	var records []models.PriceRecord
	for i, res := range results {
		if res.err != nil {
			p.logger.Sugar().Errorf("skip file=%s: (%s)", files[i], res.err.Error())
			report.Failed++
			continue
		}
		records = append(records, res.records...)
		report.Skipped += res.skipped
	}

	if err := p.prices.SaveAll(ctx, records); err != nil {
		return report, fmt.Errorf("can't save imported prices: %w", err)
	}
	report.Imported = len(records)
	p.logger.Sugar().Infof("imported files=%d, failed=%d, prices=%d, skipped lines=%d", report.Files, report.Failed, report.Imported, report.Skipped)
	return report, nil
}

func (p *importer) readFiles(ctx context.Context, wg *sync.WaitGroup, queue *FileQueueInMem, results []result) {
	defer wg.Done()
	data, err := queue.Data()
	if err != nil {
		p.logger.Sugar().Errorf("can't get file queue data: (%s)", err.Error())
		return
	}
	for file := range data {
		if ctx.Err() != nil {
			return
		}
		records, skipped, err := p.readFile(ctx, file)
		results[file.Index] = result{records: records, skipped: skipped, err: err}
	}
}

func (p *importer) readFile(ctx context.Context, file File) ([]models.PriceRecord, int, error) {
	p.logger.Sugar().Infof("start reading file=%s", file)
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, 0, fmt.Errorf("can't open file=%s: %w", file, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		records []models.PriceRecord
		skipped int
	)
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		line, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("can't read file=%s data: %w", file, err)
		}
		record, err := p.toRecord(line)
		if err != nil {
			p.logger.Sugar().Errorf("bad file=%s data, line=%d: (%s)", file, n, err.Error())
			skipped++
			continue
		}
		records = append(records, record)
	}
	p.logger.Sugar().Infof("done reading file=%s, prices=%d", file, len(records))
	return records, skipped, nil
}

func (p *importer) toRecord(line []string) (models.PriceRecord, error) {
	if len(line) != 2 {
		return models.PriceRecord{}, fmt.Errorf("2 columns expected, got=%d", len(line))
	}
	code := strings.TrimSpace(line[0])
	if code == "" {
		return models.PriceRecord{}, fmt.Errorf("empty code")
	}
	price, err := ledger.ParsePrice(line[1])
	if err != nil {
		return models.PriceRecord{}, err
	}
	return models.PriceRecord{Code: code, Price: price}, nil
}
