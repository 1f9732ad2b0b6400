//go:generate mockgen -source ledger.go -destination ledger_mock.go -package ledger Ledger

package ledger

import (
	"context"
	"fmt"
	"pricescan/pkg/config"
	"pricescan/pkg/errors"
	"pricescan/pkg/models"
	"pricescan/pkg/storage"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type (
	// Ledger - persisted code -> price mapping.
	// The whole mapping lives in a single storage item and every write rewrites it,
	// callers must not save from more than one goroutine at a time.
	Ledger interface {
		// Load - returns every saved record, a missing or unreadable mapping yields no records
		Load(ctx context.Context) []models.PriceRecord
		// Save - sets the price for code, overwriting any previous price
		Save(ctx context.Context, code string, price decimal.Decimal) error
		// SaveAll - sets prices for many codes with a single write
		SaveAll(ctx context.Context, records []models.PriceRecord) error
	}

	ledger struct {
		logger  *zap.Logger
		storage storage.Storage
		key     string
	}
)

func NewLedger(logger *zap.Logger, storage storage.Storage, config config.Ledger) Ledger {
	log := logger.Named("PriceLedger")
	l := &ledger{
		logger:  log,
		storage: storage,
		key:     config.StorageKey,
	}
	return l
}

// ParsePrice - parses user input into a price, rejecting blank, non-numeric and negative input.
func ParsePrice(input string) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return decimal.Zero, fmt.Errorf("%w: empty input", errors.ErrInvalidPrice)
	}
	price, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: input=%s is not a number", errors.ErrInvalidPrice, input)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: input=%s is negative", errors.ErrInvalidPrice, input)
	}
	if !withinExponent(price) {
		return decimal.Zero, fmt.Errorf("%w: input=%s is out of range", errors.ErrInvalidPrice, input)
	}
	return price, nil
}

func (l *ledger) Load(ctx context.Context) []models.PriceRecord {
	m, err := l.read(ctx)
	if err != nil {
		l.logger.Sugar().Errorf("can't read prices, key=%s: (%s)", l.key, err.Error())
		return []models.PriceRecord{}
	}
	return m.records()
}

func (l *ledger) Save(ctx context.Context, code string, price decimal.Decimal) error {
	return l.SaveAll(ctx, []models.PriceRecord{{Code: code, Price: price}})
}

func (l *ledger) SaveAll(ctx context.Context, records []models.PriceRecord) error {
	for _, record := range records {
		if err := validate(record); err != nil {
			return err
		}
	}
	if len(records) == 0 {
		return nil
	}

	m, err := l.read(ctx)
	if err != nil {
		l.logger.Sugar().Errorf("can't read prices, key=%s: (%s)", l.key, err.Error())
		return fmt.Errorf("%w: can't read prices, key=%s: %w", errors.ErrInternal, l.key, err)
	}
	for _, record := range records {
		m.set(record.Code, record.Price)
	}

	raw, err := m.encode()
	if err != nil {
		l.logger.Sugar().Errorf("can't encode prices, key=%s: (%s)", l.key, err.Error())
		return fmt.Errorf("%w: can't encode prices, key=%s: %w", errors.ErrInternal, l.key, err)
	}
	if err := l.storage.SetItem(ctx, l.key, raw); err != nil {
		l.logger.Sugar().Errorf("can't write prices, key=%s: (%s)", l.key, err.Error())
		return fmt.Errorf("%w: can't write prices, key=%s: %w", errors.ErrInternal, l.key, err)
	}

	l.logger.Sugar().Infof("saved prices=%d, total=%d", len(records), m.len())
	return nil
}

func (l *ledger) read(ctx context.Context) (*mapping, error) {
	raw, found, err := l.storage.GetItem(ctx, l.key)
	if err != nil {
		return nil, err
	}
	if !found {
		return newMapping(), nil
	}
	m, ok := parseMapping(raw)
	if !ok {
		l.logger.Sugar().Warnf("stored prices are corrupt, key=%s, treating as empty", l.key)
	}
	return m, nil
}

func validate(record models.PriceRecord) error {
	if strings.TrimSpace(record.Code) == "" {
		return errors.ErrNoScannedCode
	}
	if record.Price.IsNegative() {
		return fmt.Errorf("%w: price=%s is negative", errors.ErrInvalidPrice, record.Price)
	}
	return nil
}
