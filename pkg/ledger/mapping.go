package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"pricescan/pkg/models"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const (
	// maxExponent - bound on the decimal exponent of a price, beyond it the
	// value is kept as stored but never treated as a price
	maxExponent = 32
)

type (
	// mapping - code -> price pairs in document order. Entries whose value is
	// not a usable price are carried as raw JSON so a save writes them back as found.
	// Not safe for concurrent usage.
	mapping struct {
		keys   []string
		prices map[string]decimal.Decimal
		// key -> raw JSON value of entries that are not prices
		foreign map[string]string
	}
)

func newMapping() *mapping {
	return &mapping{
		prices:  make(map[string]decimal.Decimal),
		foreign: make(map[string]string),
	}
}

// parseMapping decodes a persisted blob. ok is false when the blob is not a JSON object,
// in which case the returned mapping is empty and usable.
func parseMapping(raw string) (m *mapping, ok bool) {
	m = newMapping()
	if !gjson.Valid(raw) {
		return m, false
	}
	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return m, false
	}
	doc.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			m.setForeign(key.String(), value.Raw)
			return true
		}
		price, err := decimal.NewFromString(value.Raw)
		if err != nil || !withinExponent(price) {
			m.setForeign(key.String(), value.Raw)
			return true
		}
		m.set(key.String(), price)
		return true
	})
	return m, true
}

func withinExponent(price decimal.Decimal) bool {
	exp := price.Exponent()
	return exp <= maxExponent && exp >= -maxExponent
}

func (m *mapping) add(key string) {
	_, isPrice := m.prices[key]
	_, isForeign := m.foreign[key]
	if !isPrice && !isForeign {
		m.keys = append(m.keys, key)
	}
}

func (m *mapping) set(code string, price decimal.Decimal) {
	m.add(code)
	delete(m.foreign, code)
	m.prices[code] = price
}

func (m *mapping) setForeign(key string, raw string) {
	m.add(key)
	delete(m.prices, key)
	m.foreign[key] = raw
}

func (m *mapping) len() int {
	return len(m.prices)
}

func (m *mapping) records() []models.PriceRecord {
	records := make([]models.PriceRecord, 0, len(m.prices))
	for _, code := range m.keys {
		if p, ok := m.prices[code]; ok {
			records = append(records, models.PriceRecord{Code: code, Price: p})
		}
	}
	return records
}

func (m *mapping) encode() (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encoded, err := json.Marshal(key)
		if err != nil {
			return "", fmt.Errorf("can't encode code=%s: %w", key, err)
		}
		buf.Write(encoded)
		buf.WriteByte(':')
		if p, ok := m.prices[key]; ok {
			buf.WriteString(p.String())
		} else {
			buf.WriteString(m.foreign[key])
		}
	}
	buf.WriteByte('}')
	return buf.String(), nil
}
