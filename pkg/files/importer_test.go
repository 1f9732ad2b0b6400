package files

import (
	"context"
	"fmt"
	"os"
	"pricescan/pkg/config"
	"pricescan/pkg/ledger"
	"pricescan/pkg/models"
	"pricescan/pkg/storage"
	"pricescan/pkg/testutils"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestImporter(t *testing.T) (*importer, *ledger.MockLedger) {
	ctrl := gomock.NewController(t)
	prices := ledger.NewMockLedger(ctrl)
	imp := NewImporter(zap.NewNop(), prices, config.Importer{Workers: 2})
	return imp.(*importer), prices
}

func TestImporter_ToRecord(t *testing.T) {
	imp, _ := newTestImporter(t)

	record, err := imp.toRecord([]string{" 012345678905", "3.99 "})
	assert.NoError(t, err)
	assert.Equal(t, models.PriceRecord{Code: "012345678905", Price: decimal.RequireFromString("3.99")}, record)

	for _, line := range [][]string{
		{"012345678905"},
		{"012345678905", "3.99", "extra"},
		{"", "3.99"},
		{"012345678905", "abc"},
		{"012345678905", "-2"},
	} {
		_, err := imp.toRecord(line)
		assert.Error(t, err, line)
	}
}

func TestImporter_Import(t *testing.T) {
	imp, prices := newTestImporter(t)
	dir := t.TempDir()

	first := writeFile(t, dir, "first.csv", "code,price\n012345678905,3.99\n4006381333931,abc\n96385074,1\n")
	second := writeFile(t, dir, "second.csv", "012345678905,4.25\n")

	prices.EXPECT().
		SaveAll(gomock.Any(), []models.PriceRecord{
			{Code: "012345678905", Price: decimal.RequireFromString("3.99")},
			{Code: "96385074", Price: decimal.RequireFromString("1")},
			{Code: "012345678905", Price: decimal.RequireFromString("4.25")},
		}).
		Return(nil)

	report, err := imp.Import(context.Background(), []File{
		{Path: first, Name: "first.csv", Index: 0},
		{Path: second, Name: "second.csv", Index: 1},
	})
	assert.NoError(t, err)
	assert.Equal(t, Report{Files: 2, Imported: 3, Skipped: 2}, report)
}

func TestImporter_Import_SkipsUnreadableFile(t *testing.T) {
	imp, prices := newTestImporter(t)
	dir := t.TempDir()
	good := writeFile(t, dir, "good.csv", "96385074,2\n")

	prices.EXPECT().
		SaveAll(gomock.Any(), []models.PriceRecord{{Code: "96385074", Price: decimal.RequireFromString("2")}}).
		Return(nil)

	report, err := imp.Import(context.Background(), []File{
		{Path: dir + "/missing.csv", Name: "missing.csv", Index: 0},
		{Path: good, Name: "good.csv", Index: 1},
	})
	assert.NoError(t, err)
	assert.Equal(t, Report{Files: 2, Failed: 1, Imported: 1}, report)
}

func TestImporter_Import_SaveError(t *testing.T) {
	imp, prices := newTestImporter(t)
	good := writeFile(t, t.TempDir(), "good.csv", "96385074,2\n")

	prices.EXPECT().
		SaveAll(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("disk full"))

	_, err := imp.Import(context.Background(), []File{{Path: good, Name: "good.csv"}})
	assert.Error(t, err)
}

func TestImporter_Import_Generated(t *testing.T) {
	mem := storage.NewMemory()
	prices := ledger.NewLedger(zap.NewNop(), mem, config.Ledger{StorageKey: "prices"})
	imp := NewImporter(zap.NewNop(), prices, config.Importer{Workers: 3})
	dirs := []string{t.TempDir(), t.TempDir(), t.TempDir()}

	for _, dir := range dirs {
		path := testutils.GenerateTestData(20, dir)
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}
	files, err := Collect(dirs)
	assert.NoError(t, err)
	assert.Len(t, files, 3)

	report, err := imp.Import(context.Background(), files)
	assert.NoError(t, err)
	assert.Equal(t, 60, report.Imported)
	assert.Equal(t, 0, report.Skipped)
	// random codes may repeat across files
	assert.LessOrEqual(t, len(prices.Load(context.Background())), 60)
	assert.NotEmpty(t, prices.Load(context.Background()))
}
