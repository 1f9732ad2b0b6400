package storage

import (
	"context"
	"fmt"
	"pricescan/pkg/config"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newTestMySQL(t *testing.T) (*MySQL, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	assert.NoError(t, err)
	repo := &MySQL{
		db: db,
	}
	return repo, mock
}

func TestMySQL_GetItem(t *testing.T) {
	repo, mock := newTestMySQL(t)
	expectedQuery := `
			SELECT item_value FROM local_storage
			WHERE item_key = ?
		`

	mock.ExpectQuery(expectedQuery).
		WithArgs("prices").
		WillReturnRows(sqlmock.NewRows([]string{"item_value"}).AddRow(`{"012345678905":3.99}`))

	value, found, err := repo.GetItem(context.Background(), "prices")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"012345678905":3.99}`, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQL_GetItem_NotFound(t *testing.T) {
	repo, mock := newTestMySQL(t)
	expectedQuery := `
			SELECT item_value FROM local_storage
			WHERE item_key = ?
		`

	mock.ExpectQuery(expectedQuery).
		WithArgs("prices").
		WillReturnRows(sqlmock.NewRows([]string{"item_value"}))

	_, found, err := repo.GetItem(context.Background(), "prices")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestMySQL_GetItem_Error(t *testing.T) {
	repo, mock := newTestMySQL(t)
	expectedQuery := `
			SELECT item_value FROM local_storage
			WHERE item_key = ?
		`

	mock.ExpectQuery(expectedQuery).
		WithArgs("prices").
		WillReturnError(fmt.Errorf("connection reset"))

	_, _, err := repo.GetItem(context.Background(), "prices")
	assert.Error(t, err)
}

func TestMySQL_SetItem(t *testing.T) {
	repo, mock := newTestMySQL(t)
	expectedQuery := `
			INSERT INTO local_storage (item_key, item_value) VALUES (?,?)
			ON DUPLICATE KEY UPDATE
				item_value = VALUES(item_value)
		`

	mock.ExpectExec(expectedQuery).
		WithArgs("prices", `{"012345678905":3.99}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetItem(context.Background(), "prices", `{"012345678905":3.99}`)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewMySQL_PingErrorClosesDB(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	assert.NoError(t, err)

	mock.ExpectPing().WillReturnError(fmt.Errorf("connection refused"))
	mock.ExpectClose()

	repo, err := newMySQL(db, config.Storage{Type: TypeMySQL})
	assert.Error(t, err)
	assert.Nil(t, repo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewMySQL_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	assert.NoError(t, err)

	mock.ExpectPing()

	repo, err := newMySQL(db, config.Storage{Type: TypeMySQL})
	assert.NoError(t, err)
	assert.NotNil(t, repo)
	assert.NoError(t, mock.ExpectationsWereMet())
}
