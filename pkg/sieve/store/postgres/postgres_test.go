package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/sieve/pkg/sieve/internalerr"
	"github.com/cognicore/sieve/pkg/sieve/store"
)

func TestEnsureTable_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS speeches").
		WillReturnResult(sqlmock.NewResult(0, 0))

	st := New(db)
	require.NoError(t, st.EnsureTable(context.Background(), "speeches"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureTable_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS speeches").
		WillReturnError(errors.New("permission denied"))

	err = New(db).EnsureTable(context.Background(), "speeches")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create table speeches")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureTable_InvalidName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = New(db).EnsureTable(context.Background(), "speeches;drop")
	require.ErrorIs(t, err, internalerr.ErrInvalidInput)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertText_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2025, 7, 4, 18, 30, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO speeches (date, text) VALUES ($1, $2) RETURNING id")).
		WithArgs(time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC), "Hello world text.").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := New(db).InsertText(context.Background(), "speeches", store.Row{Date: date, Text: "Hello world text."})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertText_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO speeches").
		WillReturnError(errors.New("connection reset"))

	_, err = New(db).InsertText(context.Background(), "speeches", store.Row{Date: time.Now(), Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert into speeches")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListTexts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	d1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, date, text FROM speeches ORDER BY id LIMIT $1")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "text"}).
			AddRow(int64(1), d1, "one").
			AddRow(int64(2), nil, nil))

	rows, err := New(db).ListTexts(context.Background(), "speeches", 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "one", rows[0].Text)
	assert.True(t, rows[0].Date.Equal(d1))
	assert.True(t, rows[1].Date.IsZero())
	assert.Equal(t, "", rows[1].Text)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListTexts_NoLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, date, text FROM speeches ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "text"}))

	rows, err := New(db).ListTexts(context.Background(), "speeches", 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{
		Host:     "localhost",
		Port:     5432,
		User:     "analyst",
		Password: "it's secret",
		DBName:   "speeches_db",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		`host=localhost port=5432 user=analyst password='it\'s secret' dbname=speeches_db sslmode=disable`,
		cfg.DSN())

	assert.Equal(t, "dbname=x", Config{DBName: "x"}.DSN())
}

func TestOpen_EmptyDBName(t *testing.T) {
	_, err := Open(context.Background(), Config{Host: "localhost"})
	require.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestOpen_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Port 1 on loopback refuses connections.
	_, err := Open(ctx, Config{Host: "127.0.0.1", Port: 1, DBName: "x", SSLMode: "disable"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
}
