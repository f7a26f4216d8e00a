package database

import (
	"context"
	stderrors "errors"
	"regexp"
	"testing"

	"menu-workers/internal/common/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockClient(t *testing.T) (*PostgresClient, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PostgresClient{DB: db}, mock
}

func TestMigrate_AppliesPending(t *testing.T) {
	c, mock := newMockClient(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS schema_migrations`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`)).
		WithArgs("001_menu").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS seasonal_menus`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO schema_migrations (version) VALUES ($1)`)).
		WithArgs("001_menu").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := c.Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"001_menu"}, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_SkipsRecorded(t *testing.T) {
	c, mock := newMockClient(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS schema_migrations`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM schema_migrations`)).
		WithArgs("001_menu").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	applied, err := c.Migrate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_FailureRollsBack(t *testing.T) {
	c, mock := newMockClient(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS schema_migrations`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM schema_migrations`)).
		WithArgs("001_menu").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS seasonal_menus`)).
		WillReturnError(stderrors.New("permission denied for schema public"))
	mock.ExpectRollback()

	_, err := c.Migrate(context.Background())
	assert.ErrorContains(t, err, "migration 001_menu")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	c := &PostgresClient{DB: db}

	mock.ExpectPing().WillReturnError(stderrors.New("connection refused"))
	assert.ErrorContains(t, c.Ping(context.Background()), "catalog postgres ping failed")
}

func TestRedis_PingAndClose(t *testing.T) {
	mr := miniredis.RunT(t)

	c := NewRedis(config.RedisConfig{Address: mr.Addr(), PoolSize: 4})
	assert.Equal(t, 4, c.GetClient().Options().PoolSize)
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.ErrorContains(t, c.Ping(context.Background()), "stock redis ping failed")
	assert.NoError(t, c.Close())
}

func TestNewRedis_DefaultPool(t *testing.T) {
	c := NewRedis(config.RedisConfig{Address: "localhost:0"})
	defer c.Close()
	assert.Equal(t, 10, c.GetClient().Options().PoolSize)
}
