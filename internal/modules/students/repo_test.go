package students

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gdb, mock
}

func TestListCombinesFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepo(db)

	like := "%juan%"
	mock.ExpectQuery(`SELECT count\(\*\) FROM .students. WHERE \(first_name LIKE \? OR last_name LIKE \? OR email LIKE \? OR uli LIKE \?\) AND province = \? AND sex = \?`).
		WithArgs(like, like, like, like, "Cebu", "Female").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "uli", "province", "sex", "status", "created_at"}).
		AddRow(7, "Juana", "Reyes", "juana@example.com", "ULI-007", "Cebu", "Female", "pending", time.Now())
	mock.ExpectQuery(`SELECT \* FROM .students. WHERE .+ ORDER BY created_at DESC LIMIT 30`).
		WithArgs(like, like, like, like, "Cebu", "Female").
		WillReturnRows(rows)

	res, err := repo.List(context.Background(), ListParams{
		Q: "juan", Province: "Cebu", Sex: "Female", Page: 1, PageSize: 30,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Juana", res.Items[0].FirstName)
	assert.Equal(t, "Cebu", res.Items[0].Province)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBlankFiltersAreOmitted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepo(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM .students.$`).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM .students. ORDER BY created_at DESC LIMIT 30`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	res, err := repo.List(context.Background(), ListParams{Page: 1, PageSize: 30})
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.Total)
	assert.Empty(t, res.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListClampsPage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepo(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM .students.`).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	// page 0 and an out-of-range size fall back to page 1, size 30
	mock.ExpectQuery(`SELECT \* FROM .students. ORDER BY created_at DESC LIMIT 30$`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.List(context.Background(), ListParams{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepo(db)

	mock.ExpectQuery(`SELECT \* FROM .students. WHERE id = \?`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateDetailsDuplicateKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepo(db)

	mock.ExpectExec(`UPDATE .students. SET`).
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.UpdateDetails(context.Background(), 3, map[string]any{"email": "taken@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdateDetailsMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepo(db)

	mock.ExpectExec(`UPDATE .students. SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateDetails(context.Background(), 404, map[string]any{"first_name": "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(&gomysql.MySQLError{Number: 1062}))
	assert.False(t, IsDuplicateKey(&gomysql.MySQLError{Number: 1452}))
	assert.False(t, IsDuplicateKey(context.DeadlineExceeded))
	assert.False(t, IsDuplicateKey(nil))
}
