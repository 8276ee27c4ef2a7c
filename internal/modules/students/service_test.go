package students

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveCompletionGuardsOnStatus(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	// the student is not in "approved", so the guarded UPDATE hits nothing
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE .students. SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := svc.ApproveCompletion(context.Background(), 5, 1)
	assert.ErrorIs(t, err, ErrNotActionable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveCompletionWritesAuditEntry(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE .students. SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO .activity_log.`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := svc.ApproveCompletion(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveCompletionRollsBackWhenAuditFails(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE .students. SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO .activity_log.`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := svc.ApproveCompletion(context.Background(), 5, 1)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectCompletionCascadesToApprovedApplication(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE .students. SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE .course_applications. SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO .activity_log.`).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := svc.RejectCompletion(context.Background(), 9, 2)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectCompletionNotActionable(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE .students. SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := svc.RejectCompletion(context.Background(), 9, 2)
	assert.ErrorIs(t, err, ErrNotActionable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
