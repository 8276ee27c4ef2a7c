package applications

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
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

func ts(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func validApprove() ApproveInput {
	return ApproveInput{
		ApplicationID: 10,
		AdminID:       1,
		CourseID:      3,
		NCLevel:       "NC II",
		Adviser:       "R. Ramos",
		TrainingStart: ts("2026-09-01"),
		TrainingEnd:   ts("2026-11-30"),
	}
}

func TestApproveRejectsBlankRequiredFields(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	_, err := svc.Approve(context.Background(), ApproveInput{ApplicationID: 10, AdminID: 1})

	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"course_id", "nc_level", "adviser", "training_start", "training_end"}, missing.Fields)

	// validation failed before the transaction opened; nothing was written
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveReportsSingleMissingField(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewService(db)

	in := validApprove()
	in.Adviser = "   "
	_, err := svc.Approve(context.Background(), in)

	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"adviser"}, missing.Fields)
}

func appRows(status Status) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "student_id", "course_id", "nc_level", "status", "created_at"}).
		AddRow(10, 7, 3, "NC II", string(status), time.Now())
}

func courseRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"course_id", "course_name"}).
		AddRow(3, "Welding")
}

func TestApproveHappyPath(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM .course_applications. WHERE id = \?.+FOR UPDATE`).
		WithArgs(int64(10)).
		WillReturnRows(appRows(StatusPending))
	mock.ExpectQuery(`SELECT \* FROM .courses. WHERE course_id = \?`).
		WithArgs(int64(3)).
		WillReturnRows(courseRows())
	mock.ExpectExec(`UPDATE .course_applications. SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE .students. SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM .students. WHERE id = \?`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email"}).
			AddRow(7, "Juan", "Dela Cruz", "juan@example.com"))
	mock.ExpectExec(`INSERT INTO .activity_log.`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	res, err := svc.Approve(context.Background(), validApprove())
	require.NoError(t, err)
	assert.EqualValues(t, 7, res.StudentID)
	assert.Equal(t, "Juan Dela Cruz", res.StudentName)
	assert.Equal(t, "juan@example.com", res.StudentEmail)
	assert.Equal(t, "Welding", res.CourseName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveAlreadyDecided(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	// another admin approved first: the status-guarded UPDATE hits nothing
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM .course_applications. WHERE id = \?.+FOR UPDATE`).
		WithArgs(int64(10)).
		WillReturnRows(appRows(StatusApproved))
	mock.ExpectQuery(`SELECT \* FROM .courses. WHERE course_id = \?`).
		WithArgs(int64(3)).
		WillReturnRows(courseRows())
	mock.ExpectExec(`UPDATE .course_applications. SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Approve(context.Background(), validApprove())
	assert.ErrorIs(t, err, ErrNotActionable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveMissingCourseRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM .course_applications. WHERE id = \?.+FOR UPDATE`).
		WithArgs(int64(10)).
		WillReturnRows(appRows(StatusPending))
	mock.ExpectQuery(`SELECT \* FROM .courses. WHERE course_id = \?`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"course_id"}))
	mock.ExpectRollback()

	_, err := svc.Approve(context.Background(), validApprove())
	assert.ErrorIs(t, err, ErrCourseGone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveMissingStudentRollsBackApplicationUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM .course_applications. WHERE id = \?.+FOR UPDATE`).
		WithArgs(int64(10)).
		WillReturnRows(appRows(StatusPending))
	mock.ExpectQuery(`SELECT \* FROM .courses. WHERE course_id = \?`).
		WithArgs(int64(3)).
		WillReturnRows(courseRows())
	mock.ExpectExec(`UPDATE .course_applications. SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE .students. SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Approve(context.Background(), validApprove())
	assert.ErrorIs(t, err, ErrStudentGone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectAlreadyDecided(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE .course_applications. SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Reject(context.Background(), 10, 1, "late submission")
	assert.ErrorIs(t, err, ErrNotActionable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectHappyPath(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE .course_applications. SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM .course_applications. WHERE id = \?`).
		WithArgs(int64(10)).
		WillReturnRows(appRows(StatusRejected))
	mock.ExpectQuery(`SELECT \* FROM .students. WHERE id = \?`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email"}).
			AddRow(7, "Juan", "Dela Cruz", "juan@example.com"))
	mock.ExpectExec(`INSERT INTO .activity_log.`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	res, err := svc.Reject(context.Background(), 10, 1, "incomplete requirements")
	require.NoError(t, err)
	assert.Equal(t, "juan@example.com", res.StudentEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}
