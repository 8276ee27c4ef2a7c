package students

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gregbolastig/short-courses-sub001/internal/modules/activitylog"
)

// Service performs completion-status transitions with an audit trail.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// ApproveCompletion marks an approved student as completed. The UPDATE
// is guarded on the current status; zero affected rows means the
// student is missing or not approved yet.
func (s *Service) ApproveCompletion(ctx context.Context, studentID, adminID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&Student{}).
			Where("id = ? AND status = ?", studentID, StatusApproved).
			Updates(map[string]any{
				"status":      StatusCompleted,
				"approved_by": adminID,
				"approved_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotActionable
		}

		kind, id := activitylog.Subject("student", studentID)
		return activitylog.AppendTx(tx, activitylog.Entry{
			Action:      "approve_completion",
			Description: fmt.Sprintf("marked student #%d as completed", studentID),
			ActorRole:   "admin",
			ActorID:     adminID,
			SubjectType: kind,
			SubjectID:   id,
			CreatedAt:   now,
		})
	})
}

// RejectCompletion rejects the student and, in the same transaction,
// rejects any approved course application they hold. Either both writes
// land or neither does.
func (s *Service) RejectCompletion(ctx context.Context, studentID, adminID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&Student{}).
			Where("id = ? AND status IN ?", studentID, []Status{StatusPending, StatusApproved}).
			Updates(map[string]any{
				"status":      StatusRejected,
				"approved_by": adminID,
				"approved_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotActionable
		}

		// cascade to the student's approved application, if any
		if err := tx.Table("course_applications").
			Where("student_id = ? AND status = ?", studentID, "approved").
			Updates(map[string]any{
				"status":      "rejected",
				"reviewed_by": adminID,
				"reviewed_at": now,
			}).Error; err != nil {
			return err
		}

		kind, id := activitylog.Subject("student", studentID)
		return activitylog.AppendTx(tx, activitylog.Entry{
			Action:      "reject_completion",
			Description: fmt.Sprintf("rejected student #%d", studentID),
			ActorRole:   "admin",
			ActorID:     adminID,
			SubjectType: kind,
			SubjectID:   id,
			CreatedAt:   now,
		})
	})
}
