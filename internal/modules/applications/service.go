package applications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gregbolastig/short-courses-sub001/internal/modules/activitylog"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/courses"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/students"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type ApproveInput struct {
	ApplicationID int64
	AdminID       int64
	CourseID      int64
	NCLevel       string
	Adviser       string
	TrainingStart *time.Time
	TrainingEnd   *time.Time
	Notes         string
}

// missingFields reports blank required fields by their form names.
func (in ApproveInput) missingFields() []string {
	var missing []string
	if in.CourseID <= 0 {
		missing = append(missing, "course_id")
	}
	if strings.TrimSpace(in.NCLevel) == "" {
		missing = append(missing, "nc_level")
	}
	if strings.TrimSpace(in.Adviser) == "" {
		missing = append(missing, "adviser")
	}
	if in.TrainingStart == nil {
		missing = append(missing, "training_start")
	}
	if in.TrainingEnd == nil {
		missing = append(missing, "training_end")
	}
	return missing
}

// DecisionResult carries what the caller needs to notify the student
// after the transaction has committed.
type DecisionResult struct {
	StudentID    int64
	StudentName  string
	StudentEmail string
	CourseName   string
}

// Approve moves a pending application to approved and copies the
// training assignment onto the student row. Both updates and the audit
// entry share one transaction; any failure rolls everything back.
func (s *Service) Approve(ctx context.Context, in ApproveInput) (DecisionResult, error) {
	if missing := in.missingFields(); len(missing) > 0 {
		return DecisionResult{}, &MissingFieldsError{Fields: missing}
	}

	var out DecisionResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app Application
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&app, "id = ?", in.ApplicationID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		var course courses.Course
		if err := tx.First(&course, "course_id = ?", in.CourseID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrCourseGone
			}
			return err
		}

		now := time.Now()

		// status guard closes the double-approval race: a concurrent
		// transaction that committed first leaves zero rows here
		res := tx.Model(&Application{}).
			Where("id = ? AND status = ?", app.ID, StatusPending).
			Updates(map[string]any{
				"status":      StatusApproved,
				"course_id":   in.CourseID,
				"nc_level":    in.NCLevel,
				"reviewed_by": in.AdminID,
				"reviewed_at": now,
				"notes":       in.Notes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotActionable
		}

		res = tx.Model(&students.Student{}).
			Where("id = ?", app.StudentID).
			Updates(map[string]any{
				"course":         course.Name,
				"nc_level":       in.NCLevel,
				"adviser":        in.Adviser,
				"training_start": in.TrainingStart,
				"training_end":   in.TrainingEnd,
				"status":         students.StatusApproved,
				"approved_by":    in.AdminID,
				"approved_at":    now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStudentGone
		}

		var st students.Student
		if err := tx.First(&st, "id = ?", app.StudentID).Error; err != nil {
			return err
		}
		out = DecisionResult{
			StudentID:    st.ID,
			StudentName:  st.FullName(),
			StudentEmail: st.Email,
			CourseName:   course.Name,
		}

		kind, id := activitylog.Subject("application", app.ID)
		return activitylog.AppendTx(tx, activitylog.Entry{
			Action:      "approve_application",
			Description: fmt.Sprintf("approved application #%d for student #%d (%s)", app.ID, app.StudentID, course.Name),
			ActorRole:   "admin",
			ActorID:     in.AdminID,
			SubjectType: kind,
			SubjectID:   id,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return DecisionResult{}, err
	}
	return out, nil
}

// Reject is a single conditional update plus the audit entry. Zero
// affected rows means the application was missing or already decided.
func (s *Service) Reject(ctx context.Context, applicationID, adminID int64, notes string) (DecisionResult, error) {
	var out DecisionResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&Application{}).
			Where("id = ? AND status IN ?", applicationID, []Status{StatusPending, StatusApproved}).
			Updates(map[string]any{
				"status":      StatusRejected,
				"reviewed_by": adminID,
				"reviewed_at": now,
				"notes":       notes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotActionable
		}

		var app Application
		if err := tx.First(&app, "id = ?", applicationID).Error; err != nil {
			return err
		}
		var st students.Student
		if err := tx.First(&st, "id = ?", app.StudentID).Error; err == nil {
			out = DecisionResult{
				StudentID:    st.ID,
				StudentName:  st.FullName(),
				StudentEmail: st.Email,
			}
		}

		kind, id := activitylog.Subject("application", applicationID)
		return activitylog.AppendTx(tx, activitylog.Entry{
			Action:      "reject_application",
			Description: fmt.Sprintf("rejected application #%d", applicationID),
			ActorRole:   "admin",
			ActorID:     adminID,
			SubjectType: kind,
			SubjectID:   id,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return DecisionResult{}, err
	}
	return out, nil
}
