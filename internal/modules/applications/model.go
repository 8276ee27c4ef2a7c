package applications

import "time"

// Status mirrors the application lifecycle: pending -> approved or
// rejected. Applications never reach "completed"; that lives on the
// student record.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Application struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement"`
	StudentID  int64      `gorm:"column:student_id;not null;index:ix_course_applications_student"`
	CourseID   int64      `gorm:"column:course_id;not null"`
	NCLevel    string     `gorm:"column:nc_level;size:20"`
	Status     Status     `gorm:"column:status;size:16;not null;default:pending"`
	ReviewedBy *int64     `gorm:"column:reviewed_by"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at"`
	Notes      string     `gorm:"column:notes;size:512"`
	CreatedAt  time.Time  `gorm:"column:created_at;not null"`
}

func (Application) TableName() string { return "course_applications" }
