package activitylog

import "time"

// Entry is an append-only audit record. Rows are never updated or
// deleted by the application.
type Entry struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	Action      string     `gorm:"size:64;not null"`
	Description string     `gorm:"size:512;not null"`
	ActorRole   string     `gorm:"size:32;not null"`
	ActorID     int64      `gorm:"not null;index:ix_activity_log_actor"`
	SubjectType *string    `gorm:"size:32"`
	SubjectID   *int64
	CreatedAt   time.Time  `gorm:"not null"`
}

func (Entry) TableName() string { return "activity_log" }
