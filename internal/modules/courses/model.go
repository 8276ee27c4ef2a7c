package courses

import "time"

type Course struct {
	ID        int64     `gorm:"column:course_id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:course_name;size:255;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Course) TableName() string { return "courses" }
