package courses

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context) ([]Course, error) {
	var items []Course
	err := r.db.WithContext(ctx).
		Order("course_name ASC").
		Find(&items).Error
	return items, err
}

func (r *Repo) Get(ctx context.Context, id int64) (Course, error) {
	var c Course
	err := r.db.WithContext(ctx).First(&c, "course_id = ?", id).Error
	return c, err
}
