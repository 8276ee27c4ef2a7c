package applications

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	Status   string
	Page     int
	PageSize int
}

// ListRow carries the joined student/course columns the listing shows.
type ListRow struct {
	ID          int64     `gorm:"column:id"`
	StudentID   int64     `gorm:"column:student_id"`
	FirstName   string    `gorm:"column:first_name"`
	LastName    string    `gorm:"column:last_name"`
	CourseName  string    `gorm:"column:course_name"`
	NCLevel     string    `gorm:"column:nc_level"`
	Status      Status    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

type ListResult struct {
	Items []ListRow
	Total int64
}

func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 30
	}

	base := r.db.WithContext(ctx).Model(&Application{})
	if s := strings.TrimSpace(in.Status); s != "" {
		base = base.Where("course_applications.status = ?", s)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var items []ListRow
	if err := base.
		Select("course_applications.id, course_applications.student_id, students.first_name, students.last_name, courses.course_name, course_applications.nc_level, course_applications.status, course_applications.created_at").
		Joins("JOIN students ON students.id = course_applications.student_id").
		Joins("LEFT JOIN courses ON courses.course_id = course_applications.course_id").
		Order("course_applications.created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Scan(&items).Error; err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: items, Total: total}, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (Application, error) {
	var a Application
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Application{}, ErrNotFound
	}
	return a, err
}

func (r *Repo) CountByStatus(ctx context.Context, status Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Application{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}
