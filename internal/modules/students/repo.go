package students

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	Q        string // matched against first_name, last_name, email, uli
	Province string // exact
	Sex      string // exact
	Page     int
	PageSize int
}

type ListResult struct {
	Items []Student
	Total int64
}

// List applies the active filters AND-combined; blank filters are left
// out of the predicate entirely. Newest first.
func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 30
	}

	base := r.db.WithContext(ctx).Model(&Student{})
	if q := strings.TrimSpace(in.Q); q != "" {
		like := "%" + q + "%"
		base = base.Where("(first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR uli LIKE ?)",
			like, like, like, like)
	}
	if p := strings.TrimSpace(in.Province); p != "" {
		base = base.Where("province = ?", p)
	}
	if s := strings.TrimSpace(in.Sex); s != "" {
		base = base.Where("sex = ?", s)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var items []Student
	if err := base.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: items, Total: total}, nil
}

// DistinctProvinces returns the provinces present among students, for
// the listing filter control.
func (r *Repo) DistinctProvinces(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).Model(&Student{}).
		Distinct("province").
		Where("province <> ''").
		Order("province ASC").
		Pluck("province", &out).Error
	return out, err
}

func (r *Repo) Get(ctx context.Context, id int64) (Student, error) {
	var s Student
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Student{}, ErrNotFound
	}
	return s, err
}

// UpdateDetails writes the admin-editable demographic fields. The
// unique email/uli constraints surface as ErrDuplicate.
func (r *Repo) UpdateDetails(ctx context.Context, id int64, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&Student{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		if IsDuplicateKey(res.Error) {
			return ErrDuplicate
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) UpdatePicture(ctx context.Context, id int64, path string) error {
	res := r.db.WithContext(ctx).Model(&Student{}).
		Where("id = ?", id).
		Update("picture_path", path)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) CountByStatus(ctx context.Context, status Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Student{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}
