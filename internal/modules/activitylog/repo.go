package activitylog

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Append writes one entry outside any caller transaction.
func (r *Repo) Append(ctx context.Context, e Entry) error {
	return AppendTx(r.db.WithContext(ctx), e)
}

// AppendTx writes one entry on the given handle, so multi-table
// mutations can log inside their own transaction.
func AppendTx(tx *gorm.DB, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return tx.Create(&e).Error
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var out []Entry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// Subject builds the optional subject reference for an entry.
func Subject(kind string, id int64) (*string, *int64) {
	return &kind, &id
}
