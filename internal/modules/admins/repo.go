package admins

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) GetByID(ctx context.Context, id int64) (AdminUser, error) {
	var u AdminUser
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return AdminUser{}, ErrNotFound
	}
	return u, err
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (AdminUser, error) {
	var u AdminUser
	err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return AdminUser{}, ErrNotFound
	}
	return u, err
}

// UsernameInUse reports whether another admin (id <> excludeID) holds
// the exact username. Case-sensitive by design.
func (r *Repo) UsernameInUse(ctx context.Context, username string, excludeID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&AdminUser{}).
		Where("BINARY username = ? AND id <> ?", username, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *Repo) EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&AdminUser{}).
		Where("BINARY email = ? AND id <> ?", email, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *Repo) UpdateProfile(ctx context.Context, id int64, username, email string) error {
	res := r.db.WithContext(ctx).Model(&AdminUser{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"username": username,
			"email":    email,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res := r.db.WithContext(ctx).Model(&AdminUser{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
