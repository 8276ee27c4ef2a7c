package admins

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gregbolastig/short-courses-sub001/internal/modules/activitylog"
)

type Service struct {
	db   *gorm.DB
	repo *Repo
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, repo: NewRepo(db)}
}

func (s *Service) Repo() *Repo { return s.repo }

// Authenticate verifies the username/password pair for login.
func (s *Service) Authenticate(ctx context.Context, username, password string) (AdminUser, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AdminUser{}, ErrBadCredentials
		}
		return AdminUser{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return AdminUser{}, ErrBadCredentials
	}
	return u, nil
}

// UpdateProfile changes the admin's own username/email after checking
// that no other admin holds either value.
func (s *Service) UpdateProfile(ctx context.Context, adminID int64, username, email string) error {
	taken, err := s.repo.UsernameInUse(ctx, username, adminID)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}
	taken, err = s.repo.EmailInUse(ctx, email, adminID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&AdminUser{}).
			Where("id = ?", adminID).
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
		return activitylog.AppendTx(tx, activitylog.Entry{
			Action:      "update_profile",
			Description: fmt.Sprintf("admin #%d updated own profile", adminID),
			ActorRole:   "admin",
			ActorID:     adminID,
		})
	})
}

// ChangePassword verifies the current password, applies the complexity
// policy and stores a fresh bcrypt hash.
func (s *Service) ChangePassword(ctx context.Context, adminID int64, current, newPw, confirm string) error {
	u, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return ErrIncorrectPassword
	}
	if err := ValidateNewPassword(newPw); err != nil {
		return err
	}
	if newPw != confirm {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&AdminUser{}).
			Where("id = ?", adminID).
			Update("password_hash", string(hash))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return activitylog.AppendTx(tx, activitylog.Entry{
			Action:      "change_password",
			Description: fmt.Sprintf("admin #%d changed own password", adminID),
			ActorRole:   "admin",
			ActorID:     adminID,
		})
	})
}
