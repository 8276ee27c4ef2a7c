package admins

import "time"

type AdminUser struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string    `gorm:"column:username;size:64;not null;uniqueIndex:ux_admin_users_username"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex:ux_admin_users_email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"`
	Role         string    `gorm:"column:role;size:32;not null;default:admin"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
}

func (AdminUser) TableName() string { return "admin_users" }
