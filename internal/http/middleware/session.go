package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionCfg holds configuration for the session middleware.
type SessionCfg struct {
	DB         *gorm.DB
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// Session is a database-backed admin session. Theme lives here, not on
// the admin row: the preference is scoped to the browser session.
type Session struct {
	ID         string    `gorm:"primaryKey;type:char(36)"`
	AdminID    int64     `gorm:"not null;index:ix_sessions_admin_id"`
	Theme      string    `gorm:"size:8;not null;default:light"`
	ExpiresAt  time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
	LastSeenAt time.Time `gorm:"not null"`
}

func (Session) TableName() string { return "sessions" }

// SessionMiddleware loads the session named by the cookie and puts the
// admin's identity in the request context.
func SessionMiddleware(cfg SessionCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		var sess Session
		if err := cfg.DB.Where("id = ? AND expires_at > ?", sessionID, time.Now()).First(&sess).Error; err != nil {
			// invalid or expired session, clear cookie
			c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.Secure, true)
			c.Next()
			return
		}

		c.Set("session", &sess)
		c.Set("admin_id", sess.AdminID)
		c.Set("theme", sess.Theme)

		var username, email, role string
		row := cfg.DB.Table("admin_users").
			Select("username", "email", "role").
			Where("id = ?", sess.AdminID).Row()
		if err := row.Scan(&username, &email, &role); err == nil {
			c.Set("admin_username", username)
			c.Set("admin_email", email)
			c.Set("admin_role", role)
		}

		c.Next()
	}
}

// CreateSession opens a new session for the admin.
func CreateSession(cfg SessionCfg, adminID int64) (*Session, error) {
	sess := &Session{
		ID:         uuid.New().String(),
		AdminID:    adminID,
		Theme:      "light",
		ExpiresAt:  time.Now().Add(cfg.TTL),
		CreatedAt:  time.Now(),
		LastSeenAt: time.Now(),
	}
	if err := cfg.DB.Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// DeleteSession removes a session by ID.
func DeleteSession(cfg SessionCfg, sessionID string) error {
	return cfg.DB.Delete(&Session{}, "id = ?", sessionID).Error
}

// UpdateSessionTheme persists the theme on the session row and
// refreshes the context copy.
func UpdateSessionTheme(c *gin.Context, db *gorm.DB, theme string) error {
	sess := currentSession(c)
	if sess == nil {
		return gorm.ErrRecordNotFound
	}
	if err := db.Model(&Session{}).Where("id = ?", sess.ID).Update("theme", theme).Error; err != nil {
		return err
	}
	sess.Theme = theme
	c.Set("theme", theme)
	return nil
}

func currentSession(c *gin.Context) *Session {
	if v, ok := c.Get("session"); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}

// CurrentAdmin is the authenticated admin taken from the context.
type CurrentAdmin struct {
	ID        int64
	Username  string
	Email     string
	Role      string
	Theme     string
	SessionID string
}

// GetCurrentAdmin retrieves the authenticated admin, or false if the
// request has no valid session.
func GetCurrentAdmin(c *gin.Context) (CurrentAdmin, bool) {
	idVal, exists := c.Get("admin_id")
	if !exists {
		return CurrentAdmin{}, false
	}
	id, ok := idVal.(int64)
	if !ok || id == 0 {
		return CurrentAdmin{}, false
	}

	out := CurrentAdmin{ID: id, Theme: "light"}
	if v, ok := c.Get("admin_username"); ok {
		out.Username, _ = v.(string)
	}
	if v, ok := c.Get("admin_email"); ok {
		out.Email, _ = v.(string)
	}
	if v, ok := c.Get("admin_role"); ok {
		out.Role, _ = v.(string)
	}
	if v, ok := c.Get("theme"); ok {
		if t, _ := v.(string); t != "" {
			out.Theme = t
		}
	}
	if s := currentSession(c); s != nil {
		out.SessionID = s.ID
	}
	return out, true
}

// RefreshContextAdmin updates the context copy after a profile change.
func RefreshContextAdmin(c *gin.Context, username, email string) {
	c.Set("admin_username", username)
	c.Set("admin_email", email)
}
