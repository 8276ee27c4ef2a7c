package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gregbolastig/short-courses-sub001/internal/http/flash"
	"github.com/gregbolastig/short-courses-sub001/internal/http/middleware"
	"github.com/gregbolastig/short-courses-sub001/internal/http/render"
	"github.com/gregbolastig/short-courses-sub001/internal/http/validation"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/activitylog"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/admins"
	"github.com/gregbolastig/short-courses-sub001/internal/shared/apperr"
	"github.com/gregbolastig/short-courses-sub001/pkg/view"
)

type SettingsHandler struct {
	DB     *gorm.DB
	Admins *admins.Service
	Flash  *flash.Codec
}

func NewSettingsHandler(db *gorm.DB, svc *admins.Service, flashCodec *flash.Codec) *SettingsHandler {
	return &SettingsHandler{DB: db, Admins: svc, Flash: flashCodec}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	u, _ := middleware.GetCurrentAdmin(c) // RequireAdmin guarantees this
	render.Page(c, http.StatusOK, "settings.tmpl", gin.H{
		"Page": view.SettingsPage{
			Username: u.Username,
			Email:    u.Email,
			Theme:    u.Theme,
		},
	})
}

type profileInput struct {
	Username string `form:"username" binding:"required,min=2,max=64"`
	Email    string `form:"email" binding:"required,email,max=255"`
}

func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	u, _ := middleware.GetCurrentAdmin(c)

	var in profileInput
	if err := c.ShouldBind(&in); err != nil {
		render.Page(c, http.StatusBadRequest, "settings.tmpl", gin.H{
			"Page": view.SettingsPage{
				Username:    u.Username,
				Email:       u.Email,
				Theme:       u.Theme,
				FieldErrors: validation.FromBindError(err, &in),
			},
		})
		return
	}

	err := h.Admins.UpdateProfile(c.Request.Context(), u.ID, in.Username, in.Email)
	if err != nil {
		switch {
		case errors.Is(err, admins.ErrUsernameTaken):
			h.rerender(c, u, "Username is already in use by another admin.")
		case errors.Is(err, admins.ErrEmailTaken):
			h.rerender(c, u, "Email is already in use by another admin.")
		default:
			middleware.Fail(c, apperr.WrapDB(err))
		}
		return
	}

	middleware.RefreshContextAdmin(c, in.Username, in.Email)
	render.RedirectWithFlash(c, h.Flash, "/admin/settings", view.FlashSuccess, "Profile updated.")
}

type passwordInput struct {
	Current string `form:"current_password" binding:"required"`
	New     string `form:"new_password" binding:"required"`
	Confirm string `form:"confirm_password" binding:"required"`
}

func (h *SettingsHandler) ChangePassword(c *gin.Context) {
	u, _ := middleware.GetCurrentAdmin(c)

	var in passwordInput
	if err := c.ShouldBind(&in); err != nil {
		h.rerender(c, u, "All three password fields are required.")
		return
	}

	err := h.Admins.ChangePassword(c.Request.Context(), u.ID, in.Current, in.New, in.Confirm)
	if err != nil {
		var policy *admins.PolicyError
		switch {
		case errors.Is(err, admins.ErrIncorrectPassword):
			h.rerender(c, u, "Current password is incorrect.")
		case errors.As(err, &policy):
			h.rerender(c, u, policy.Msg)
		case errors.Is(err, admins.ErrPasswordMismatch):
			h.rerender(c, u, "New password and confirmation do not match.")
		default:
			middleware.Fail(c, apperr.WrapDB(err))
		}
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/admin/settings", view.FlashSuccess, "Password changed.")
}

func (h *SettingsHandler) UpdateTheme(c *gin.Context) {
	u, _ := middleware.GetCurrentAdmin(c)

	theme := c.PostForm("theme")
	if theme != "light" && theme != "dark" {
		render.RedirectWithFlash(c, h.Flash, "/admin/settings", view.FlashWarning, "Theme must be light or dark.")
		return
	}

	if err := middleware.UpdateSessionTheme(c, h.DB, theme); err != nil {
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}
	if err := activitylog.NewRepo(h.DB).Append(c.Request.Context(), activitylog.Entry{
		Action:      "update_theme",
		Description: fmt.Sprintf("admin #%d switched theme to %s", u.ID, theme),
		ActorRole:   "admin",
		ActorID:     u.ID,
	}); err != nil {
		slog.Error("activity log append failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("action", "update_theme"),
			slog.Any("error", err))
	}

	render.RedirectWithFlash(c, h.Flash, "/admin/settings", view.FlashSuccess, "Theme updated.")
}

func (h *SettingsHandler) rerender(c *gin.Context, u middleware.CurrentAdmin, pageErr string) {
	render.Page(c, http.StatusBadRequest, "settings.tmpl", gin.H{
		"Page": view.SettingsPage{
			Username: u.Username,
			Email:    u.Email,
			Theme:    u.Theme,
		},
		"PageErr": pageErr,
	})
}
