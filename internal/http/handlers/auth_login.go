package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gregbolastig/short-courses-sub001/internal/http/flash"
	"github.com/gregbolastig/short-courses-sub001/internal/http/middleware"
	"github.com/gregbolastig/short-courses-sub001/internal/http/render"
	"github.com/gregbolastig/short-courses-sub001/internal/http/validation"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/admins"
	"github.com/gregbolastig/short-courses-sub001/internal/shared/apperr"
	"github.com/gregbolastig/short-courses-sub001/pkg/view"
)

type LoginHandler struct {
	Admins     *admins.Service
	Flash      *flash.Codec
	SessionCfg middleware.SessionCfg
}

func NewLoginHandler(svc *admins.Service, f *flash.Codec, sessCfg middleware.SessionCfg) *LoginHandler {
	return &LoginHandler{Admins: svc, Flash: f, SessionCfg: sessCfg}
}

type loginInput struct {
	Username string `form:"username" binding:"required,min=2,max=64"`
	Password string `form:"password" binding:"required,min=6,max=128"`
}

func (h *LoginHandler) Get(c *gin.Context) {
	if _, ok := middleware.GetCurrentAdmin(c); ok {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	returnTo := normalizeReturnTo(c.Query("return_to"))
	render.Page(c, http.StatusOK, "login.tmpl", gin.H{
		"ReturnTo": returnTo,
		"Form":     view.LoginForm{},
	})
}

func (h *LoginHandler) Post(c *gin.Context) {
	returnTo := normalizeReturnTo(c.PostForm("return_to"))

	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		render.Page(c, http.StatusBadRequest, "login.tmpl", gin.H{
			"ReturnTo":    returnTo,
			"Form":        view.LoginForm{Username: in.Username},
			"FieldErrors": errs,
		})
		return
	}

	u, err := h.Admins.Authenticate(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		if errors.Is(err, admins.ErrBadCredentials) {
			render.Page(c, http.StatusUnauthorized, "login.tmpl", gin.H{
				"ReturnTo": returnTo,
				"Form":     view.LoginForm{Username: in.Username},
				"PageErr":  "Invalid username or password.",
			})
			return
		}
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}

	sess, err := middleware.CreateSession(h.SessionCfg, u.ID)
	if err != nil {
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.SessionCfg.CookieName, sess.ID, int(h.SessionCfg.TTL.Seconds()), "/", "", h.SessionCfg.Secure, true)

	dest := "/admin"
	if returnTo != "" {
		dest = returnTo
	}
	render.RedirectWithFlash(c, h.Flash, dest, view.FlashSuccess, "Welcome back, "+u.Username+".")
}

func (h *LoginHandler) Logout(c *gin.Context) {
	if u, ok := middleware.GetCurrentAdmin(c); ok && u.SessionID != "" {
		_ = middleware.DeleteSession(h.SessionCfg, u.SessionID)
	}
	c.SetCookie(h.SessionCfg.CookieName, "", -1, "/", "", h.SessionCfg.Secure, true)
	render.RedirectWithFlash(c, h.Flash, "/login", view.FlashInfo, "Signed out.")
}

// normalizeReturnTo only allows same-site relative paths.
func normalizeReturnTo(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	if u, err := url.Parse(raw); err != nil || u.Host != "" || u.Scheme != "" {
		return ""
	}
	return raw
}
