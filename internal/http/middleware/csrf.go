package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gregbolastig/short-courses-sub001/internal/http/flash"
	"github.com/gregbolastig/short-courses-sub001/pkg/view"
)

const (
	CtxKeyCSRF    = "csrf_token"
	CSRFFormField = "_csrf"
)

// CSRF derives a token from the session id and verifies it on
// state-changing requests. Runs after SessionMiddleware.
func CSRF(secret []byte, flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		if sess != nil {
			c.Set(CtxKeyCSRF, csrfToken(secret, sess.ID))
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if sess == nil || !hmac.Equal([]byte(c.PostForm(CSRFFormField)), []byte(csrfToken(secret, sess.ID))) {
			SetFlashCookie(c, flashCodec, view.Flash{
				Kind:    view.FlashError,
				Message: "Your session expired. Please try again.",
			})
			c.Redirect(http.StatusFound, c.Request.URL.Path)
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetCSRFToken(c *gin.Context) string {
	if v, ok := c.Get(CtxKeyCSRF); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func csrfToken(secret []byte, sessionID string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte("csrf:" + sessionID))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
