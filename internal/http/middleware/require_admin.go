package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/gregbolastig/short-courses-sub001/internal/http/flash"
	"github.com/gregbolastig/short-courses-sub001/pkg/view"
)

// RequireAdmin:
// - no session: redirect to login (with return_to) + flash
// - session but not an admin role: redirect home + flash, JSON -> 403
func RequireAdmin(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := GetCurrentAdmin(c)
		if !ok {
			if WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":      "authentication required",
					"request_id": GetRequestID(c),
				})
				return
			}

			returnTo := c.Request.URL.RequestURI()
			SetFlashCookie(c, flashCodec, view.Flash{
				Kind:    view.FlashWarning,
				Message: "Please sign in to access the admin panel.",
			})
			c.Redirect(http.StatusFound, "/login?return_to="+url.QueryEscape(returnTo))
			c.Abort()
			return
		}

		if u.Role != "admin" && u.Role != "superadmin" {
			if WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error":      "forbidden",
					"request_id": GetRequestID(c),
				})
				return
			}

			SetFlashCookie(c, flashCodec, view.Flash{
				Kind:    view.FlashError,
				Message: "You do not have access to that page.",
			})
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}
