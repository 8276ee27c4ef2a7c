package render

import (
	"github.com/gin-gonic/gin"

	"github.com/gregbolastig/short-courses-sub001/internal/http/middleware"
)

// Page renders a template with the shared chrome data (flash, theme,
// the signed-in admin and the CSRF token) merged in.
func Page(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flash"] = middleware.GetFlash(c)
	data["CSRF"] = middleware.GetCSRFToken(c)
	if u, ok := middleware.GetCurrentAdmin(c); ok {
		data["Admin"] = u
		data["Theme"] = u.Theme
	} else {
		data["Theme"] = "light"
	}
	c.HTML(status, name, data)
}
