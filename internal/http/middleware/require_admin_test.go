package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gregbolastig/short-courses-sub001/internal/http/flash"
)

func guardedRouter(inject func(c *gin.Context)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	codec := flash.NewCodec([]byte("test-secret"), "sc_flash", false)

	r := gin.New()
	if inject != nil {
		r.Use(inject)
	}
	r.GET("/admin/students", RequireAdmin(codec), func(c *gin.Context) {
		c.String(http.StatusOK, "students")
	})
	return r
}

func TestRequireAdminRedirectsAnonymousWithReturnTo(t *testing.T) {
	r := guardedRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/students?p=2", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	loc := w.Header().Get("Location")
	assert.Contains(t, loc, "/login?return_to=")
	assert.Contains(t, loc, "%2Fadmin%2Fstudents%3Fp%3D2")
}

func TestRequireAdminReturns401ForJSONClients(t *testing.T) {
	r := guardedRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/students", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication required")
}

func TestRequireAdminRejectsNonAdminRole(t *testing.T) {
	r := guardedRouter(func(c *gin.Context) {
		c.Set("admin_id", int64(5))
		c.Set("admin_role", "viewer")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/students", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAdminAllowsAdminRoles(t *testing.T) {
	for _, role := range []string{"admin", "superadmin"} {
		r := guardedRouter(func(c *gin.Context) {
			c.Set("admin_id", int64(5))
			c.Set("admin_role", role)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/students", nil))
		assert.Equal(t, http.StatusOK, w.Code, role)
	}
}
