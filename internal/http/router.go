package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gregbolastig/short-courses-sub001/internal/config"
	"github.com/gregbolastig/short-courses-sub001/internal/http/flash"
	"github.com/gregbolastig/short-courses-sub001/internal/http/handlers"
	"github.com/gregbolastig/short-courses-sub001/internal/http/middleware"
	"github.com/gregbolastig/short-courses-sub001/internal/mailer"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/admins"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/notify"
	"github.com/gregbolastig/short-courses-sub001/internal/storage"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Logger  *slog.Logger
	DB      *gorm.DB
	Cfg     config.Config
	Storage storage.FactoryResult
	Mailer  mailer.Service
}

func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.LoadHTMLGlob("web/templates/*.tmpl")
	r.Static("/assets", "web/assets")

	flashCodec := flash.NewCodec(d.Cfg.CookieSecret, d.Cfg.FlashCookieName, d.Cfg.SecureCookies)
	sessCfg := middleware.SessionCfg{
		DB:         d.DB,
		CookieName: d.Cfg.SessionCookieName,
		Secure:     d.Cfg.SecureCookies,
		TTL:        d.Cfg.SessionTTL,
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.ErrorHandler(d.Logger),
		middleware.FlashMiddleware(flashCodec),
		middleware.SessionMiddleware(sessCfg),
	)

	if d.Storage.Driver == "local" {
		r.Static("/uploads", d.Storage.LocalDir)
	}

	adminSvc := admins.NewService(d.DB)
	notifySvc := notify.New(d.Mailer, d.Cfg.MailFrom, d.Cfg.MailFromName)

	login := handlers.NewLoginHandler(adminSvc, flashCodec, sessCfg)
	dashboard := handlers.NewDashboardHandler(d.DB)
	studentsH := handlers.NewStudentsHandler(d.DB, flashCodec, d.Storage.Storage)
	appsH := handlers.NewApplicationsHandler(d.DB, flashCodec, notifySvc, d.Logger)
	settings := handlers.NewSettingsHandler(d.DB, adminSvc, flashCodec)

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin") })
	r.GET("/login", login.Get)
	r.POST("/login", login.Post)
	r.POST("/logout", login.Logout)

	admin := r.Group("/admin",
		middleware.RequireAdmin(flashCodec),
		middleware.CSRF(d.Cfg.CookieSecret, flashCodec),
	)
	{
		admin.GET("", dashboard.Get)

		admin.GET("/students", studentsH.List)
		admin.GET("/students/:id", studentsH.Detail)
		admin.GET("/students/:id/edit", studentsH.EditGet)
		admin.POST("/students/:id/edit", studentsH.EditPost)
		admin.POST("/students/:id/completion/approve", studentsH.ApproveCompletion)
		admin.POST("/students/:id/completion/reject", studentsH.RejectCompletion)

		admin.GET("/applications", appsH.List)
		admin.GET("/applications/:id", appsH.Detail)
		admin.POST("/applications/:id/approve", appsH.Approve)
		admin.POST("/applications/:id/reject", appsH.Reject)

		admin.GET("/settings", settings.Get)
		admin.POST("/settings/profile", settings.UpdateProfile)
		admin.POST("/settings/password", settings.ChangePassword)
		admin.POST("/settings/theme", settings.UpdateTheme)
	}

	// legacy links used ?page=...; anything unrecognized lands on the listing
	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/admin/students")
	})

	return r
}
