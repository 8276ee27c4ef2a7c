package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gregbolastig/short-courses-sub001/internal/http/middleware"
	"github.com/gregbolastig/short-courses-sub001/internal/http/render"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/activitylog"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/applications"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/students"
	"github.com/gregbolastig/short-courses-sub001/internal/shared/apperr"
	"github.com/gregbolastig/short-courses-sub001/pkg/view"
)

type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	stRepo := students.NewRepo(h.DB)
	appRepo := applications.NewRepo(h.DB)
	logRepo := activitylog.NewRepo(h.DB)

	page := view.DashboardPage{}
	var err error
	if page.PendingStudents, err = stRepo.CountByStatus(ctx, students.StatusPending); err != nil {
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}
	if page.ApprovedStudents, err = stRepo.CountByStatus(ctx, students.StatusApproved); err != nil {
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}
	if page.CompletedStudents, err = stRepo.CountByStatus(ctx, students.StatusCompleted); err != nil {
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}
	if page.RejectedStudents, err = stRepo.CountByStatus(ctx, students.StatusRejected); err != nil {
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}
	if page.PendingApplications, err = appRepo.CountByStatus(ctx, applications.StatusPending); err != nil {
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}

	entries, err := logRepo.Recent(ctx, 10)
	if err != nil {
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}
	for _, e := range entries {
		page.RecentActivity = append(page.RecentActivity, view.ActivityItem{
			Action:      e.Action,
			Description: e.Description,
			ActorRole:   e.ActorRole,
			At:          fmtDateTime(e.CreatedAt),
		})
	}

	render.Page(c, http.StatusOK, "dashboard.tmpl", gin.H{"Page": page})
}
