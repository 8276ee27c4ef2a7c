package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gregbolastig/short-courses-sub001/internal/http/flash"
	"github.com/gregbolastig/short-courses-sub001/internal/http/middleware"
	"github.com/gregbolastig/short-courses-sub001/internal/http/render"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/applications"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/courses"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/notify"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/students"
	"github.com/gregbolastig/short-courses-sub001/internal/shared/apperr"
	"github.com/gregbolastig/short-courses-sub001/pkg/view"
)

const applicationPageSize = 30

type ApplicationsHandler struct {
	DB     *gorm.DB
	Flash  *flash.Codec
	Notify *notify.Service
	Log    *slog.Logger
}

func NewApplicationsHandler(db *gorm.DB, flashCodec *flash.Codec, n *notify.Service, l *slog.Logger) *ApplicationsHandler {
	return &ApplicationsHandler{DB: db, Flash: flashCodec, Notify: n, Log: l}
}

func (h *ApplicationsHandler) List(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	page := parsePage(c.Query("p"))

	repo := applications.NewRepo(h.DB)
	res, err := repo.List(c.Request.Context(), applications.ListParams{
		Status: status, Page: page, PageSize: applicationPageSize,
	})
	if err != nil {
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}

	items := make([]view.ApplicationListItem, 0, len(res.Items))
	for _, a := range res.Items {
		items = append(items, view.ApplicationListItem{
			ID:          a.ID,
			StudentID:   a.StudentID,
			StudentName: strings.TrimSpace(a.FirstName + " " + a.LastName),
			CourseName:  a.CourseName,
			NCLevel:     a.NCLevel,
			Status:      string(a.Status),
			CreatedAt:   fmtDateTime(a.CreatedAt),
		})
	}

	render.Page(c, http.StatusOK, "applications_list.tmpl", gin.H{
		"Page": view.ApplicationListPage{
			Items:      items,
			Status:     status,
			Page:       page,
			TotalPages: pagesFromTotal(res.Total, applicationPageSize),
			Total:      res.Total,
		},
	})
}

func (h *ApplicationsHandler) Detail(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		render.RedirectWithFlash(c, h.Flash, "/admin/applications", view.FlashWarning, "Invalid application id.")
		return
	}

	vm, err := h.detailView(c, id)
	if err != nil {
		if errors.Is(err, applications.ErrNotFound) {
			render.RedirectWithFlash(c, h.Flash, "/admin/applications", view.FlashWarning, "Application not found.")
			return
		}
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}

	render.Page(c, http.StatusOK, "application_view.tmpl", gin.H{"App": vm})
}

type approveInput struct {
	CourseID      int64  `form:"course_id"`
	NCLevel       string `form:"nc_level"`
	Adviser       string `form:"adviser"`
	TrainingStart string `form:"training_start"`
	TrainingEnd   string `form:"training_end"`
	Notes         string `form:"notes"`
}

func (h *ApplicationsHandler) Approve(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		render.RedirectWithFlash(c, h.Flash, "/admin/applications", view.FlashWarning, "Invalid application id.")
		return
	}
	u, ok := middleware.GetCurrentAdmin(c)
	if !ok {
		middleware.Fail(c, apperr.ForbiddenErr("Sign in required."))
		return
	}

	var in approveInput
	_ = c.ShouldBind(&in) // required fields are checked by the service

	svc := applications.NewService(h.DB)
	res, err := svc.Approve(c.Request.Context(), applications.ApproveInput{
		ApplicationID: id,
		AdminID:       u.ID,
		CourseID:      in.CourseID,
		NCLevel:       strings.TrimSpace(in.NCLevel),
		Adviser:       strings.TrimSpace(in.Adviser),
		TrainingStart: parseDate(in.TrainingStart),
		TrainingEnd:   parseDate(in.TrainingEnd),
		Notes:         strings.TrimSpace(in.Notes),
	})
	if err != nil {
		var missing *applications.MissingFieldsError
		switch {
		case errors.As(err, &missing):
			h.rerenderDetail(c, id, "Missing required fields: "+strings.Join(missing.Fields, ", "))
		case errors.Is(err, applications.ErrNotFound):
			render.RedirectWithFlash(c, h.Flash, "/admin/applications", view.FlashWarning, "Application not found.")
		case errors.Is(err, applications.ErrCourseGone):
			h.rerenderDetail(c, id, "Selected course no longer exists.")
		case errors.Is(err, applications.ErrStudentGone):
			h.rerenderDetail(c, id, "The student for this application no longer exists.")
		case errors.Is(err, applications.ErrNotActionable):
			render.RedirectWithFlash(c, h.Flash, "/admin/applications/"+c.Param("id"), view.FlashWarning, "This application has already been decided.")
		default:
			middleware.Fail(c, apperr.WrapDB(err))
		}
		return
	}

	// notify after commit; a send failure never un-approves
	if err := h.Notify.ApplicationApproved(c.Request.Context(), res.StudentEmail, res.StudentName, res.CourseName); err != nil {
		h.Log.Warn("decision email failed", "application_id", id, "err", err)
	}

	render.RedirectWithFlash(c, h.Flash, "/admin/applications", view.FlashSuccess, "Application approved.")
}

func (h *ApplicationsHandler) Reject(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		render.RedirectWithFlash(c, h.Flash, "/admin/applications", view.FlashWarning, "Invalid application id.")
		return
	}
	u, ok := middleware.GetCurrentAdmin(c)
	if !ok {
		middleware.Fail(c, apperr.ForbiddenErr("Sign in required."))
		return
	}

	notes := strings.TrimSpace(c.PostForm("notes"))

	svc := applications.NewService(h.DB)
	res, err := svc.Reject(c.Request.Context(), id, u.ID, notes)
	if err != nil {
		if errors.Is(err, applications.ErrNotActionable) {
			render.RedirectWithFlash(c, h.Flash, "/admin/applications/"+c.Param("id"), view.FlashWarning, "This application has already been decided.")
			return
		}
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}

	if err := h.Notify.ApplicationRejected(c.Request.Context(), res.StudentEmail, res.StudentName, notes); err != nil {
		h.Log.Warn("decision email failed", "application_id", id, "err", err)
	}

	render.RedirectWithFlash(c, h.Flash, "/admin/applications", view.FlashSuccess, "Application rejected.")
}

func (h *ApplicationsHandler) rerenderDetail(c *gin.Context, id int64, pageErr string) {
	vm, err := h.detailView(c, id)
	if err != nil {
		render.RedirectWithFlash(c, h.Flash, "/admin/applications", view.FlashWarning, "Application not found.")
		return
	}
	render.Page(c, http.StatusBadRequest, "application_view.tmpl", gin.H{
		"App":     vm,
		"PageErr": pageErr,
	})
}

func (h *ApplicationsHandler) detailView(c *gin.Context, id int64) (view.ApplicationDetail, error) {
	ctx := c.Request.Context()

	appRepo := applications.NewRepo(h.DB)
	a, err := appRepo.Get(ctx, id)
	if err != nil {
		return view.ApplicationDetail{}, err
	}

	vm := view.ApplicationDetail{
		ID:         a.ID,
		StudentID:  a.StudentID,
		CourseID:   a.CourseID,
		NCLevel:    a.NCLevel,
		Status:     string(a.Status),
		ReviewedBy: i64Str(a.ReviewedBy),
		ReviewedAt: fmtDateTimePtr(a.ReviewedAt),
		Notes:      a.Notes,
		CreatedAt:  fmtDateTime(a.CreatedAt),
	}

	if st, err := students.NewRepo(h.DB).Get(ctx, a.StudentID); err == nil {
		vm.StudentName = st.FullName()
		vm.StudentEmail = st.Email
	}

	list, err := courses.NewRepo(h.DB).List(ctx)
	if err != nil {
		return view.ApplicationDetail{}, err
	}
	for _, co := range list {
		if co.ID == a.CourseID {
			vm.CourseName = co.Name
		}
		vm.Courses = append(vm.Courses, view.CourseOption{ID: co.ID, Name: co.Name})
	}

	return vm, nil
}
