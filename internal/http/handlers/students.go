package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gregbolastig/short-courses-sub001/internal/http/flash"
	"github.com/gregbolastig/short-courses-sub001/internal/http/middleware"
	"github.com/gregbolastig/short-courses-sub001/internal/http/render"
	"github.com/gregbolastig/short-courses-sub001/internal/http/validation"
	"github.com/gregbolastig/short-courses-sub001/internal/modules/students"
	"github.com/gregbolastig/short-courses-sub001/internal/shared/apperr"
	"github.com/gregbolastig/short-courses-sub001/internal/storage"
	"github.com/gregbolastig/short-courses-sub001/pkg/view"
)

const studentPageSize = 30

type StudentsHandler struct {
	DB      *gorm.DB
	Flash   *flash.Codec
	Storage storage.Storage
}

func NewStudentsHandler(db *gorm.DB, flashCodec *flash.Codec, st storage.Storage) *StudentsHandler {
	return &StudentsHandler{DB: db, Flash: flashCodec, Storage: st}
}

func (h *StudentsHandler) List(c *gin.Context) {
	q := strings.TrimSpace(c.Query("search"))
	province := strings.TrimSpace(c.Query("filter_province"))
	sex := strings.TrimSpace(c.Query("filter_sex"))
	page := parsePage(c.Query("p"))

	repo := students.NewRepo(h.DB)
	res, err := repo.List(c.Request.Context(), students.ListParams{
		Q: q, Province: province, Sex: sex, Page: page, PageSize: studentPageSize,
	})
	if err != nil {
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}
	provinces, err := repo.DistinctProvinces(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}

	items := make([]view.StudentListItem, 0, len(res.Items))
	for _, s := range res.Items {
		items = append(items, view.StudentListItem{
			ID:        s.ID,
			FullName:  s.FullName(),
			Email:     s.Email,
			ULI:       s.ULI,
			Province:  s.Province,
			Sex:       s.Sex,
			Course:    s.Course,
			Status:    string(s.Status),
			CreatedAt: fmtDateTime(s.CreatedAt),
		})
	}

	render.Page(c, http.StatusOK, "students_list.tmpl", gin.H{
		"Page": view.StudentListPage{
			Items:      items,
			Provinces:  provinces,
			Q:          q,
			Province:   province,
			Sex:        sex,
			Page:       page,
			TotalPages: pagesFromTotal(res.Total, studentPageSize),
			Total:      res.Total,
		},
	})
}

func (h *StudentsHandler) Detail(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		render.RedirectWithFlash(c, h.Flash, "/admin/students", view.FlashWarning, "Invalid student id.")
		return
	}

	repo := students.NewRepo(h.DB)
	s, err := repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, students.ErrNotFound) {
			render.RedirectWithFlash(c, h.Flash, "/admin/students", view.FlashWarning, "Student not found.")
			return
		}
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}

	render.Page(c, http.StatusOK, "student_view.tmpl", gin.H{"Student": studentDetailView(s)})
}

func (h *StudentsHandler) EditGet(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		render.RedirectWithFlash(c, h.Flash, "/admin/students", view.FlashWarning, "Invalid student id.")
		return
	}

	repo := students.NewRepo(h.DB)
	s, err := repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, students.ErrNotFound) {
			render.RedirectWithFlash(c, h.Flash, "/admin/students", view.FlashWarning, "Student not found.")
			return
		}
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}

	render.Page(c, http.StatusOK, "student_edit.tmpl", gin.H{"Student": studentDetailView(s)})
}

type studentEditInput struct {
	FirstName     string `form:"first_name" binding:"required,min=1,max=100"`
	MiddleName    string `form:"middle_name" binding:"omitempty,max=100"`
	LastName      string `form:"last_name" binding:"required,min=1,max=100"`
	NameExtension string `form:"name_extension" binding:"omitempty,max=20"`
	Birthday      string `form:"birthday" binding:"omitempty,datetime=2006-01-02"`
	Sex           string `form:"sex" binding:"omitempty,oneof=Male Female"`
	CivilStatus   string `form:"civil_status" binding:"omitempty,max=20"`
	ContactNumber string `form:"contact_number" binding:"omitempty,min=7,max=20"`
	Province      string `form:"province" binding:"omitempty,max=100"`
	City          string `form:"city" binding:"omitempty,max=100"`
	Barangay      string `form:"barangay" binding:"omitempty,max=100"`
	Street        string `form:"street" binding:"omitempty,max=255"`
	GuardianName  string `form:"guardian_name" binding:"omitempty,max=255"`
	GuardianPhone string `form:"guardian_phone" binding:"omitempty,max=20"`
	Email         string `form:"email" binding:"required,email,max=255"`
	ULI           string `form:"uli" binding:"required,min=3,max=32"`
	LastSchool    string `form:"last_school" binding:"omitempty,max=255"`
	LastSchoolLoc string `form:"last_school_loc" binding:"omitempty,max=255"`
}

func (h *StudentsHandler) EditPost(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		render.RedirectWithFlash(c, h.Flash, "/admin/students", view.FlashWarning, "Invalid student id.")
		return
	}

	repo := students.NewRepo(h.DB)
	current, err := repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, students.ErrNotFound) {
			render.RedirectWithFlash(c, h.Flash, "/admin/students", view.FlashWarning, "Student not found.")
			return
		}
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}

	var in studentEditInput
	if err := c.ShouldBind(&in); err != nil {
		vm := studentDetailView(current)
		render.Page(c, http.StatusBadRequest, "student_edit.tmpl", gin.H{
			"Student":     vm,
			"FieldErrors": map[string]string(validation.FromBindError(err, &in)),
		})
		return
	}

	fields := map[string]any{
		"first_name":      in.FirstName,
		"middle_name":     in.MiddleName,
		"last_name":       in.LastName,
		"name_extension":  in.NameExtension,
		"birthday":        parseDate(in.Birthday),
		"sex":             in.Sex,
		"civil_status":    in.CivilStatus,
		"contact_number":  in.ContactNumber,
		"province":        in.Province,
		"city":            in.City,
		"barangay":        in.Barangay,
		"street":          in.Street,
		"guardian_name":   in.GuardianName,
		"guardian_phone":  in.GuardianPhone,
		"email":           in.Email,
		"uli":             in.ULI,
		"last_school":     in.LastSchool,
		"last_school_loc": in.LastSchoolLoc,
	}

	// optional profile picture; validated before anything is written
	oldPath := current.PicturePath
	var newKey string
	if fh, err := c.FormFile("profile_picture"); err == nil && fh != nil {
		put, err := storage.SaveImage(c.Request.Context(), h.Storage, fh, current.LastName+" "+current.FirstName)
		if err != nil {
			msg := "Could not save the picture."
			switch {
			case errors.Is(err, storage.ErrImageTooLarge):
				msg = "Profile picture must be 2 MB or smaller."
			case errors.Is(err, storage.ErrBadImageType):
				msg = "Profile picture must be a JPEG or PNG image."
			}
			vm := studentDetailView(current)
			render.Page(c, http.StatusBadRequest, "student_edit.tmpl", gin.H{
				"Student":     vm,
				"FieldErrors": map[string]string{"profile_picture": msg},
			})
			return
		}
		newKey = put.Key
		fields["picture_path"] = storage.CanonicalPath(put.Key)
	}

	if err := repo.UpdateDetails(c.Request.Context(), id, fields); err != nil {
		// the row still points at the old picture, so drop the new file
		if newKey != "" {
			_ = h.Storage.Delete(c.Request.Context(), newKey)
		}
		if errors.Is(err, students.ErrDuplicate) {
			vm := studentDetailView(current)
			render.Page(c, http.StatusConflict, "student_edit.tmpl", gin.H{
				"Student": vm,
				"PageErr": "Another student already uses that email or ULI.",
			})
			return
		}
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}

	// remove the replaced picture only after the row points at the new one
	if newPath, ok := fields["picture_path"].(string); ok && oldPath != "" && oldPath != newPath {
		_ = h.Storage.Delete(c.Request.Context(), storage.NormalizeStoredPath(oldPath))
	}

	render.RedirectWithFlash(c, h.Flash, "/admin/students/"+c.Param("id"), view.FlashSuccess, "Student record updated.")
}

func (h *StudentsHandler) ApproveCompletion(c *gin.Context) {
	h.completion(c, true)
}

func (h *StudentsHandler) RejectCompletion(c *gin.Context) {
	h.completion(c, false)
}

func (h *StudentsHandler) completion(c *gin.Context, approve bool) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		render.RedirectWithFlash(c, h.Flash, "/admin/students", view.FlashWarning, "Invalid student id.")
		return
	}
	u, ok := middleware.GetCurrentAdmin(c)
	if !ok {
		middleware.Fail(c, apperr.ForbiddenErr("Sign in required."))
		return
	}

	svc := students.NewService(h.DB)
	var err error
	if approve {
		err = svc.ApproveCompletion(c.Request.Context(), id, u.ID)
	} else {
		err = svc.RejectCompletion(c.Request.Context(), id, u.ID)
	}
	if err != nil {
		if errors.Is(err, students.ErrNotActionable) {
			msg := "Completion can only be approved for students in approved status."
			if !approve {
				msg = "Only pending or approved students can be rejected."
			}
			render.RedirectWithFlash(c, h.Flash, "/admin/students/"+c.Param("id"), view.FlashWarning, msg)
			return
		}
		middleware.Fail(c, apperr.WrapDB(err))
		return
	}

	msg := "Student marked as completed."
	if !approve {
		msg = "Student rejected."
	}
	render.RedirectWithFlash(c, h.Flash, "/admin/students/"+c.Param("id"), view.FlashSuccess, msg)
}

func studentDetailView(s students.Student) view.StudentDetail {
	canonical := storage.NormalizeStoredPath(s.PicturePath)
	pictureURL := ""
	if canonical != "" {
		pictureURL = "/" + canonical
	}
	return view.StudentDetail{
		ID:            s.ID,
		FirstName:     s.FirstName,
		MiddleName:    s.MiddleName,
		LastName:      s.LastName,
		NameExtension: s.NameExtension,
		FullName:      s.FullName(),
		Birthday:      fmtDate(s.Birthday),
		Age:           s.Age,
		Sex:           s.Sex,
		CivilStatus:   s.CivilStatus,
		ContactNumber: s.ContactNumber,
		Province:      s.Province,
		City:          s.City,
		Barangay:      s.Barangay,
		Street:        s.Street,
		BirthProvince: s.BirthProvince,
		BirthCity:     s.BirthCity,
		GuardianName:  s.GuardianName,
		GuardianPhone: s.GuardianPhone,
		Email:         s.Email,
		ULI:           s.ULI,
		LastSchool:    s.LastSchool,
		LastSchoolLoc: s.LastSchoolLoc,
		PicturePath:   canonical,
		PictureURL:    pictureURL,
		Course:        s.Course,
		NCLevel:       s.NCLevel,
		Adviser:       s.Adviser,
		TrainingStart: fmtDate(s.TrainingStart),
		TrainingEnd:   fmtDate(s.TrainingEnd),
		Status:        string(s.Status),
		ApprovedBy:    i64Str(s.ApprovedBy),
		ApprovedAt:    fmtDateTimePtr(s.ApprovedAt),
		CreatedAt:     fmtDateTime(s.CreatedAt),
	}
}
