package students

import (
	"strings"
	"time"
)

type Student struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName     string     `gorm:"column:first_name;size:100;not null"`
	MiddleName    string     `gorm:"column:middle_name;size:100"`
	LastName      string     `gorm:"column:last_name;size:100;not null"`
	NameExtension string     `gorm:"column:name_extension;size:20"`
	Birthday      *time.Time `gorm:"column:birthday"`
	Age           int        `gorm:"column:age"`
	Sex           string     `gorm:"column:sex;size:10"`
	CivilStatus   string     `gorm:"column:civil_status;size:20"`
	ContactNumber string     `gorm:"column:contact_number;size:20"`
	Province      string     `gorm:"column:province;size:100"`
	City          string     `gorm:"column:city;size:100"`
	Barangay      string     `gorm:"column:barangay;size:100"`
	Street        string     `gorm:"column:street;size:255"`
	BirthProvince string     `gorm:"column:birth_province;size:100"`
	BirthCity     string     `gorm:"column:birth_city;size:100"`
	GuardianName  string     `gorm:"column:guardian_name;size:255"`
	GuardianPhone string     `gorm:"column:guardian_phone;size:20"`
	Email         string     `gorm:"column:email;size:255;not null;uniqueIndex:ux_students_email"`
	ULI           string     `gorm:"column:uli;size:32;not null;uniqueIndex:ux_students_uli"`
	LastSchool    string     `gorm:"column:last_school;size:255"`
	LastSchoolLoc string     `gorm:"column:last_school_loc;size:255"`
	PicturePath   string     `gorm:"column:picture_path;size:255"`
	Course        string     `gorm:"column:course;size:255"`
	NCLevel       string     `gorm:"column:nc_level;size:20"`
	Adviser       string     `gorm:"column:adviser;size:255"`
	TrainingStart *time.Time `gorm:"column:training_start"`
	TrainingEnd   *time.Time `gorm:"column:training_end"`
	Status        Status     `gorm:"column:status;size:16;not null;default:pending"`
	ApprovedBy    *int64     `gorm:"column:approved_by"`
	ApprovedAt    *time.Time `gorm:"column:approved_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;not null"`
}

func (Student) TableName() string { return "students" }

// FullName joins the name parts, skipping blanks.
func (s Student) FullName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{s.FirstName, s.MiddleName, s.LastName, s.NameExtension} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, " ")
}
