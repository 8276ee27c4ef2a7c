package view

// StudentListItem is one row of the admin student listing.
type StudentListItem struct {
	ID         int64
	FullName   string
	Email      string
	ULI        string
	Province   string
	Sex        string
	Course     string
	Status     string
	CreatedAt  string
}

// StudentListPage feeds the students index template.
type StudentListPage struct {
	Items      []StudentListItem
	Provinces  []string // distinct values for the filter select
	Q          string
	Province   string
	Sex        string
	Page       int
	TotalPages int
	Total      int64
}

// StudentDetail feeds the student view/edit templates.
type StudentDetail struct {
	ID             int64
	FirstName      string
	MiddleName     string
	LastName       string
	NameExtension  string
	FullName       string
	Birthday       string
	Age            int
	Sex            string
	CivilStatus    string
	ContactNumber  string
	Province       string
	City           string
	Barangay       string
	Street         string
	BirthProvince  string
	BirthCity      string
	GuardianName   string
	GuardianPhone  string
	Email          string
	ULI            string
	LastSchool     string
	LastSchoolLoc  string
	PicturePath    string // canonical relative path, "" when none
	PictureURL     string // resolved for <img src>
	Course         string
	NCLevel        string
	Adviser        string
	TrainingStart  string
	TrainingEnd    string
	Status         string
	ApprovedBy     string
	ApprovedAt     string
	CreatedAt      string
}
