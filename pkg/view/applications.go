package view

// ApplicationListItem is one row of the admin application listing.
type ApplicationListItem struct {
	ID          int64
	StudentID   int64
	StudentName string
	CourseName  string
	NCLevel     string
	Status      string
	CreatedAt   string
}

type ApplicationListPage struct {
	Items      []ApplicationListItem
	Status     string
	Page       int
	TotalPages int
	Total      int64
}

// ApplicationDetail feeds the review form.
type ApplicationDetail struct {
	ID            int64
	StudentID     int64
	StudentName   string
	StudentEmail  string
	CourseID      int64
	CourseName    string
	NCLevel       string
	Status        string
	ReviewedBy    string
	ReviewedAt    string
	Notes         string
	CreatedAt     string
	Courses       []CourseOption
	FieldErrors   map[string]string
}

type CourseOption struct {
	ID   int64
	Name string
}
