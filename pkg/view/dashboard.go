package view

type DashboardPage struct {
	PendingStudents     int64
	ApprovedStudents    int64
	CompletedStudents   int64
	RejectedStudents    int64
	PendingApplications int64
	RecentActivity      []ActivityItem
}

type ActivityItem struct {
	Action      string
	Description string
	ActorRole   string
	At          string
}
