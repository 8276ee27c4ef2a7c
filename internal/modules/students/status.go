package students

// Status is the closed lifecycle of a student record:
// pending -> approved -> completed, or pending/approved -> rejected.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to target is legal.
func (s Status) CanTransition(target Status) bool {
	switch target {
	case StatusApproved:
		return s == StatusPending
	case StatusCompleted:
		return s == StatusApproved
	case StatusRejected:
		return s == StatusPending || s == StatusApproved
	default:
		return false
	}
}
