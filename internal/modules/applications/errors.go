package applications

import (
	"errors"
	"strings"
)

var (
	ErrNotFound      = errors.New("application not found")
	ErrStudentGone   = errors.New("student for application not found")
	ErrCourseGone    = errors.New("course not found")
	ErrNotActionable = errors.New("application not actionable")
)

// MissingFieldsError lists the required approval fields that were left
// blank, by name.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
