package course

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCourseNotFound = errors.New("course not found")

// Course is the read model of a course. Course and enrollment
// administration is owned by an external collaborator.
type Course struct {
	ID        int64     `json:"id"`
	CourseID  uuid.UUID `json:"courseId"`
	Name      string    `json:"name"`
	TeacherID uuid.UUID `json:"teacherId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Enrollment links a user to a course, optionally under a named group.
type Enrollment struct {
	CourseID  uuid.UUID `json:"courseId"`
	UserID    uuid.UUID `json:"userId"`
	GroupName string    `json:"groupName,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}
