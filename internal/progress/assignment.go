package progress

import (
	"math"
	"time"

	"github.com/noah-isme/lentera-api/internal/models"
)

// AssignmentStatus is the derived lifecycle state of an assignment.
type AssignmentStatus string

const (
	StatusNotStarted AssignmentStatus = "not_started"
	StatusInProgress AssignmentStatus = "in_progress"
	StatusSubmitted  AssignmentStatus = "submitted"
	StatusGraded     AssignmentStatus = "graded"
	StatusOverdue    AssignmentStatus = "overdue"
)

// AssignmentProgress summarizes submission, grading and deadline state.
// DaysUntilDue is nil when no deadline is set and negative once the deadline
// has passed.
type AssignmentProgress struct {
	Submitted    bool             `json:"submitted"`
	Graded       bool             `json:"graded"`
	Overdue      bool             `json:"overdue"`
	DaysUntilDue *int             `json:"daysUntilDue"`
	Status       AssignmentStatus `json:"status"`
}

// ForAssignment derives the assignment's transient state at the given
// reference time. The caller supplies now so results stay deterministic.
//
// Status precedence is deliberate: grading wins over everything, and a
// submission always takes priority over lateness, so a graded assignment
// reports graded even when its deadline has passed.
func ForAssignment(assignment models.Assignment, now time.Time) AssignmentProgress {
	result := AssignmentProgress{
		Submitted: assignment.Submitted,
		Graded:    assignment.Graded,
		Status:    StatusNotStarted,
	}

	if deadline := assignment.SubmissionDeadline; deadline != nil {
		result.Overdue = now.After(*deadline) && !assignment.Submitted
		days := int(math.Ceil(deadline.Sub(now).Hours() / 24))
		result.DaysUntilDue = &days
	}

	switch {
	case assignment.Graded:
		result.Status = StatusGraded
	case assignment.Submitted:
		result.Status = StatusSubmitted
	case result.Overdue:
		result.Status = StatusOverdue
	case assignment.SubmissionLink != "":
		result.Status = StatusInProgress
	}

	return result
}
