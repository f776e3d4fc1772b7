package dto

import "time"

// StatusBreakdown counts activities by their learner-facing lifecycle state.
type StatusBreakdown struct {
	NotStarted int `json:"not_started"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Upcoming   int `json:"upcoming"`
}

// TypeBreakdown counts activities by entity kind.
type TypeBreakdown struct {
	Courses     int `json:"courses"`
	Quizzes     int `json:"quizzes"`
	Assignments int `json:"assignments"`
	Discussions int `json:"discussions"`
}

// UpcomingDeadline is an assignment deadline still ahead of the learner.
type UpcomingDeadline struct {
	AssignmentID uint      `json:"assignment_id"`
	Title        string    `json:"title"`
	Subject      string    `json:"subject"`
	Deadline     time.Time `json:"deadline"`
	DaysUntilDue int       `json:"days_until_due"`
}

// DashboardResponse aggregates registry counts and upcoming deadlines. It is
// built from persisted fields only; derived progress is never cached here.
type DashboardResponse struct {
	TotalActivities   int                `json:"total_activities"`
	Favourites        int                `json:"favourites"`
	ByStatus          StatusBreakdown    `json:"by_status"`
	ByType            TypeBreakdown      `json:"by_type"`
	UpcomingDeadlines []UpcomingDeadline `json:"upcoming_deadlines"`
	GeneratedAt       time.Time          `json:"generated_at"`
}
