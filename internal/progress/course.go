// Package progress derives per-request completion summaries for courses,
// quizzes, assignments and the polymorphic activity registry. Every function
// is pure: it reads only its arguments, performs no I/O and returns a freshly
// allocated result, so concurrent callers need no synchronization.
package progress

import (
	"math"

	"github.com/noah-isme/lentera-api/internal/models"
)

// CourseProgress summarizes lesson and chapter completion for a course.
type CourseProgress struct {
	TotalLessons      int `json:"totalLessons"`
	CompletedLessons  int `json:"completedLessons"`
	TotalChapters     int `json:"totalChapters"`
	CompletedChapters int `json:"completedChapters"`
	PercentComplete   int `json:"percentComplete"`
}

// ForCourse computes completion metrics from the course's lesson tree.
// A course with no lessons yields zero totals and 0% completion. Chapter
// counts are summed independently of each lesson's own completed flag; the
// two are not cross-validated.
func ForCourse(course models.Course) CourseProgress {
	if len(course.Lessons) == 0 {
		return CourseProgress{}
	}

	result := CourseProgress{TotalLessons: len(course.Lessons)}
	for _, lesson := range course.Lessons {
		if lesson.Completed {
			result.CompletedLessons++
		}
		result.TotalChapters += len(lesson.Chapters)
		for _, chapter := range lesson.Chapters {
			if chapter.Completed {
				result.CompletedChapters++
			}
		}
	}

	result.PercentComplete = percentage(result.CompletedChapters, result.TotalChapters)

	return result
}

// percentage returns part/total as an integer percentage rounded half-up,
// with 0 for an empty total rather than a division error.
func percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
