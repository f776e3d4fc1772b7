package progress

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/noah-isme/lentera-api/internal/models"
)

func courseWithLessons(lessons ...models.Lesson) models.Course {
	return models.Course{Title: "Deep Learning Foundations", Lessons: datatypes.NewJSONSlice(lessons)}
}

func TestForCourseEmptyLessonsYieldsZeroProgress(t *testing.T) {
	require.Equal(t, CourseProgress{}, ForCourse(models.Course{Title: "Empty"}))
	require.Equal(t, CourseProgress{}, ForCourse(courseWithLessons()))
}

func TestForCourseCountsLessonsAndChapters(t *testing.T) {
	course := courseWithLessons(
		models.Lesson{
			ID:        1,
			Completed: true,
			Chapters: []models.Chapter{
				{ID: 1, Completed: true},
				{ID: 2, Completed: true},
			},
		},
		models.Lesson{
			ID: 2,
			Chapters: []models.Chapter{
				{ID: 3, Completed: true},
				{ID: 4},
			},
		},
	)

	result := ForCourse(course)
	require.Equal(t, 2, result.TotalLessons)
	require.Equal(t, 1, result.CompletedLessons)
	require.Equal(t, 4, result.TotalChapters)
	require.Equal(t, 3, result.CompletedChapters)
	require.Equal(t, 75, result.PercentComplete)
}

func TestForCourseChapterCountsIgnoreLessonFlag(t *testing.T) {
	// A lesson marked complete while its chapters are not: the two flags are
	// tracked independently.
	course := courseWithLessons(models.Lesson{
		ID:        1,
		Completed: true,
		Chapters:  []models.Chapter{{ID: 1}, {ID: 2}},
	})

	result := ForCourse(course)
	require.Equal(t, 1, result.CompletedLessons)
	require.Equal(t, 0, result.CompletedChapters)
	require.Equal(t, 0, result.PercentComplete)
}

func TestForCourseLessonsWithoutChapters(t *testing.T) {
	course := courseWithLessons(
		models.Lesson{ID: 1, Completed: true},
		models.Lesson{ID: 2},
	)

	result := ForCourse(course)
	require.Equal(t, 2, result.TotalLessons)
	require.Equal(t, 0, result.TotalChapters)
	require.Equal(t, 0, result.PercentComplete, "zero chapters must not divide by zero")
}

func TestForCoursePercentRoundsHalfUp(t *testing.T) {
	course := courseWithLessons(models.Lesson{
		ID: 1,
		Chapters: []models.Chapter{
			{ID: 1, Completed: true},
			{ID: 2},
			{ID: 3},
			{ID: 4},
			{ID: 5},
			{ID: 6},
			{ID: 7},
			{ID: 8},
		},
	})

	// 1/8 = 12.5, rounds up to 13.
	require.Equal(t, 13, ForCourse(course).PercentComplete)
}

func TestForCourseBoundedPercentages(t *testing.T) {
	cases := []struct {
		name      string
		completed int
		total     int
	}{
		{"none", 0, 3},
		{"partial", 2, 3},
		{"all", 3, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chapters := make([]models.Chapter, 0, tc.total)
			for i := 0; i < tc.total; i++ {
				chapters = append(chapters, models.Chapter{ID: uint(i + 1), Completed: i < tc.completed})
			}
			result := ForCourse(courseWithLessons(models.Lesson{ID: 1, Chapters: chapters}))

			require.GreaterOrEqual(t, result.PercentComplete, 0)
			require.LessOrEqual(t, result.PercentComplete, 100)
			require.LessOrEqual(t, result.CompletedChapters, result.TotalChapters)
		})
	}
}

func TestForCourseIsIdempotent(t *testing.T) {
	course := courseWithLessons(models.Lesson{
		ID:        1,
		Completed: true,
		Chapters:  []models.Chapter{{ID: 1, Completed: true}, {ID: 2}},
	})

	require.Equal(t, ForCourse(course), ForCourse(course))
}
