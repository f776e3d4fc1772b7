package progress

import "github.com/noah-isme/lentera-api/internal/models"

// QuizProgress summarizes answering and scoring state for a quiz attempt.
type QuizProgress struct {
	TotalQuestions    int  `json:"totalQuestions"`
	AnsweredQuestions int  `json:"answeredQuestions"`
	CorrectAnswers    int  `json:"correctAnswers"`
	PercentComplete   int  `json:"percentComplete"`
	Score             int  `json:"score"`
	Passed            bool `json:"passed"`
}

// ForQuiz flattens all questions across sections and computes attempt metrics.
// A question counts as answered when MarkedAnswer is non-empty; the stored
// IsCorrect flag is trusted as-is. Score divides by the total question count,
// so an unanswered question counts as wrong rather than being excluded. With
// no questions both percentages are 0, and Passed is false unless a passing
// score is configured and met.
func ForQuiz(quiz models.Quiz) QuizProgress {
	var result QuizProgress
	for _, section := range quiz.Sections {
		for _, question := range section.Questions {
			result.TotalQuestions++
			if question.MarkedAnswer == "" {
				continue
			}
			result.AnsweredQuestions++
			if question.IsCorrect != nil && *question.IsCorrect {
				result.CorrectAnswers++
			}
		}
	}

	result.PercentComplete = percentage(result.AnsweredQuestions, result.TotalQuestions)
	result.Score = percentage(result.CorrectAnswers, result.TotalQuestions)

	if quiz.PassingScore != nil {
		result.Passed = result.Score >= *quiz.PassingScore
	}

	return result
}
