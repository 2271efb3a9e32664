package services

import (
	"alfredoptarigan/flwts-grader/internal/models"
)

type GraderService interface {
	Grade(submission models.Submission, rubric []models.RubricEntry) (*models.GradingResult, error)
}

type graderService struct{}

func NewGraderService() GraderService {
	return &graderService{}
}

// Grade scores every response against the rubric by exact string equality.
// Grading is all-or-nothing: one response without a rubric entry fails the
// whole submission and no partial scores are returned.
func (g *graderService) Grade(submission models.Submission, rubric []models.RubricEntry) (*models.GradingResult, error) {
	totalQuestions := len(submission.Responses)
	if totalQuestions == 0 {
		return nil, models.NewAPIError(models.CodeInvalidRubric, "Submission contains no responses to grade")
	}

	result := &models.GradingResult{
		Scores:                make([]models.ResponseScore, 0, totalQuestions),
		OverallCriteriaScores: make([]models.OverallCriteriaScore, 0, 1),
	}

	totalScore := 0
	totalConfidence := 0
	allCorrect := true

	for i, response := range submission.Responses {
		entry, ok := matchRubricEntry(rubric, response.QuestionText)
		if !ok {
			return nil, models.NewAPIError(models.CodeInvalidRubric, "Questions do not match accessed rubric")
		}

		if len(response.Criteria) == 0 {
			return nil, models.NewAPIError(models.CodeInternalError, "response %d is missing criteria", i)
		}

		score := 0
		if entry.QuestionAnswer == response.ResponseText {
			score = 1
		}
		confidence := score

		feedback := models.FeedbackCorrect
		if score == 0 {
			feedback = models.FeedbackIncorrect
			allCorrect = false
		}

		totalScore += score
		totalConfidence += confidence

		result.Scores = append(result.Scores, models.ResponseScore{
			CriteriaScores: []models.CriteriaScore{
				{
					Name:       response.Criteria[0].Name,
					Score:      score,
					Feedback:   feedback,
					Confidence: confidence,
				},
			},
		})
	}

	if len(submission.OverallCriteria) == 0 {
		return nil, models.NewAPIError(models.CodeInternalError, "submission is missing overallCriteria")
	}

	overallFeedback := models.FeedbackAlmost
	if allCorrect {
		overallFeedback = models.FeedbackPerfect
	}

	result.OverallCriteriaScores = append(result.OverallCriteriaScores, models.OverallCriteriaScore{
		Name:       submission.OverallCriteria[0].Name,
		Score:      totalScore,
		Feedback:   overallFeedback,
		Confidence: float64(totalConfidence) / float64(totalQuestions),
	})

	return result, nil
}

// matchRubricEntry returns the first entry, in rubric order, whose question
// text equals questionText exactly.
func matchRubricEntry(rubric []models.RubricEntry, questionText string) (models.RubricEntry, bool) {
	for _, entry := range rubric {
		if entry.QuestionText == questionText {
			return entry, true
		}
	}
	return models.RubricEntry{}, false
}
