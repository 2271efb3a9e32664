package models

const (
	FeedbackCorrect   = "Correct"
	FeedbackIncorrect = "Incorrect"
	FeedbackPerfect   = "Perfect"
	FeedbackAlmost    = "Almost"
)

type CriteriaScore struct {
	Name       string `json:"name"`
	Score      int    `json:"score"`
	Feedback   string `json:"feedback"`
	Confidence int    `json:"confidence"`
}

type OverallCriteriaScore struct {
	Name       string  `json:"name"`
	Score      int     `json:"score"`
	Feedback   string  `json:"feedback"`
	Confidence float64 `json:"confidence"`
}

type ResponseScore struct {
	CriteriaScores []CriteriaScore `json:"criteriaScores"`
}

type GradingResult struct {
	Scores                []ResponseScore        `json:"scores"`
	OverallCriteriaScores []OverallCriteriaScore `json:"overallCriteriaScores"`
}
