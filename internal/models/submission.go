package models

type Criterion struct {
	Name string `json:"name"`
}

// Response is one submitted answer. Only Criteria[0] is scored.
type Response struct {
	QuestionText string      `json:"questionText"`
	ResponseText string      `json:"responseText"`
	Criteria     []Criterion `json:"criteria"`
}

type Submission struct {
	TargetLanguage  string      `json:"targetLanguage"`
	Responses       []Response  `json:"responses"`
	OverallCriteria []Criterion `json:"overallCriteria"`
}

// ScoreRequest is the body of POST /score.
type ScoreRequest struct {
	Submission Submission `json:"submission"`
}
