// Package client builds language-test submissions and sends them to the
// grading API.
package client

import (
	"encoding/json"
	"fmt"

	"alfredoptarigan/flwts-grader/internal/models"
	"alfredoptarigan/flwts-grader/internal/services"
)

// LanguageTestSubmission accumulates responses and overall criteria for one
// test in call order. It is not safe for concurrent use.
type LanguageTestSubmission struct {
	url             string
	language        string
	responses       []models.Response
	overallCriteria []models.Criterion
	opts            options
}

// New creates an empty submission for the API at url (e.g.
// "http://127.0.0.1:5000/v1").
func New(url, language string, opts ...Option) *LanguageTestSubmission {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &LanguageTestSubmission{
		url:             url,
		language:        language,
		responses:       []models.Response{},
		overallCriteria: []models.Criterion{},
		opts:            o,
	}
}

func (s *LanguageTestSubmission) AddOverallCriteria(criteria models.Criterion) *LanguageTestSubmission {
	s.overallCriteria = append(s.overallCriteria, criteria)
	return s
}

func (s *LanguageTestSubmission) AddResponse(question, answer string, criteria []models.Criterion) *LanguageTestSubmission {
	s.responses = append(s.responses, models.Response{
		QuestionText: question,
		ResponseText: answer,
		Criteria:     append([]models.Criterion(nil), criteria...),
	})
	return s
}

// AddBulkResponses appends pre-formed responses, e.g. decoded from JSON.
// Every entry must carry questionText, responseText and criteria; the first
// malformed entry rejects the whole batch.
func (s *LanguageTestSubmission) AddBulkResponses(responses []map[string]interface{}) error {
	parsed := make([]models.Response, 0, len(responses))

	for i, raw := range responses {
		for _, key := range []string{"questionText", "responseText", "criteria"} {
			if _, ok := raw[key]; !ok {
				return fmt.Errorf("response %d: each response must include a questionText, responseText, and criteria field", i)
			}
		}

		question, ok := raw["questionText"].(string)
		if !ok {
			return fmt.Errorf("response %d: questionText must be a string", i)
		}
		answer, ok := raw["responseText"].(string)
		if !ok {
			return fmt.Errorf("response %d: responseText must be a string", i)
		}
		criteria, err := parseCriteria(raw["criteria"])
		if err != nil {
			return fmt.Errorf("response %d: %w", i, err)
		}

		parsed = append(parsed, models.Response{
			QuestionText: question,
			ResponseText: answer,
			Criteria:     criteria,
		})
	}

	s.responses = append(s.responses, parsed...)
	return nil
}

// Package returns the request body sent to the scoring endpoint.
func (s *LanguageTestSubmission) Package() models.ScoreRequest {
	responses := make([]models.Response, len(s.responses))
	copy(responses, s.responses)
	overall := make([]models.Criterion, len(s.overallCriteria))
	copy(overall, s.overallCriteria)

	return models.ScoreRequest{
		Submission: models.Submission{
			TargetLanguage:  s.language,
			Responses:       responses,
			OverallCriteria: overall,
		},
	}
}

// Validate runs the server's structural checks locally, so a malformed
// submission fails before any request is made.
func (s *LanguageTestSubmission) Validate() error {
	body, err := json.Marshal(s.Package())
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}

	if _, err := services.NewValidatorService().ValidateBody(body); err != nil {
		return err
	}
	return nil
}

func parseCriteria(v interface{}) ([]models.Criterion, error) {
	switch t := v.(type) {
	case []models.Criterion:
		return append([]models.Criterion(nil), t...), nil
	case []map[string]interface{}:
		out := make([]models.Criterion, 0, len(t))
		for _, m := range t {
			c, err := criterionFromMap(m)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	case []interface{}:
		out := make([]models.Criterion, 0, len(t))
		for _, e := range t {
			m, ok := e.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("criteria entries must be objects")
			}
			c, err := criterionFromMap(m)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("criteria must be a list")
	}
}

func criterionFromMap(m map[string]interface{}) (models.Criterion, error) {
	name, ok := m["name"].(string)
	if !ok {
		return models.Criterion{}, fmt.Errorf("criteria entries must have a string name")
	}
	return models.Criterion{Name: name}, nil
}
