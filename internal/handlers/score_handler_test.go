package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/flwts-grader/internal/models"
	"alfredoptarigan/flwts-grader/internal/services"
)

type failingRubricSource struct{}

func (failingRubricSource) Name() string { return "broken" }

func (failingRubricSource) Entries(context.Context) ([]models.RubricEntry, error) {
	return nil, errors.New("failed to load rubric from database: connection refused")
}

type countingGrader struct {
	services.GraderService
	calls int
}

func (g *countingGrader) Grade(s models.Submission, r []models.RubricEntry) (*models.GradingResult, error) {
	g.calls++
	return g.GraderService.Grade(s, r)
}

func newTestApp(source services.RubricSource, grader services.GraderService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(recover.New())

	SetupRoutes(app,
		NewScoreHandler(services.NewValidatorService(), grader, source),
		NewRubricHandler(source),
	)
	return app
}

func defaultApp() (*fiber.App, *countingGrader) {
	grader := &countingGrader{GraderService: services.NewGraderService()}
	source := services.NewStaticRubricSource(services.DefaultRubricName, services.DefaultRubric())
	return newTestApp(source, grader), grader
}

func postScore(t *testing.T, app *fiber.App, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/score", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decodeError(t *testing.T, raw []byte) *models.APIError {
	t.Helper()
	var envelope models.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.NotNil(t, envelope.Error, "body: %s", raw)
	return envelope.Error
}

func TestHandleScore_ConcreteScenario(t *testing.T) {
	app, _ := defaultApp()

	status, raw := postScore(t, app, `{
		"submission": {
			"targetLanguage": "French",
			"responses": [{
				"questionText": "Translate: Ceci n'est pas une pipe",
				"responseText": "This is not a pipe.",
				"criteria": [{"name": "Grammar"}]
			}],
			"overallCriteria": [{"name": "Test One"}]
		}
	}`)
	require.Equal(t, http.StatusOK, status, string(raw))

	assert.JSONEq(t, `{
		"scores": [{"criteriaScores": [{"name": "Grammar", "score": 1, "feedback": "Correct", "confidence": 1}]}],
		"overallCriteriaScores": [{"name": "Test One", "score": 1, "feedback": "Perfect", "confidence": 1.0}]
	}`, string(raw))
}

func TestHandleScore_PartiallyCorrect(t *testing.T) {
	app, _ := defaultApp()

	status, raw := postScore(t, app, `{
		"submission": {
			"targetLanguage": "French",
			"responses": [
				{"questionText": "Translate: Ceci n'est pas une pipe", "responseText": "This is not a pipe.", "criteria": [{"name": "Grammar"}]},
				{"questionText": "Translate: This is a test example.", "responseText": "C'est un test.", "criteria": [{"name": "Accuracy"}]}
			],
			"overallCriteria": [{"name": "French Test One"}]
		}
	}`)
	require.Equal(t, http.StatusOK, status, string(raw))

	var result models.GradingResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, "Incorrect", result.Scores[1].CriteriaScores[0].Feedback)
	assert.Equal(t, models.OverallCriteriaScore{
		Name: "French Test One", Score: 1, Feedback: "Almost", Confidence: 0.5,
	}, result.OverallCriteriaScores[0])
}

func TestHandleScore_MissingSubmissionNeverGrades(t *testing.T) {
	app, grader := defaultApp()

	status, raw := postScore(t, app, `{}`)
	assert.Equal(t, http.StatusBadRequest, status)

	apiErr := decodeError(t, raw)
	assert.Equal(t, models.CodeInvalidRequest, apiErr.Code)
	assert.Equal(t, "Submission data must contain a 'submission' key", apiErr.Message)
	assert.Equal(t, 0, grader.calls)
}

func TestHandleScore_InvalidJSON(t *testing.T) {
	app, grader := defaultApp()

	status, raw := postScore(t, app, `{"submission":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeInvalidRequest, decodeError(t, raw).Code)
	assert.Equal(t, 0, grader.calls)
}

func TestHandleScore_UnmatchedQuestion(t *testing.T) {
	app, _ := defaultApp()

	status, raw := postScore(t, app, `{
		"submission": {
			"targetLanguage": "French",
			"responses": [
				{"questionText": "Translate: Ceci n'est pas une pipe", "responseText": "This is not a pipe.", "criteria": [{"name": "Grammar"}]},
				{"questionText": "Translate: Bonjour", "responseText": "Hello", "criteria": [{"name": "Accuracy"}]}
			],
			"overallCriteria": [{"name": "Test One"}]
		}
	}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	apiErr := decodeError(t, raw)
	assert.Equal(t, models.CodeInvalidRubric, apiErr.Code)
	assert.Equal(t, "Questions do not match accessed rubric", apiErr.Message)
	assert.NotContains(t, string(raw), "scores")
}

func TestHandleScore_RubricSourceFailure(t *testing.T) {
	app := newTestApp(failingRubricSource{}, services.NewGraderService())

	status, raw := postScore(t, app, `{
		"submission": {
			"targetLanguage": "French",
			"responses": [{"questionText": "q", "responseText": "a", "criteria": [{"name": "c"}]}],
			"overallCriteria": [{"name": "o"}]
		}
	}`)
	assert.Equal(t, http.StatusInternalServerError, status)

	apiErr := decodeError(t, raw)
	assert.Equal(t, models.CodeInternalError, apiErr.Code)
	assert.Contains(t, apiErr.Message, "connection refused")
}

func TestHandleGetRubric(t *testing.T) {
	app, _ := defaultApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/rubric", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "questionAnswer")
	for _, entry := range services.DefaultRubric() {
		assert.NotContains(t, string(raw), entry.QuestionAnswer)
	}

	var doc models.RubricQuestionsResponse
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, services.DefaultRubricName, doc.Name)
	assert.Equal(t, []models.RubricQuestion{
		{QuestionName: "French1", QuestionText: "Translate: Ceci n'est pas une pipe"},
		{QuestionName: "French2", QuestionText: "Translate: This is a test example."},
	}, doc.Questions)
}

func TestErrorHandler_RoutingAndPanics(t *testing.T) {
	app, _ := defaultApp()
	app.Get("/v1/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/nowhere", nil), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, models.CodeInvalidRequest, decodeError(t, raw).Code)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/v1/panic", nil), -1)
	require.NoError(t, err)
	raw, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	apiErr := decodeError(t, raw)
	assert.Equal(t, models.CodeInternalError, apiErr.Code)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestErrorHandler_BodyTooLargeIsBadRequest(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler, BodyLimit: 64})
	app.Post("/v1/score", func(c *fiber.Ctx) error {
		return fiber.ErrRequestEntityTooLarge
	})

	status, raw := postScore(t, app, `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeInvalidRequest, decodeError(t, raw).Code)
}

func TestErrorHandler_MethodNotAllowed(t *testing.T) {
	app, _ := defaultApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/score", nil), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, models.CodeInvalidRequest, decodeError(t, raw).Code)
}

func TestHealthAndRoot(t *testing.T) {
	app, _ := defaultApp()

	for _, path := range []string{"/", "/v1/health"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
