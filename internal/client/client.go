package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/flwts-grader/internal/models"
)

type options struct {
	timeout      time.Duration
	maxAttempts  int
	initialDelay time.Duration
}

func defaultOptions() options {
	return options{
		timeout:     30 * time.Second,
		maxAttempts: 1,
	}
}

type Option func(*options)

// WithTimeout bounds each HTTP attempt.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRetry retries transport failures up to maxAttempts in total, doubling
// the delay after each failed attempt. API error responses are never retried.
func WithRetry(maxAttempts int, initialDelay time.Duration) Option {
	return func(o *options) {
		if maxAttempts < 1 {
			maxAttempts = 1
		}
		o.maxAttempts = maxAttempts
		o.initialDelay = initialDelay
	}
}

// Submit posts the packaged submission to {url}/score. A non-200 response is
// returned as *models.APIError; transport errors are returned as-is.
//
// Each attempt is bounded by WithTimeout or by the ctx deadline, whichever
// comes first. A ctx without a deadline is only checked between attempts,
// so cancelling it does not abort a request already in flight.
func (s *LanguageTestSubmission) Submit(ctx context.Context) (*models.GradingResult, error) {
	endpoint := strings.TrimRight(s.url, "/") + "/score"
	payload := s.Package()

	delay := s.opts.initialDelay
	var lastErr error

	for attempt := 1; attempt <= s.opts.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		timeout, err := s.attemptTimeout(ctx)
		if err != nil {
			return nil, err
		}

		code, body, err := s.post(endpoint, payload, timeout)
		if err == nil {
			return decodeResponse(code, body)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		lastErr = err
		if attempt < s.opts.maxAttempts {
			log.Printf("⚠️ Attempt %d failed: %v. Retrying in %s...\n", attempt, err, delay)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return nil, lastErr
}

// attemptTimeout returns the configured timeout shortened to what is left
// of the ctx deadline.
func (s *LanguageTestSubmission) attemptTimeout(ctx context.Context) (time.Duration, error) {
	timeout := s.opts.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}
	return timeout, nil
}

func (s *LanguageTestSubmission) post(endpoint string, payload models.ScoreRequest, timeout time.Duration) (int, []byte, error) {
	agent := fiber.Post(endpoint).
		Timeout(timeout).
		JSON(payload)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return 0, nil, errs[0]
	}
	return code, body, nil
}

func decodeResponse(code int, body []byte) (*models.GradingResult, error) {
	if code == fiber.StatusOK {
		var result models.GradingResult
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("failed to decode grading result: %w", err)
		}
		return &result, nil
	}

	apiErr := &models.APIError{
		Code:    models.CodeUnknownError,
		Message: "No specific error message provided.",
	}

	var envelope struct {
		Error *models.APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		if envelope.Error.Code != "" {
			apiErr.Code = envelope.Error.Code
		}
		if envelope.Error.Message != "" {
			apiErr.Message = envelope.Error.Message
		}
	}

	return nil, apiErr
}
