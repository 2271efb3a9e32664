package services

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"alfredoptarigan/flwts-grader/internal/models"
)

type ValidatorService interface {
	Validate(raw interface{}) (*models.Submission, error)
	ValidateBody(body []byte) (*models.Submission, error)
}

// Payload types mirror models.ScoreRequest with pointer leaves, so a key
// that is present with an empty string is told apart from a missing key.
type scoreRequestPayload struct {
	Submission *submissionPayload `json:"submission" validate:"required"`
}

type submissionPayload struct {
	TargetLanguage  *string            `json:"targetLanguage" validate:"required"`
	Responses       []responsePayload  `json:"responses" validate:"required,min=1,dive"`
	OverallCriteria []criterionPayload `json:"overallCriteria" validate:"required,min=1,dive"`
}

type responsePayload struct {
	QuestionText *string            `json:"questionText" validate:"required"`
	ResponseText *string            `json:"responseText" validate:"required"`
	Criteria     []criterionPayload `json:"criteria" validate:"required,min=1,dive"`
}

type criterionPayload struct {
	Name *string `json:"name" validate:"required"`
}

type validatorService struct {
	validate *validator.Validate
}

func NewValidatorService() ValidatorService {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &validatorService{validate: v}
}

// ValidateBody decodes a raw request body and validates it.
func (s *validatorService) ValidateBody(body []byte) (*models.Submission, error) {
	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, models.NewAPIError(models.CodeInvalidRequest, "The request body is not valid JSON")
	}

	return s.Validate(raw)
}

// Validate checks a decoded JSON value and returns the submission it holds.
// Only the first violation is reported.
func (s *validatorService) Validate(raw interface{}) (*models.Submission, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, models.NewAPIError(models.CodeInvalidRequest, "Submission data must be a JSON object")
	}

	if _, exists := obj["submission"]; !exists {
		return nil, models.NewAPIError(models.CodeInvalidRequest, "Submission data must contain a 'submission' key")
	}

	buf, err := json.Marshal(exactKeys(obj, reflect.TypeOf(scoreRequestPayload{})))
	if err != nil {
		return nil, models.NewAPIError(models.CodeInvalidRequest, "Invalid data structure: %v", err)
	}

	var payload scoreRequestPayload
	if err := json.Unmarshal(buf, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, models.NewAPIError(models.CodeInvalidRequest,
				"Invalid data structure: %s must be %s", typeErr.Field, jsonKind(typeErr.Type))
		}
		return nil, models.NewAPIError(models.CodeInvalidRequest, "Invalid data structure: %v", err)
	}

	if err := s.validate.Struct(&payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return nil, models.NewAPIError(models.CodeInvalidRequest,
				"Invalid data structure: %s failed on the '%s' rule", fieldPath(fe.Namespace()), ruleName(fe))
		}
		return nil, models.NewAPIError(models.CodeInvalidRequest, "Invalid data structure: %v", err)
	}

	return payload.toSubmission(), nil
}

// exactKeys copies v keeping only the object keys that match a json tag of t
// byte for byte, so "Responses" never satisfies a "responses" field. Values
// of the wrong JSON kind are passed through for the decoder to report.
func exactKeys(v interface{}, t reflect.Type) interface{} {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := v.(map[string]interface{})
		if !ok {
			return v
		}
		out := make(map[string]interface{}, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				continue
			}
			if val, exists := obj[name]; exists {
				out[name] = exactKeys(val, field.Type)
			}
		}
		return out
	case reflect.Slice:
		arr, ok := v.([]interface{})
		if !ok {
			return v
		}
		out := make([]interface{}, len(arr))
		for i, item := range arr {
			out[i] = exactKeys(item, t.Elem())
		}
		return out
	default:
		return v
	}
}

func (p *scoreRequestPayload) toSubmission() *models.Submission {
	sub := &models.Submission{
		TargetLanguage:  *p.Submission.TargetLanguage,
		Responses:       make([]models.Response, 0, len(p.Submission.Responses)),
		OverallCriteria: toCriteria(p.Submission.OverallCriteria),
	}

	for _, r := range p.Submission.Responses {
		sub.Responses = append(sub.Responses, models.Response{
			QuestionText: *r.QuestionText,
			ResponseText: *r.ResponseText,
			Criteria:     toCriteria(r.Criteria),
		})
	}

	return sub
}

func toCriteria(in []criterionPayload) []models.Criterion {
	out := make([]models.Criterion, 0, len(in))
	for _, c := range in {
		out = append(out, models.Criterion{Name: *c.Name})
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace,
// e.g. "scoreRequestPayload.submission.responses[0].criteria".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func ruleName(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fe.Tag() + "=" + fe.Param()
	}
	return fe.Tag()
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "a " + t.Kind().String()
	}
}
