package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/flwts-grader/internal/services"
)

type ScoreHandler struct {
	validator    services.ValidatorService
	grader       services.GraderService
	rubricSource services.RubricSource
}

func NewScoreHandler(
	validator services.ValidatorService,
	grader services.GraderService,
	rubricSource services.RubricSource,
) *ScoreHandler {
	return &ScoreHandler{
		validator:    validator,
		grader:       grader,
		rubricSource: rubricSource,
	}
}

// HandleScore handles POST /score
func (h *ScoreHandler) HandleScore(c *fiber.Ctx) error {
	submission, err := h.validator.ValidateBody(c.Body())
	if err != nil {
		return respondError(c, err)
	}

	rubric, err := h.rubricSource.Entries(c.UserContext())
	if err != nil {
		log.Printf("❌ Failed to load rubric %q: %v\n", h.rubricSource.Name(), err)
		return respondError(c, err)
	}

	result, err := h.grader.Grade(*submission, rubric)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}
