package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/flwts-grader/internal/models"
	"alfredoptarigan/flwts-grader/internal/services"
)

type RubricHandler struct {
	rubricSource services.RubricSource
}

func NewRubricHandler(rubricSource services.RubricSource) *RubricHandler {
	return &RubricHandler{
		rubricSource: rubricSource,
	}
}

// HandleGetRubric handles GET /rubric. Only question names and texts are
// returned; expected answers stay on the server.
func (h *RubricHandler) HandleGetRubric(c *fiber.Ctx) error {
	entries, err := h.rubricSource.Entries(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	questions := make([]models.RubricQuestion, 0, len(entries))
	for _, entry := range entries {
		questions = append(questions, models.RubricQuestion{
			QuestionName: entry.QuestionName,
			QuestionText: entry.QuestionText,
		})
	}

	return c.JSON(models.RubricQuestionsResponse{
		Name:      h.rubricSource.Name(),
		Questions: questions,
	})
}
