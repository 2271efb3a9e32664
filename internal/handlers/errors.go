package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/flwts-grader/internal/models"
)

// respondError writes the error envelope. Errors that carry no code are
// reported as internal_error with their raw text.
func respondError(c *fiber.Ctx, err error) error {
	var apiErr *models.APIError
	if !errors.As(err, &apiErr) {
		log.Printf("❌ Unclassified error on %s %s: %v\n", c.Method(), c.Path(), err)
		apiErr = &models.APIError{Code: models.CodeInternalError, Message: err.Error()}
	}

	return c.Status(apiErr.Status()).JSON(models.ErrorResponse{Error: apiErr})
}

// ErrorHandler is the fiber.Config ErrorHandler. It covers routing errors,
// body limit rejections and panics caught by the recover middleware.
// Routing errors keep their 404 and 405 statuses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := models.CodeInvalidRequest
		status := fiberErr.Code
		switch {
		case status >= fiber.StatusInternalServerError:
			code = models.CodeInternalError
		case status == fiber.StatusRequestEntityTooLarge:
			// Oversized bodies are reported as 400.
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(models.ErrorResponse{
			Error: &models.APIError{Code: code, Message: fiberErr.Message},
		})
	}

	return respondError(c, err)
}
