package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, scoreHandler *ScoreHandler, rubricHandler *RubricHandler) {
	api := app.Group("/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/score", scoreHandler.HandleScore)
	api.Get("/rubric", rubricHandler.HandleGetRubric)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "FLWTS Grader API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /v1/score",
				"GET /v1/rubric",
				"GET /v1/health",
			},
		})
	})
}
