package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"alfredoptarigan/flwts-grader/internal/client"
	"alfredoptarigan/flwts-grader/internal/config"
	"alfredoptarigan/flwts-grader/internal/models"
)

func main() {
	cfg := config.Load()

	submission := client.New(
		cfg.Client.BaseURL,
		"French",
		client.WithTimeout(cfg.Client.Timeout),
		client.WithRetry(cfg.Client.RetryMaxAttempts, cfg.Client.RetryInitialDelay),
	).
		AddOverallCriteria(models.Criterion{Name: "French Test One"}).
		AddResponse(
			"Translate: Ceci n'est pas une pipe",
			"This is not a pipe.",
			[]models.Criterion{{Name: "Grammar"}},
		).
		AddResponse(
			"Translate: This is a test example.",
			"Ceci est un exemple de test.",
			[]models.Criterion{{Name: "Accuracy"}},
		)

	if err := submission.Validate(); err != nil {
		log.Fatalf("❌ Submission is invalid: %v", err)
	}

	log.Printf("🚀 Submitting to %s/score\n", cfg.Client.BaseURL)

	result, err := submission.Submit(context.Background())
	if err != nil {
		var apiErr *models.APIError
		if errors.As(err, &apiErr) {
			log.Fatalf("❌ %v", apiErr)
		}
		log.Fatalf("❌ Failed to submit: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		log.Fatalf("❌ Failed to encode result: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}
