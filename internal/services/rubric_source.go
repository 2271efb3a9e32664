package services

import (
	"context"
	"fmt"

	"alfredoptarigan/flwts-grader/internal/models"
	"alfredoptarigan/flwts-grader/internal/repositories"
)

const DefaultRubricName = "french-test-one"

// RubricSource supplies the ordered rubric a submission is graded against.
type RubricSource interface {
	Name() string
	Entries(ctx context.Context) ([]models.RubricEntry, error)
}

// DefaultRubric is the built-in French translation rubric.
func DefaultRubric() []models.RubricEntry {
	return []models.RubricEntry{
		{
			QuestionName:   "French1",
			QuestionText:   "Translate: Ceci n'est pas une pipe",
			QuestionAnswer: "This is not a pipe.",
		},
		{
			QuestionName:   "French2",
			QuestionText:   "Translate: This is a test example.",
			QuestionAnswer: "Ceci est un exemple de test.",
		},
	}
}

type staticRubricSource struct {
	name    string
	entries []models.RubricEntry
}

func NewStaticRubricSource(name string, entries []models.RubricEntry) RubricSource {
	return &staticRubricSource{
		name:    name,
		entries: copyEntries(entries),
	}
}

func (s *staticRubricSource) Name() string {
	return s.name
}

func (s *staticRubricSource) Entries(_ context.Context) ([]models.RubricEntry, error) {
	return copyEntries(s.entries), nil
}

type repositoryRubricSource struct {
	name string
	repo repositories.RubricRepository
}

func NewRepositoryRubricSource(name string, repo repositories.RubricRepository) RubricSource {
	return &repositoryRubricSource{
		name: name,
		repo: repo,
	}
}

func (s *repositoryRubricSource) Name() string {
	return s.name
}

func (s *repositoryRubricSource) Entries(ctx context.Context) ([]models.RubricEntry, error) {
	entries, err := s.repo.FindByName(ctx, s.name)
	if err != nil {
		return nil, fmt.Errorf("failed to load rubric from database: %w", err)
	}
	return entries, nil
}

func copyEntries(entries []models.RubricEntry) []models.RubricEntry {
	out := make([]models.RubricEntry, len(entries))
	copy(out, entries)
	return out
}
