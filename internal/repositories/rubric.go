package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/flwts-grader/internal/models"
)

var ErrRubricNotFound = errors.New("rubric not found")

type RubricRepository interface {
	FindByName(ctx context.Context, rubricName string) ([]models.RubricEntry, error)
	ReplaceRubric(ctx context.Context, rubricName string, entries []models.RubricEntry) error
	ListRubricNames(ctx context.Context) ([]string, error)
}

type rubricRepository struct {
	db *gorm.DB
}

func NewRubricRepository(db *gorm.DB) RubricRepository {
	return &rubricRepository{db: db}
}

// FindByName returns the entries of a rubric in position order.
func (r *rubricRepository) FindByName(ctx context.Context, rubricName string) ([]models.RubricEntry, error) {
	var entries []models.RubricEntry
	err := r.db.WithContext(ctx).
		Where("rubric_name = ?", rubricName).
		Order("position ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find rubric %q: %w", rubricName, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRubricNotFound, rubricName)
	}

	return entries, nil
}

// ReplaceRubric swaps every entry of a rubric for the given ones inside a
// single transaction. Positions follow slice order.
func (r *rubricRepository) ReplaceRubric(ctx context.Context, rubricName string, entries []models.RubricEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rubric_name = ?", rubricName).Delete(&models.RubricEntry{}).Error; err != nil {
			return fmt.Errorf("failed to clear rubric %q: %w", rubricName, err)
		}

		if len(entries) == 0 {
			return nil
		}

		rows := make([]models.RubricEntry, len(entries))
		for i, e := range entries {
			rows[i] = models.RubricEntry{
				RubricName:     rubricName,
				Position:       i,
				QuestionName:   e.QuestionName,
				QuestionText:   e.QuestionText,
				QuestionAnswer: e.QuestionAnswer,
			}
		}

		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to create rubric entries: %w", err)
		}

		return nil
	})
}

func (r *rubricRepository) ListRubricNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.RubricEntry{}).
		Distinct("rubric_name").
		Order("rubric_name ASC").
		Pluck("rubric_name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rubrics: %w", err)
	}

	return names, nil
}
