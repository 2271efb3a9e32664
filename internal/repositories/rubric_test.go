package repositories

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/flwts-grader/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "rubrics.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.RubricEntry{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func frenchEntries() []models.RubricEntry {
	return []models.RubricEntry{
		{QuestionName: "French1", QuestionText: "Translate: Ceci n'est pas une pipe", QuestionAnswer: "This is not a pipe."},
		{QuestionName: "French2", QuestionText: "Translate: This is a test example.", QuestionAnswer: "Ceci est un exemple de test."},
	}
}

func TestRubricRepository_ReplaceAndFind(t *testing.T) {
	repo := NewRubricRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceRubric(ctx, "french-test-one", frenchEntries()))

	entries, err := repo.FindByName(ctx, "french-test-one")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for i, entry := range entries {
		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.Equal(t, "french-test-one", entry.RubricName)
		assert.Equal(t, i, entry.Position)
		assert.Equal(t, frenchEntries()[i].QuestionText, entry.QuestionText)
		assert.Equal(t, frenchEntries()[i].QuestionAnswer, entry.QuestionAnswer)
	}
}

func TestRubricRepository_ReplaceOverwritesOnlyThatRubric(t *testing.T) {
	repo := NewRubricRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceRubric(ctx, "french-test-one", frenchEntries()))
	require.NoError(t, repo.ReplaceRubric(ctx, "spanish-test-one", []models.RubricEntry{
		{QuestionName: "Spanish1", QuestionText: "Translate: Hola", QuestionAnswer: "Hello"},
	}))

	reversed := frenchEntries()
	reversed[0], reversed[1] = reversed[1], reversed[0]
	require.NoError(t, repo.ReplaceRubric(ctx, "french-test-one", reversed))

	entries, err := repo.FindByName(ctx, "french-test-one")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "French2", entries[0].QuestionName)
	assert.Equal(t, "French1", entries[1].QuestionName)

	spanish, err := repo.FindByName(ctx, "spanish-test-one")
	require.NoError(t, err)
	assert.Len(t, spanish, 1)

	names, err := repo.ListRubricNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"french-test-one", "spanish-test-one"}, names)
}

func TestRubricRepository_FindMissing(t *testing.T) {
	repo := NewRubricRepository(newTestDB(t))

	_, err := repo.FindByName(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRubricNotFound))
}
