package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"alfredoptarigan/flwts-grader/internal/models"
)

type fileRubricSource struct {
	path string
	name string
}

// NewFileRubricSource reads a RubricDocument from a .json, .yaml or .yml
// file on every call to Entries. Wrap it in a RubricCache to avoid the
// repeated reads.
func NewFileRubricSource(path string) RubricSource {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &fileRubricSource{
		path: path,
		name: name,
	}
}

func (s *fileRubricSource) Name() string {
	return s.name
}

func (s *fileRubricSource) Entries(_ context.Context) ([]models.RubricEntry, error) {
	doc, err := LoadRubricFile(s.path)
	if err != nil {
		return nil, err
	}
	return doc.TestAnswers, nil
}

// LoadRubricFile parses a rubric document, choosing the decoder by file
// extension.
func LoadRubricFile(path string) (*models.RubricDocument, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("invalid rubric file extension: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rubric file: %w", err)
	}
	defer f.Close()

	return DecodeRubric(f, ext)
}

func DecodeRubric(r io.Reader, ext string) (*models.RubricDocument, error) {
	var doc models.RubricDocument

	switch ext {
	case ".json":
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode rubric JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode rubric YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported rubric format: %s", ext)
	}

	if len(doc.TestAnswers) == 0 {
		return nil, fmt.Errorf("rubric has no testAnswers")
	}

	for i, entry := range doc.TestAnswers {
		if entry.QuestionText == "" {
			return nil, fmt.Errorf("rubric entry %d is missing questionText", i)
		}
	}

	return &doc, nil
}
