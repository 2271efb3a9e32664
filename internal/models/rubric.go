package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RubricEntry is one question/answer pair of a rubric. QuestionText is the
// lookup key and is expected to be unique within a rubric.
type RubricEntry struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"-" yaml:"-"`
	RubricName     string    `gorm:"type:text;not null;index:idx_rubric_position,priority:1" json:"-" yaml:"-"`
	Position       int       `gorm:"not null;index:idx_rubric_position,priority:2" json:"-" yaml:"-"`
	QuestionName   string    `gorm:"type:text" json:"questionName" yaml:"questionName"`
	QuestionText   string    `gorm:"type:text;not null" json:"questionText" yaml:"questionText"`
	QuestionAnswer string    `gorm:"type:text;not null" json:"questionAnswer" yaml:"questionAnswer"`
	CreatedAt      time.Time `json:"-" yaml:"-"`
	UpdatedAt      time.Time `json:"-" yaml:"-"`
}

func (RubricEntry) TableName() string {
	return "rubric_entries"
}

func (r *RubricEntry) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RubricDocument is the on-disk and over-the-wire shape of a rubric.
type RubricDocument struct {
	Name        string        `json:"name,omitempty" yaml:"name,omitempty"`
	TestAnswers []RubricEntry `json:"testAnswers" yaml:"testAnswers"`
}

// RubricQuestion is the public view of a RubricEntry. It never carries the
// expected answer.
type RubricQuestion struct {
	QuestionName string `json:"questionName"`
	QuestionText string `json:"questionText"`
}

type RubricQuestionsResponse struct {
	Name      string           `json:"name"`
	Questions []RubricQuestion `json:"questions"`
}
