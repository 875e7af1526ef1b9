package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionStructure is a saved answer structure: the projected display
// payload bound to the metadata record it belongs to. Data holds the
// DisplayPayload JSON as produced at save time.
type QuestionStructure struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	MetadataID  uint           `json:"metadata_id" gorm:"not null;index"`
	BuilderType QuestionType   `json:"builder_type" gorm:"not null;size:10;index"`
	Data        datatypes.JSON `json:"data" gorm:"not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (QuestionStructure) TableName() string {
	return "question_structures"
}
