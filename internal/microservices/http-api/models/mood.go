package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Mood struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}

func (m *Mood) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

func (Mood) TableName() string {
	return "moods"
}
