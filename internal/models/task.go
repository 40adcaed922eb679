package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Task struct {
	BaseModel
	Title        string `gorm:"not null"`
	Description  string `gorm:"type:text;not null"`
	Category     string `gorm:"not null;index"`
	Skills       datatypes.JSON
	WeeklyPayout decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Deadline     time.Time
	Status       TaskStatus `gorm:"type:varchar(20);not null;default:'available';index"`

	AssignedTo *string `gorm:"type:uuid;index"`
	CreatedBy  string  `gorm:"type:uuid;not null"`

	AssignedAt    *time.Time
	SubmittedAt   *time.Time
	SubmissionURL string
	CompletedAt   *time.Time
	Feedback      string
}

func (t *Task) SkillList() []string {
	return ParseStringList(t.Skills)
}

func (t *Task) IsAssignedTo(userID string) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}
