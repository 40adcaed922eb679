package models

import "github.com/shopspring/decimal"

type DailySubmission struct {
	BaseModel
	UserID          string `gorm:"type:uuid;not null;uniqueIndex:idx_daily_user_date"`
	Date            string `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_user_date"` // YYYY-MM-DD
	GithubCommitURL string
	VideoURL        string
	Description     string          `gorm:"type:text"`
	WorkType        WorkType        `gorm:"type:varchar(20);not null"`
	HoursWorked     decimal.Decimal `gorm:"type:decimal(4,2);not null"`
	AdminReviewed   bool            `gorm:"default:false;index"`
	AdminFeedback   string
}
