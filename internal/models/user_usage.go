package models

import "time"

// DateLayout is the calendar-date form stored for daily rollover checks.
// All "today" comparisons use this layout in the process-local zone.
const DateLayout = "2006-01-02"

// UserUsage is one user's usage record. DailyCount is only meaningful
// together with DailyDate: the count resets lazily when the stored date
// no longer matches today. TotalCount accumulates across resets.
type UserUsage struct {
	UserID     string `gorm:"primaryKey" json:"-"`
	DailyDate  string `json:"daily_date"`
	DailyCount int    `json:"daily_count"`
	TotalCount int    `json:"total_count"`
	FirstUsed  string `json:"first_used"`
	LastUsed   string `json:"last_used"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (UserUsage) TableName() string {
	return "user_usage"
}

// NewUserUsage returns a zeroed record dated today.
func NewUserUsage(userID, today string) *UserUsage {
	return &UserUsage{
		UserID:     userID,
		DailyDate:  today,
		DailyCount: 0,
		TotalCount: 0,
		FirstUsed:  today,
		LastUsed:   today,
	}
}
