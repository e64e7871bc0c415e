package models

import "time"

// DailyEntry records one day of study within a weekly plan.
// StudyTime and FocusScore are pointers so an untouched field stays NULL
// instead of a misleading zero.
type DailyEntry struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	WeeklyPlanID    uint      `gorm:"not null;uniqueIndex:uidx_plan_date" json:"weekly_plan_id"`
	EntryDate       time.Time `gorm:"type:date;not null;uniqueIndex:uidx_plan_date" json:"entry_date"`
	StudyTime       *int      `json:"study_time"`
	LearningSummary string    `gorm:"type:text" json:"learning_summary"`
	FocusScore      *int      `json:"focus_score"`
	Suggestion      string    `gorm:"type:text" json:"suggestion"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
