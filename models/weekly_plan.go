package models

import "time"

// WeeklyPlan holds one user's study goal for a Monday-aligned week.
// The composite unique index makes (user_id, week_start) the upsert key.
type WeeklyPlan struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	UserID           uint         `gorm:"not null;uniqueIndex:uidx_user_week" json:"user_id"`
	WeekStart        time.Time    `gorm:"type:date;not null;uniqueIndex:uidx_user_week" json:"week_start"`
	WeeklyGoal       string       `gorm:"type:text" json:"weekly_goal"`
	EfficiencyAction string       `gorm:"type:text" json:"efficiency_action"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
	Entries          []DailyEntry `gorm:"foreignKey:WeeklyPlanID" json:"-"`
}
