package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chess-study/models"
	"chess-study/utils"
)

// EntryRepository persists daily entries keyed by (weekly_plan, entry_date).
type EntryRepository interface {
	ListByPlan(ctx context.Context, planID uint) ([]models.DailyEntry, error)
	// Upsert inserts the entry or replaces all metric fields for an
	// existing (plan, date) pair in one atomic statement.
	Upsert(ctx context.Context, entry *models.DailyEntry) (*models.DailyEntry, error)
}

type gormEntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository returns the GORM-backed EntryRepository.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &gormEntryRepository{db: db}
}

func (r *gormEntryRepository) ListByPlan(ctx context.Context, planID uint) ([]models.DailyEntry, error) {
	var entries []models.DailyEntry
	err := r.db.WithContext(ctx).
		Where("weekly_plan_id = ?", planID).
		Order("entry_date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *gormEntryRepository) Upsert(ctx context.Context, entry *models.DailyEntry) (*models.DailyEntry, error) {
	entry.EntryDate = utils.DateOnly(entry.EntryDate)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "weekly_plan_id"}, {Name: "entry_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"study_time":       entry.StudyTime,
			"learning_summary": entry.LearningSummary,
			"focus_score":      entry.FocusScore,
			"suggestion":       entry.Suggestion,
			"updated_at":       time.Now(),
		}),
	}).Create(entry).Error
	if err != nil {
		return nil, err
	}

	var saved models.DailyEntry
	err = r.db.WithContext(ctx).
		Where("weekly_plan_id = ? AND entry_date = ?", entry.WeeklyPlanID, entry.EntryDate).
		First(&saved).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &saved, nil
}
