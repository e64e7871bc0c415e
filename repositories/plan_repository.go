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

// PlanRepository persists weekly plans keyed by (user, week_start).
// Both write paths are single atomic statements so two concurrent saves for
// the same week resolve to one surviving row.
type PlanRepository interface {
	Get(ctx context.Context, userID uint, weekStart time.Time) (*models.WeeklyPlan, error)
	// Upsert inserts or replaces the goal and efficiency action for the week.
	Upsert(ctx context.Context, userID uint, weekStart time.Time, goal, action string) (*models.WeeklyPlan, error)
	// GetOrCreate ensures a plan row exists without touching an existing
	// goal or action; used when a daily entry lands on a planless week.
	GetOrCreate(ctx context.Context, userID uint, weekStart time.Time) (*models.WeeklyPlan, error)
	ListByUser(ctx context.Context, userID uint) ([]models.WeeklyPlan, error)
}

type gormPlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository returns the GORM-backed PlanRepository.
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &gormPlanRepository{db: db}
}

func (r *gormPlanRepository) Get(ctx context.Context, userID uint, weekStart time.Time) (*models.WeeklyPlan, error) {
	var plan models.WeeklyPlan
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, utils.DateOnly(weekStart)).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *gormPlanRepository) Upsert(ctx context.Context, userID uint, weekStart time.Time, goal, action string) (*models.WeeklyPlan, error) {
	plan := models.WeeklyPlan{
		UserID:           userID,
		WeekStart:        utils.DateOnly(weekStart),
		WeeklyGoal:       goal,
		EfficiencyAction: action,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"weekly_goal":       goal,
			"efficiency_action": action,
			"updated_at":        time.Now(),
		}),
	}).Create(&plan).Error
	if err != nil {
		return nil, err
	}
	// On the update path MySQL does not report the surviving row's ID, so
	// read it back.
	return r.Get(ctx, userID, weekStart)
}

func (r *gormPlanRepository) GetOrCreate(ctx context.Context, userID uint, weekStart time.Time) (*models.WeeklyPlan, error) {
	plan := models.WeeklyPlan{
		UserID:    userID,
		WeekStart: utils.DateOnly(weekStart),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
		DoNothing: true,
	}).Create(&plan).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, weekStart)
}

func (r *gormPlanRepository) ListByUser(ctx context.Context, userID uint) ([]models.WeeklyPlan, error) {
	var plans []models.WeeklyPlan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_start DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}
