package services

import (
	"context"
	"errors"
	"time"

	"chess-study/models"
	"chess-study/repositories"
	"chess-study/utils"
)

// DaySlot is one of the 7 fixed calendar positions in the dashboard week,
// holding the matching entry when one exists.
type DaySlot struct {
	Date  time.Time
	Entry *models.DailyEntry
}

// DashboardView is the current week's plan plus its 7-day grid.
type DashboardView struct {
	WeekStart time.Time
	Plan      *models.WeeklyPlan
	Days      []DaySlot
}

// WeekGroup pairs a plan with its entries for the history listing.
type WeekGroup struct {
	Plan    models.WeeklyPlan
	Entries []models.DailyEntry
}

// EntryInput carries one day's study metrics. Nil StudyTime/FocusScore mean
// the field was left blank.
type EntryInput struct {
	EntryDate       time.Time
	StudyTime       *int
	LearningSummary string
	FocusScore      *int
	Suggestion      string
}

// StudyService buckets saves into Monday-aligned weeks and assembles the
// dashboard and history views.
type StudyService struct {
	plans   repositories.PlanRepository
	entries repositories.EntryRepository
}

// NewStudyService creates a StudyService.
func NewStudyService(plans repositories.PlanRepository, entries repositories.EntryRepository) *StudyService {
	return &StudyService{plans: plans, entries: entries}
}

// SaveWeeklyPlan upserts the goal and efficiency action for the week
// containing weekStart. The date is re-aligned to its Monday so a tampered
// form value can never create an off-grid week.
func (s *StudyService) SaveWeeklyPlan(ctx context.Context, userID uint, weekStart time.Time, goal, action string) (*models.WeeklyPlan, error) {
	return s.plans.Upsert(ctx, userID, utils.WeekStart(weekStart),
		utils.Sanitize(goal), utils.Sanitize(action))
}

// SaveDailyEntry records one day's metrics. The parent plan is derived from
// the entry date and created empty when the week has none yet, which also
// keeps every entry inside its plan's 7-day span by construction.
func (s *StudyService) SaveDailyEntry(ctx context.Context, userID uint, in EntryInput) (*models.DailyEntry, error) {
	if in.FocusScore != nil && (*in.FocusScore < 1 || *in.FocusScore > 10) {
		return nil, ErrInvalidFocusScore
	}
	if in.StudyTime != nil && *in.StudyTime < 0 {
		return nil, ErrInvalidStudyTime
	}

	plan, err := s.plans.GetOrCreate(ctx, userID, utils.WeekStart(in.EntryDate))
	if err != nil {
		return nil, err
	}

	entry := &models.DailyEntry{
		WeeklyPlanID:    plan.ID,
		EntryDate:       utils.DateOnly(in.EntryDate),
		StudyTime:       in.StudyTime,
		LearningSummary: utils.Sanitize(in.LearningSummary),
		FocusScore:      in.FocusScore,
		Suggestion:      utils.Sanitize(in.Suggestion),
	}
	return s.entries.Upsert(ctx, entry)
}

// Dashboard assembles the week containing today: the plan when one exists
// and exactly 7 day slots matched to entries by calendar date.
func (s *StudyService) Dashboard(ctx context.Context, userID uint, today time.Time) (*DashboardView, error) {
	weekStart := utils.WeekStart(today)

	view := &DashboardView{
		WeekStart: weekStart,
		Days:      make([]DaySlot, 7),
	}

	plan, err := s.plans.Get(ctx, userID, weekStart)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	view.Plan = plan

	byDate := map[string]*models.DailyEntry{}
	if plan != nil {
		entries, err := s.entries.ListByPlan(ctx, plan.ID)
		if err != nil {
			return nil, err
		}
		for i := range entries {
			byDate[utils.FormatDate(entries[i].EntryDate)] = &entries[i]
		}
	}

	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		view.Days[i] = DaySlot{
			Date:  date,
			Entry: byDate[utils.FormatDate(date)],
		}
	}
	return view, nil
}

// History lists every plan the user owns, newest week first, each with its
// entries oldest first.
func (s *StudyService) History(ctx context.Context, userID uint) ([]WeekGroup, error) {
	plans, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups := make([]WeekGroup, 0, len(plans))
	for _, plan := range plans {
		entries, err := s.entries.ListByPlan(ctx, plan.ID)
		if err != nil {
			return nil, err
		}
		groups = append(groups, WeekGroup{Plan: plan, Entries: entries})
	}
	return groups, nil
}
