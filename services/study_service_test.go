package services_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess-study/models"
	"chess-study/repositories"
	"chess-study/services"
	"chess-study/utils"
)

// In-memory repositories with the same key semantics as the GORM ones, so
// upsert behavior can be exercised without a database.

type fakePlanRepo struct {
	nextID uint
	plans  map[uint]*models.WeeklyPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{nextID: 1, plans: map[uint]*models.WeeklyPlan{}}
}

func (f *fakePlanRepo) find(userID uint, weekStart time.Time) *models.WeeklyPlan {
	for _, p := range f.plans {
		if p.UserID == userID && p.WeekStart.Equal(utils.DateOnly(weekStart)) {
			return p
		}
	}
	return nil
}

func (f *fakePlanRepo) Get(_ context.Context, userID uint, weekStart time.Time) (*models.WeeklyPlan, error) {
	if p := f.find(userID, weekStart); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePlanRepo) Upsert(_ context.Context, userID uint, weekStart time.Time, goal, action string) (*models.WeeklyPlan, error) {
	if p := f.find(userID, weekStart); p != nil {
		p.WeeklyGoal = goal
		p.EfficiencyAction = action
		cp := *p
		return &cp, nil
	}
	p := &models.WeeklyPlan{ID: f.nextID, UserID: userID, WeekStart: utils.DateOnly(weekStart), WeeklyGoal: goal, EfficiencyAction: action}
	f.plans[f.nextID] = p
	f.nextID++
	cp := *p
	return &cp, nil
}

func (f *fakePlanRepo) GetOrCreate(ctx context.Context, userID uint, weekStart time.Time) (*models.WeeklyPlan, error) {
	if p := f.find(userID, weekStart); p != nil {
		cp := *p
		return &cp, nil
	}
	return f.Upsert(ctx, userID, weekStart, "", "")
}

func (f *fakePlanRepo) ListByUser(_ context.Context, userID uint) ([]models.WeeklyPlan, error) {
	var out []models.WeeklyPlan
	for _, p := range f.plans {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.After(out[j].WeekStart) })
	return out, nil
}

type fakeEntryRepo struct {
	nextID  uint
	entries map[uint]*models.DailyEntry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{nextID: 1, entries: map[uint]*models.DailyEntry{}}
}

func (f *fakeEntryRepo) ListByPlan(_ context.Context, planID uint) ([]models.DailyEntry, error) {
	var out []models.DailyEntry
	for _, e := range f.entries {
		if e.WeeklyPlanID == planID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate.Before(out[j].EntryDate) })
	return out, nil
}

func (f *fakeEntryRepo) Upsert(_ context.Context, entry *models.DailyEntry) (*models.DailyEntry, error) {
	entry.EntryDate = utils.DateOnly(entry.EntryDate)
	for _, e := range f.entries {
		if e.WeeklyPlanID == entry.WeeklyPlanID && e.EntryDate.Equal(entry.EntryDate) {
			e.StudyTime = entry.StudyTime
			e.LearningSummary = entry.LearningSummary
			e.FocusScore = entry.FocusScore
			e.Suggestion = entry.Suggestion
			cp := *e
			return &cp, nil
		}
	}
	e := *entry
	e.ID = f.nextID
	f.entries[f.nextID] = &e
	f.nextID++
	cp := e
	return &cp, nil
}

func newStudyFixture() (*services.StudyService, *fakePlanRepo, *fakeEntryRepo) {
	plans := newFakePlanRepo()
	entries := newFakeEntryRepo()
	return services.NewStudyService(plans, entries), plans, entries
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	require.NoError(t, err)
	return d
}

func intp(n int) *int { return &n }

func TestSaveWeeklyPlanTwiceKeepsOneRow(t *testing.T) {
	svc, plans, _ := newStudyFixture()
	ctx := context.Background()
	monday := mustDate(t, "2024-06-03")

	first, err := svc.SaveWeeklyPlan(ctx, 1, monday, "Study endgames", "No blitz")
	require.NoError(t, err)

	second, err := svc.SaveWeeklyPlan(ctx, 1, monday, "Study openings", "Sleep more")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, plans.plans, 1)
	assert.Equal(t, "Study openings", plans.plans[first.ID].WeeklyGoal)
	assert.Equal(t, "Sleep more", plans.plans[first.ID].EfficiencyAction)
}

func TestSaveWeeklyPlanAlignsToMonday(t *testing.T) {
	svc, _, _ := newStudyFixture()
	ctx := context.Background()

	// A mid-week date lands on the same plan as its Monday.
	p1, err := svc.SaveWeeklyPlan(ctx, 1, mustDate(t, "2024-06-05"), "goal", "")
	require.NoError(t, err)
	p2, err := svc.SaveWeeklyPlan(ctx, 1, mustDate(t, "2024-06-03"), "goal", "")
	require.NoError(t, err)

	assert.Equal(t, p1.ID, p2.ID)
	assert.Equal(t, "2024-06-03", utils.FormatDate(p1.WeekStart))
}

func TestSaveWeeklyPlanStripsMarkup(t *testing.T) {
	svc, _, _ := newStudyFixture()
	ctx := context.Background()

	plan, err := svc.SaveWeeklyPlan(ctx, 1, mustDate(t, "2024-06-03"),
		`Study <script>alert("x")</script>endgames`, "<b>rest</b>")
	require.NoError(t, err)
	assert.Equal(t, "Study endgames", plan.WeeklyGoal)
	assert.Equal(t, "rest", plan.EfficiencyAction)
}

func TestSaveDailyEntryCreatesEmptyPlan(t *testing.T) {
	svc, plans, _ := newStudyFixture()
	ctx := context.Background()

	entry, err := svc.SaveDailyEntry(ctx, 1, services.EntryInput{
		EntryDate: mustDate(t, "2024-06-04"),
		StudyTime: intp(45),
	})
	require.NoError(t, err)

	plan, err := plans.Get(ctx, 1, mustDate(t, "2024-06-03"))
	require.NoError(t, err)
	assert.Equal(t, plan.ID, entry.WeeklyPlanID)
	assert.Empty(t, plan.WeeklyGoal)
	assert.Empty(t, plan.EfficiencyAction)
}

func TestSaveDailyEntryDoesNotClobberExistingPlan(t *testing.T) {
	svc, plans, _ := newStudyFixture()
	ctx := context.Background()

	_, err := svc.SaveWeeklyPlan(ctx, 1, mustDate(t, "2024-06-03"), "Study endgames", "")
	require.NoError(t, err)

	_, err = svc.SaveDailyEntry(ctx, 1, services.EntryInput{EntryDate: mustDate(t, "2024-06-04")})
	require.NoError(t, err)

	plan, err := plans.Get(ctx, 1, mustDate(t, "2024-06-03"))
	require.NoError(t, err)
	assert.Equal(t, "Study endgames", plan.WeeklyGoal)
}

func TestSaveDailyEntryTwiceKeepsOneRow(t *testing.T) {
	svc, _, entries := newStudyFixture()
	ctx := context.Background()
	date := mustDate(t, "2024-06-04")

	first, err := svc.SaveDailyEntry(ctx, 1, services.EntryInput{
		EntryDate: date, StudyTime: intp(30), LearningSummary: "Rook endings",
	})
	require.NoError(t, err)

	second, err := svc.SaveDailyEntry(ctx, 1, services.EntryInput{
		EntryDate: date, StudyTime: intp(60), LearningSummary: "Queen endings", FocusScore: intp(8),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, entries.entries, 1)
	saved := entries.entries[first.ID]
	assert.Equal(t, 60, *saved.StudyTime)
	assert.Equal(t, "Queen endings", saved.LearningSummary)
	assert.Equal(t, 8, *saved.FocusScore)
}

func TestSaveDailyEntryValidatesRanges(t *testing.T) {
	svc, plans, _ := newStudyFixture()
	ctx := context.Background()
	date := mustDate(t, "2024-06-04")

	_, err := svc.SaveDailyEntry(ctx, 1, services.EntryInput{EntryDate: date, FocusScore: intp(0)})
	assert.ErrorIs(t, err, services.ErrInvalidFocusScore)

	_, err = svc.SaveDailyEntry(ctx, 1, services.EntryInput{EntryDate: date, FocusScore: intp(11)})
	assert.ErrorIs(t, err, services.ErrInvalidFocusScore)

	_, err = svc.SaveDailyEntry(ctx, 1, services.EntryInput{EntryDate: date, StudyTime: intp(-5)})
	assert.ErrorIs(t, err, services.ErrInvalidStudyTime)

	// Rejected saves must not leave a placeholder plan behind.
	assert.Empty(t, plans.plans)
}

func TestDashboardBuildsSevenSlots(t *testing.T) {
	svc, _, _ := newStudyFixture()
	ctx := context.Background()

	_, err := svc.SaveWeeklyPlan(ctx, 1, mustDate(t, "2024-06-03"), "Study endgames", "")
	require.NoError(t, err)
	_, err = svc.SaveDailyEntry(ctx, 1, services.EntryInput{
		EntryDate: mustDate(t, "2024-06-04"), StudyTime: intp(45), FocusScore: intp(7),
	})
	require.NoError(t, err)

	view, err := svc.Dashboard(ctx, 1, mustDate(t, "2024-06-04"))
	require.NoError(t, err)

	assert.Equal(t, "2024-06-03", utils.FormatDate(view.WeekStart))
	require.NotNil(t, view.Plan)
	assert.Equal(t, "Study endgames", view.Plan.WeeklyGoal)
	require.Len(t, view.Days, 7)

	for i, slot := range view.Days {
		assert.Equal(t, utils.FormatDate(view.WeekStart.AddDate(0, 0, i)), utils.FormatDate(slot.Date))
		if utils.FormatDate(slot.Date) == "2024-06-04" {
			require.NotNil(t, slot.Entry)
			assert.Equal(t, 45, *slot.Entry.StudyTime)
			assert.Equal(t, 7, *slot.Entry.FocusScore)
		} else {
			assert.Nil(t, slot.Entry, "slot %s should be empty", utils.FormatDate(slot.Date))
		}
	}
}

func TestDashboardWithoutPlan(t *testing.T) {
	svc, _, _ := newStudyFixture()

	view, err := svc.Dashboard(context.Background(), 1, mustDate(t, "2024-06-04"))
	require.NoError(t, err)
	assert.Nil(t, view.Plan)
	require.Len(t, view.Days, 7)
	for _, slot := range view.Days {
		assert.Nil(t, slot.Entry)
	}
}

func TestHistoryOrdering(t *testing.T) {
	svc, _, _ := newStudyFixture()
	ctx := context.Background()

	for _, week := range []string{"2024-05-20", "2024-06-03", "2024-05-27"} {
		_, err := svc.SaveWeeklyPlan(ctx, 1, mustDate(t, week), "goal "+week, "")
		require.NoError(t, err)
	}
	// Entries saved out of order within one week.
	for _, day := range []string{"2024-06-06", "2024-06-04", "2024-06-05"} {
		_, err := svc.SaveDailyEntry(ctx, 1, services.EntryInput{EntryDate: mustDate(t, day)})
		require.NoError(t, err)
	}

	weeks, err := svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, weeks, 3)

	// Plans newest week first.
	assert.Equal(t, "2024-06-03", utils.FormatDate(weeks[0].Plan.WeekStart))
	assert.Equal(t, "2024-05-27", utils.FormatDate(weeks[1].Plan.WeekStart))
	assert.Equal(t, "2024-05-20", utils.FormatDate(weeks[2].Plan.WeekStart))

	// Entries oldest first within the week.
	require.Len(t, weeks[0].Entries, 3)
	assert.Equal(t, "2024-06-04", utils.FormatDate(weeks[0].Entries[0].EntryDate))
	assert.Equal(t, "2024-06-05", utils.FormatDate(weeks[0].Entries[1].EntryDate))
	assert.Equal(t, "2024-06-06", utils.FormatDate(weeks[0].Entries[2].EntryDate))
}

func TestHistoryScopedToUser(t *testing.T) {
	svc, _, _ := newStudyFixture()
	ctx := context.Background()

	_, err := svc.SaveWeeklyPlan(ctx, 1, mustDate(t, "2024-06-03"), "mine", "")
	require.NoError(t, err)
	_, err = svc.SaveWeeklyPlan(ctx, 2, mustDate(t, "2024-06-03"), "theirs", "")
	require.NoError(t, err)

	weeks, err := svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, "mine", weeks[0].Plan.WeeklyGoal)
}
