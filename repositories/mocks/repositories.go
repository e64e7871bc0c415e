// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"chess-study/models"
)

// UserRepository is a mock of repositories.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// PlanRepository is a mock of repositories.PlanRepository.
type PlanRepository struct {
	mock.Mock
}

func (m *PlanRepository) Get(ctx context.Context, userID uint, weekStart time.Time) (*models.WeeklyPlan, error) {
	args := m.Called(ctx, userID, weekStart)
	if p, ok := args.Get(0).(*models.WeeklyPlan); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PlanRepository) Upsert(ctx context.Context, userID uint, weekStart time.Time, goal, action string) (*models.WeeklyPlan, error) {
	args := m.Called(ctx, userID, weekStart, goal, action)
	if p, ok := args.Get(0).(*models.WeeklyPlan); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PlanRepository) GetOrCreate(ctx context.Context, userID uint, weekStart time.Time) (*models.WeeklyPlan, error) {
	args := m.Called(ctx, userID, weekStart)
	if p, ok := args.Get(0).(*models.WeeklyPlan); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PlanRepository) ListByUser(ctx context.Context, userID uint) ([]models.WeeklyPlan, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).([]models.WeeklyPlan); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// EntryRepository is a mock of repositories.EntryRepository.
type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) ListByPlan(ctx context.Context, planID uint) ([]models.DailyEntry, error) {
	args := m.Called(ctx, planID)
	if e, ok := args.Get(0).([]models.DailyEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) Upsert(ctx context.Context, entry *models.DailyEntry) (*models.DailyEntry, error) {
	args := m.Called(ctx, entry)
	if e, ok := args.Get(0).(*models.DailyEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}
