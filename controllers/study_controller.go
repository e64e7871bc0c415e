package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"chess-study/middleware"
	"chess-study/services"
	"chess-study/utils"
)

// StudyController handles the dashboard, history, and the two save actions.
type StudyController struct {
	study *services.StudyService
}

// NewStudyController creates a StudyController.
func NewStudyController(study *services.StudyService) *StudyController {
	return &StudyController{study: study}
}

// Dashboard renders the current week's plan and 7-day grid.
func (s *StudyController) Dashboard(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	view, err := s.study.Dashboard(ctx.Request.Context(), userID, time.Now())
	if err != nil {
		internalError(ctx, "dashboard assembly failed", err)
		return
	}

	ctx.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Flash":     utils.PopFlash(ctx),
		"Username":  ctx.GetString(middleware.ContextUsernameKey),
		"WeekStart": utils.FormatDate(view.WeekStart),
		"Plan":      view.Plan,
		"Days":      view.Days,
		"Today":     utils.FormatDate(time.Now()),
	})
}

// SaveWeeklyPlan upserts the week's goal and efficiency action.
func (s *StudyController) SaveWeeklyPlan(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	weekStart, err := utils.ParseDate(ctx.PostForm("week_start"))
	if err != nil {
		utils.SetFlash(ctx, "danger", "Invalid week start date!")
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}

	_, err = s.study.SaveWeeklyPlan(ctx.Request.Context(), userID, weekStart,
		ctx.PostForm("weekly_goal"), ctx.PostForm("efficiency_action"))
	if err != nil {
		internalError(ctx, "weekly plan save failed", err)
		return
	}

	utils.SetFlash(ctx, "success", "Weekly plan saved successfully!")
	ctx.Redirect(http.StatusFound, "/dashboard")
}

// SaveDailyEntry upserts one day's metrics, creating the week's plan when it
// does not exist yet.
func (s *StudyController) SaveDailyEntry(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	entryDate, err := utils.ParseDate(ctx.PostForm("entry_date"))
	if err != nil {
		utils.SetFlash(ctx, "danger", "Invalid entry date!")
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}

	studyTime, err := optionalInt(ctx.PostForm("study_time"))
	if err != nil {
		utils.SetFlash(ctx, "danger", "Study time must be a number of minutes!")
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}
	focusScore, err := optionalInt(ctx.PostForm("focus_score"))
	if err != nil {
		utils.SetFlash(ctx, "danger", "Focus score must be a number!")
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}

	_, err = s.study.SaveDailyEntry(ctx.Request.Context(), userID, services.EntryInput{
		EntryDate:       entryDate,
		StudyTime:       studyTime,
		LearningSummary: ctx.PostForm("learning_summary"),
		FocusScore:      focusScore,
		Suggestion:      ctx.PostForm("suggestion"),
	})
	switch {
	case err == nil:
		utils.SetFlash(ctx, "success", "Daily entry saved successfully!")
		ctx.Redirect(http.StatusFound, "/dashboard")
	case errors.Is(err, services.ErrInvalidFocusScore):
		utils.SetFlash(ctx, "danger", "Focus score must be between 1 and 10!")
		ctx.Redirect(http.StatusFound, "/dashboard")
	case errors.Is(err, services.ErrInvalidStudyTime):
		utils.SetFlash(ctx, "danger", "Study time must be zero or more minutes!")
		ctx.Redirect(http.StatusFound, "/dashboard")
	default:
		internalError(ctx, "daily entry save failed", err)
	}
}

// History renders every week the user recorded, newest first.
func (s *StudyController) History(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	weeks, err := s.study.History(ctx.Request.Context(), userID)
	if err != nil {
		internalError(ctx, "history assembly failed", err)
		return
	}

	ctx.HTML(http.StatusOK, "history.html", gin.H{
		"Flash":    utils.PopFlash(ctx),
		"Username": ctx.GetString(middleware.ContextUsernameKey),
		"Weeks":    weeks,
	})
}

// optionalInt parses a form value that may legitimately be left blank.
func optionalInt(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
