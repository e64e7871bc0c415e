package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chess-study/models"
	"chess-study/utils"
)

// PageViewRecorder counts successful page loads per day and path. It shares
// the atomic insert-or-bump upsert used by the plan and entry repositories.
func PageViewRecorder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != "GET" {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}

		path := c.Request.URL.Path
		// Skip non-content endpoints so they do not skew the counts.
		if path == "/health" || strings.HasPrefix(path, "/static/") {
			return
		}

		date := utils.DateOnly(time.Now())
		_ = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "path"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1"), "updated_at": time.Now()}),
		}).Create(&models.PageView{Date: date, Path: path, Count: 1}).Error
	}
}
