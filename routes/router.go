package routes

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"chess-study/config"
	"chess-study/controllers"
	"chess-study/middleware"
	"chess-study/repositories"
	"chess-study/services"
	"chess-study/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.RequestLogger(utils.Logger))
	r.Use(utils.RecoveryWithZap(utils.Logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Record page views after each request
	r.Use(middleware.PageViewRecorder(db))

	r.SetFuncMap(template.FuncMap{
		"date": utils.FormatDate,
	})
	r.LoadHTMLGlob("templates/*.html")
	r.Static("/static", "./static")

	userRepo := repositories.NewUserRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	entryRepo := repositories.NewEntryRepository(db)

	authController := controllers.NewAuthController(services.NewAuthService(userRepo))
	studyController := controllers.NewStudyController(services.NewStudyService(planRepo, entryRepo))

	r.GET("/", authController.ShowIndex)
	r.GET("/register", authController.ShowRegister)
	r.GET("/login", authController.ShowLogin)
	r.GET("/logout", authController.Logout)

	authActions := r.Group("/")
	authActions.Use(middleware.RateLimitMiddleware())
	authActions.POST("/register", authController.Register)
	authActions.POST("/login", authController.Login)

	gated := r.Group("/")
	gated.Use(middleware.SessionRequired())
	gated.GET("/dashboard", studyController.Dashboard)
	gated.GET("/history", studyController.History)
	gated.POST("/save_weekly_plan", studyController.SaveWeeklyPlan)
	gated.POST("/save_daily_entry", studyController.SaveDailyEntry)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	r.NoRoute(func(ctx *gin.Context) {
		ctx.HTML(http.StatusNotFound, "index.html", gin.H{
			"Flash": &utils.Flash{Category: "danger", Message: "Page not found."},
		})
	})

	return r
}
