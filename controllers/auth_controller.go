package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chess-study/config"
	"chess-study/services"
	"chess-study/utils"
)

// AuthController handles registration, login, and logout with the
// redirect-plus-notice flow of a server-rendered app.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates an AuthController.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// ShowIndex renders the landing page, or goes straight to the dashboard for
// a logged-in visitor.
func (a *AuthController) ShowIndex(ctx *gin.Context) {
	if token, err := ctx.Cookie(utils.SessionCookieName); err == nil && token != "" {
		if claims, err := utils.ParseSessionToken(token); err == nil && !utils.IsSessionRevoked(claims.ID) {
			ctx.Redirect(http.StatusFound, "/dashboard")
			return
		}
	}
	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"Flash": utils.PopFlash(ctx),
	})
}

// ShowRegister renders the registration form.
func (a *AuthController) ShowRegister(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "register.html", gin.H{
		"Flash": utils.PopFlash(ctx),
	})
}

// ShowLogin renders the login form.
func (a *AuthController) ShowLogin(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", gin.H{
		"Flash": utils.PopFlash(ctx),
	})
}

// Register creates an account from the submitted form.
func (a *AuthController) Register(ctx *gin.Context) {
	username := ctx.PostForm("username")
	password := ctx.PostForm("password")

	_, err := a.auth.Register(ctx.Request.Context(), username, password)
	switch {
	case err == nil:
		utils.SetFlash(ctx, "success", "Registration successful! Please log in.")
		ctx.Redirect(http.StatusFound, "/login")
	case errors.Is(err, services.ErrInvalidInput):
		utils.SetFlash(ctx, "danger", "Username and password are required!")
		ctx.Redirect(http.StatusFound, "/register")
	case errors.Is(err, services.ErrUsernameTaken):
		utils.SetFlash(ctx, "danger", "Username already exists!")
		ctx.Redirect(http.StatusFound, "/register")
	default:
		internalError(ctx, "register failed", err)
	}
}

// Login authenticates the form credentials and establishes a session cookie.
func (a *AuthController) Login(ctx *gin.Context) {
	username := ctx.PostForm("username")
	password := ctx.PostForm("password")

	user, err := a.auth.Authenticate(ctx.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.SetFlash(ctx, "danger", "Invalid username or password!")
			ctx.Redirect(http.StatusFound, "/login")
			return
		}
		internalError(ctx, "login failed", err)
		return
	}

	lifetime := time.Duration(config.Get().SessionHours) * time.Hour
	token, err := utils.NewSessionToken(user.ID, user.Username, lifetime)
	if err != nil {
		internalError(ctx, "session token issue failed", err)
		return
	}

	ctx.SetCookie(utils.SessionCookieName, token, int(lifetime.Seconds()), "/", "", false, true)
	utils.SetFlash(ctx, "success", "Login successful!")
	ctx.Redirect(http.StatusFound, "/dashboard")
}

// Logout revokes the current session and clears the cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(utils.SessionCookieName); err == nil && token != "" {
		if claims, err := utils.ParseSessionToken(token); err == nil {
			expiresAt := time.Now().Add(time.Duration(config.Get().SessionHours) * time.Hour)
			if claims.ExpiresAt != nil {
				expiresAt = claims.ExpiresAt.Time
			}
			utils.RevokeSession(claims.ID, expiresAt)
		}
	}

	ctx.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
	utils.SetFlash(ctx, "info", "You have been logged out.")
	ctx.Redirect(http.StatusFound, "/")
}

// internalError logs an unexpected fault and fails the request without
// leaking details; the user retries manually.
func internalError(ctx *gin.Context, msg string, err error) {
	if utils.Sugar != nil {
		utils.Sugar.Errorw(msg, "error", err, "path", ctx.Request.URL.Path)
	}
	ctx.String(http.StatusInternalServerError, "internal error")
	ctx.Abort()
}
