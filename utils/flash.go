package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookieName = "chess_flash"

// Flash is a one-shot notice carried across a redirect.
type Flash struct {
	Category string
	Message  string
}

// SetFlash queues a notice for the next rendered page. Category is one of
// the UI classes: success, danger, info. gin escapes the cookie value
// on write and unescapes on read, so the raw "category|message" is safe.
func SetFlash(ctx *gin.Context, category, message string) {
	ctx.SetCookie(flashCookieName, category+"|"+message, 60, "/", "", false, true)
}

// PopFlash returns the pending notice, if any, and clears it.
// gin unescapes the cookie value on read, so no second decode here.
func PopFlash(ctx *gin.Context) *Flash {
	raw, err := ctx.Cookie(flashCookieName)
	if err != nil || raw == "" {
		return nil
	}
	ctx.SetCookie(flashCookieName, "", -1, "/", "", false, true)

	category, message, found := strings.Cut(raw, "|")
	if !found || message == "" {
		return nil
	}
	return &Flash{Category: category, Message: message}
}
