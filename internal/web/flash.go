package web

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "flash"

// flash is a one-shot message carried over exactly one redirect via a
// short-lived cookie. popFlash consumes it: the cookie is cleared as
// soon as it is read.
type flash struct {
	Category string
	Message  string
}

func setFlash(ctx *fiber.Ctx, category string, message string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(category + ":" + message),
		Path:     "/",
		HTTPOnly: true,
	})
}

func popFlash(ctx *fiber.Ctx) (flash, bool) {
	raw := ctx.Cookies(flashCookie)
	if raw == "" {
		return flash{}, false
	}
	clearCookie(ctx, flashCookie)
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return flash{}, false
	}
	category, message, ok := strings.Cut(decoded, ":")
	if !ok {
		return flash{Category: "error", Message: decoded}, true
	}
	return flash{Category: category, Message: message}, true
}

func clearCookie(ctx *fiber.Ctx, name string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
}
