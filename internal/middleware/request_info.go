package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// GetIPAddress returns the caller's address for the audit trail, honouring
// reverse-proxy headers the way Fiber resolves them.
func GetIPAddress(c *fiber.Ctx) *string {
	ip := c.IP()
	if ip == "" {
		return nil
	}
	return &ip
}

func GetUserAgent(c *fiber.Ctx) *string {
	ua := c.Get(fiber.HeaderUserAgent)
	if ua == "" {
		return nil
	}
	return &ua
}
