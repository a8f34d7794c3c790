package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/rjcastillo/amity/core"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

// requireAuth validates the caller's access token and stores the
// authenticated identity in the request context for downstream handlers.
// Rejections short-circuit here; the contact engine is never reached
// without a verified identity.
func (a *Adapter) requireAuth(c fiber.Ctx) error {
	authCtx, user, err := a.auth.Authenticate(extractAccessToken(c))
	if err != nil {
		return respondError(c, err)
	}

	c.Locals("auth", authCtx)
	c.Locals("user", user)

	return c.Next()
}

// recoverFault converts panics escaping a handler into a uniform,
// detail-suppressed server-fault response. This is the single place
// unexpected failures change shape.
func recoverFault(c fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}
	}()
	return c.Next()
}

// extractAccessToken pulls the access token from the request.
// Checks the Authorization header (Bearer token) first, then falls back
// to the httpOnly cookie.
func extractAccessToken(c fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}

	return c.Cookies(accessCookie)
}

// authContext returns the identity the middleware attached. It is the
// only source of caller identity for contact operations.
func authContext(c fiber.Ctx) *core.AuthContext {
	authCtx, _ := c.Locals("auth").(*core.AuthContext)
	return authCtx
}
