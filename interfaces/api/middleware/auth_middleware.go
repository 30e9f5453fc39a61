package middleware

import (
	"github.com/gofiber/fiber/v2"

	"barbershop-attendance/pkg/logger"
	"barbershop-attendance/pkg/utils"
)

// AdminRoles may manage enrollments, devices and branch policy.
var AdminRoles = []string{"super_admin", "admin", "branch_admin", "admin_staff"}

// Protected middleware validates JWT tokens and sets user context
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization header")
		}

		// Extract token from header
		token := utils.ExtractTokenFromHeader(authHeader)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Invalid authorization header format")
		}

		// Validate token and get user context
		userCtx, err := utils.ValidateTokenStringToUUID(token, jwtSecret)
		if err != nil {
			logger.Warn(logger.CategoryAuth, "token_invalid", "Token validation failed", map[string]interface{}{
				"error": err.Error(),
				"path":  c.Path(),
			})
			switch err {
			case utils.ErrExpiredToken:
				return utils.UnauthorizedResponse(c, "Token has expired")
			case utils.ErrInvalidToken:
				return utils.UnauthorizedResponse(c, "Invalid token")
			case utils.ErrMissingToken:
				return utils.UnauthorizedResponse(c, "Missing token")
			default:
				return utils.UnauthorizedResponse(c, "Token validation failed")
			}
		}

		// Set user context in fiber locals
		c.Locals("user", userCtx)

		return c.Next()
	}
}

// RequireRoles middleware checks the user has one of the given roles
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		user, err := utils.GetUserFromContext(c)
		if err != nil {
			return utils.UnauthorizedResponse(c, "User not authenticated")
		}

		if !allowed[user.Role] {
			logger.Auth("access_denied", "Insufficient permissions", map[string]interface{}{
				"user_id": user.ID.String(),
				"role":    user.Role,
				"path":    c.Path(),
			})
			return utils.ForbiddenResponse(c, "Insufficient permissions")
		}

		return c.Next()
	}
}

// AdminOnly middleware ensures only admin users can access
func AdminOnly() fiber.Handler {
	return RequireRoles(AdminRoles...)
}

// OptionalWithQueryToken sets user context from the header or ?token= when present.
// Used for WebSocket connections where Authorization header can't be sent
func OptionalWithQueryToken(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string

		// First try Authorization header
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			token = utils.ExtractTokenFromHeader(authHeader)
		}

		// If no header token, try query parameter
		if token == "" {
			token = c.Query("token")
		}

		if token == "" {
			return c.Next() // No token, continue as anonymous
		}

		userCtx, err := utils.ValidateTokenStringToUUID(token, jwtSecret)
		if err != nil {
			return c.Next() // Invalid token, continue as anonymous
		}

		c.Locals("user", userCtx)
		return c.Next()
	}
}
