package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Raj-Shinde-045/office-do-or-due/pkg/blacklist"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/jwt"
)

// AuthMiddleware validates session tokens and stores the credential identity
// in fiber locals for downstream handlers
func AuthMiddleware(tokenService *jwt.TokenService, tokenBlacklist *blacklist.TokenBlacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   true,
				"message": "missing authorization header",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   true,
				"message": "invalid authorization header format",
			})
		}
		token := parts[1]

		claims, err := tokenService.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   true,
				"message": "invalid token",
			})
		}

		isBlacklisted, err := tokenBlacklist.IsBlacklisted(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   true,
				"message": "failed to verify token status",
			})
		}
		if isBlacklisted {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   true,
				"message": "token has been revoked",
			})
		}

		if claims.TokenType != "access" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   true,
				"message": "invalid token type",
			})
		}

		c.Locals("credential_id", claims.CredentialID)
		c.Locals("email", claims.Email)
		c.Locals("claims", claims)
		c.Locals("token", token)

		return c.Next()
	}
}

// OptionalAuthMiddleware loads credential identity when a valid token is
// presented but lets anonymous requests through. Used on surfaces like join
// request submission where the requester may not have an account yet.
func OptionalAuthMiddleware(tokenService *jwt.TokenService, tokenBlacklist *blacklist.TokenBlacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return c.Next()
		}
		token := parts[1]

		claims, err := tokenService.ValidateToken(token)
		if err != nil || claims.TokenType != "access" {
			return c.Next()
		}

		if blacklisted, err := tokenBlacklist.IsBlacklisted(c.Context(), token); err != nil || blacklisted {
			return c.Next()
		}

		c.Locals("credential_id", claims.CredentialID)
		c.Locals("email", claims.Email)
		c.Locals("claims", claims)
		c.Locals("token", token)

		return c.Next()
	}
}
