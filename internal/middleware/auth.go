// Package middleware holds the bearer-token authentication gate. A verified
// token is only half of it: the embedded identity must still resolve to a
// live user record before the request is allowed through.
package middleware

import (
	"context"
	"log"

	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const userLocalKey = "authenticated-user"

type UserResolver interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

type AuthMiddleware struct {
	jwtService *service.JWTService
	users      UserResolver
}

func NewAuthMiddleware(jwtService *service.JWTService, users UserResolver) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// RequireAuth rejects the request with 401 unless it carries a valid bearer
// token whose identity still exists.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	token := extractToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Missing authorization token",
		})
	}

	claims, err := m.jwtService.VerifyToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	userID, err := bson.ObjectIDFromHex(claims.Id)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	user, err := m.users.FindByID(c.Context(), userID)
	if err != nil {
		log.Printf("Error resolving token identity %s: %v", claims.Id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	c.Locals(userLocalKey, user)
	return c.Next()
}

// CurrentUser returns the identity attached by RequireAuth, or nil on public
// routes.
func CurrentUser(c fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalKey).(*models.User)
	return user
}

func extractToken(c fiber.Ctx) string {
	auth := c.Get("Authorization")
	if len(auth) > 7 && auth[:7] == "Bearer " {
		return auth[7:]
	}
	return ""
}
