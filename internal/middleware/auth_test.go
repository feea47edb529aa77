package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type stubResolver struct {
	users map[bson.ObjectID]*models.User
}

func (s *stubResolver) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return s.users[id], nil
}

func testApp(jwtService *service.JWTService, resolver *stubResolver) *fiber.App {
	auth := NewAuthMiddleware(jwtService, resolver)
	app := fiber.New()
	app.Get("/protected", func(c fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusInternalServerError).SendString("no user in locals")
		}
		return c.SendString(user.Name)
	}, auth.RequireAuth)
	return app
}

func TestRequireAuth(t *testing.T) {
	jwtService := service.NewJWTService("test-secret", time.Hour)
	user := &models.User{ID: bson.NewObjectID(), Name: "Alice"}
	resolver := &stubResolver{users: map[bson.ObjectID]*models.User{user.ID: user}}
	app := testApp(jwtService, resolver)

	token, err := jwtService.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("Expected 401 without Bearer prefix, got %d", resp.StatusCode)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("Expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expiredIssuer := service.NewJWTService("test-secret", -time.Hour)
		expired, err := expiredIssuer.GenerateToken(user)
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("Expected 401 for expired token, got %d", resp.StatusCode)
		}
	})

	t.Run("token for deleted user", func(t *testing.T) {
		ghost := &models.User{ID: bson.NewObjectID(), Name: "Ghost"}
		token, err := jwtService.GenerateToken(ghost)
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("Expected 401 for unknown identity, got %d", resp.StatusCode)
		}
	})
}
