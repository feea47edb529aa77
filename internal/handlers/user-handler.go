package handlers

import (
	"context"
	"log"

	"devconnect/internal/config"
	"devconnect/internal/middleware"
	"devconnect/internal/models"
	"devconnect/internal/service"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registrationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devconnect_registration_attempts_total",
			Help: "Total number of registration attempts",
		},
		[]string{"status"},
	)

	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devconnect_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	loginDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "devconnect_login_duration_seconds",
			Help:    "Time spent processing login requests",
			Buckets: prometheus.DefBuckets,
		},
	)
)

type UserHandler struct {
	userService *service.UserService
	jwtService  *service.JWTService
}

func NewUserHandler(userService *service.UserService, jwtService *service.JWTService) *UserHandler {
	return &UserHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

func (h *UserHandler) RegisterRoutes(app *fiber.App, auth *middleware.AuthMiddleware) {
	app.Get("/health", h.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	app.Get("/profile", h.CurrentUser, auth.RequireAuth)
}

func (h *UserHandler) Register(c fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.Bind().Body(&req); err != nil {
		registrationAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if fieldErrors := validation.Check(&req); fieldErrors != nil {
		registrationAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		registrationAttempts.WithLabelValues("failure").Inc()
		return respondError(c, err)
	}

	registrationAttempts.WithLabelValues("success").Inc()
	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) Login(c fiber.Ctx) error {
	timer := prometheus.NewTimer(loginDuration)
	defer timer.ObserveDuration()

	var req models.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if fieldErrors := validation.Check(&req); fieldErrors != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	user, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		log.Printf("Error logging in %s: %v", req.Email, err)
		return respondError(c, err)
	}

	token, err := h.jwtService.GenerateToken(user)
	if err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		log.Printf("Error generating token for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}

	loginAttempts.WithLabelValues("success").Inc()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"token":   "Bearer " + token,
	})
}

// CurrentUser returns the authenticated identity summary.
func (h *UserHandler) CurrentUser(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":     user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"avatar": user.Avatar,
	})
}

func (h *UserHandler) HealthCheck(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("OK")
}
