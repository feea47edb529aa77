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
	"go.mongodb.org/mongo-driver/v2/bson"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(app *fiber.App, auth *middleware.AuthMiddleware) {
	group := app.Group("/profiles")

	// Public lookups
	group.Get("/all", h.ListProfiles)
	group.Get("/handle/:handle", h.GetByHandle)
	group.Get("/user/:id", h.GetByUserID)

	// Self-service endpoints
	group.Get("/", h.GetOwn, auth.RequireAuth)
	group.Post("/", h.Upsert, auth.RequireAuth)
	group.Delete("/", h.DeleteAccount, auth.RequireAuth)

	group.Post("/experience", h.AddExperience, auth.RequireAuth)
	group.Delete("/experience/:id", h.RemoveExperience, auth.RequireAuth)
	group.Post("/education", h.AddEducation, auth.RequireAuth)
	group.Delete("/education/:id", h.RemoveEducation, auth.RequireAuth)
}

func (h *ProfileHandler) ListProfiles(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	summaries, err := h.profileService.ListSummaries(ctx)
	if err != nil {
		log.Printf("Failed to list profiles: %v", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(summaries)
}

func (h *ProfileHandler) GetByHandle(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	profile, err := h.profileService.GetByHandle(ctx, c.Params("handle"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) GetByUserID(c fiber.Ctx) error {
	userID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "There is no profile for this id",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	profile, err := h.profileService.GetByUserID(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) GetOwn(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	profile, err := h.profileService.GetOwn(ctx, user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) Upsert(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req models.ProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if fieldErrors := validation.Check(&req); fieldErrors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	profile, err := h.profileService.Upsert(ctx, user.ID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) DeleteAccount(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	if err := h.profileService.DeleteAccount(ctx, user.ID); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

func (h *ProfileHandler) AddExperience(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req models.ExperienceRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if fieldErrors := validation.Check(&req); fieldErrors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	profile, err := h.profileService.AddExperience(ctx, user.ID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) RemoveExperience(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	profile, err := h.profileService.RemoveExperience(ctx, user.ID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) AddEducation(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req models.EducationRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if fieldErrors := validation.Check(&req); fieldErrors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	profile, err := h.profileService.AddEducation(ctx, user.ID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) RemoveEducation(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	profile, err := h.profileService.RemoveEducation(ctx, user.ID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}
