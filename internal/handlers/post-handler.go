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

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

func (h *PostHandler) RegisterRoutes(app *fiber.App, auth *middleware.AuthMiddleware) {
	group := app.Group("/posts")

	group.Get("/", h.ListPosts)
	group.Get("/:id", h.GetPost)

	group.Post("/", h.CreatePost, auth.RequireAuth)
	group.Delete("/:id", h.DeletePost, auth.RequireAuth)
	group.Post("/like/:id", h.ToggleLike, auth.RequireAuth)
	group.Post("/comment/:id", h.AddComment, auth.RequireAuth)
	group.Delete("/comment/:id/:commentId", h.RemoveComment, auth.RequireAuth)
}

func (h *PostHandler) ListPosts(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	posts, err := h.postService.List(ctx)
	if err != nil {
		log.Printf("Failed to list posts: %v", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) GetPost(c fiber.Ctx) error {
	postID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No post found with that id",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	post, err := h.postService.Get(ctx, postID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) CreatePost(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req models.PostRequest
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

	post, err := h.postService.Create(ctx, user, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) DeletePost(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	postID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No post found with that id",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	if err := h.postService.Delete(ctx, user.ID, postID); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

func (h *PostHandler) ToggleLike(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	postID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No post found with that id",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	post, err := h.postService.ToggleLike(ctx, user.ID, postID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) AddComment(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	postID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No post found with that id",
		})
	}

	var req models.CommentRequest
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

	post, err := h.postService.AddComment(ctx, user, postID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) RemoveComment(c fiber.Ctx) error {
	postID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No post found with that id",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), config.ServiceConfig.RequestTimeout)
	defer cancel()

	post, err := h.postService.RemoveComment(ctx, postID, c.Params("commentId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}
