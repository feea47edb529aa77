package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"devconnect/internal/events"
	"devconnect/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type PostStore interface {
	New(ctx context.Context, post *models.Post) (*models.Post, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	FindAll(ctx context.Context) ([]*models.Post, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	PullLike(ctx context.Context, postID, userID bson.ObjectID) (*models.Post, error)
	PushLike(ctx context.Context, postID, userID bson.ObjectID) (*models.Post, error)
	PushComment(ctx context.Context, postID bson.ObjectID, comment models.Comment) (*models.Post, error)
	PullComment(ctx context.Context, postID bson.ObjectID, commentID string) (*models.Post, error)
}

type PostService struct {
	posts          PostStore
	eventPublisher events.Publisher
}

func NewPostService(posts PostStore, eventPublisher events.Publisher) *PostService {
	return &PostService{
		posts:          posts,
		eventPublisher: eventPublisher,
	}
}

// Create stores a post authored by the given user, snapshotting the author's
// name and avatar.
func (ps *PostService) Create(ctx context.Context, author *models.User, req *models.PostRequest) (*models.Post, error) {
	post := &models.Post{
		UserID: author.ID,
		Text:   req.Text,
		Name:   author.Name,
		Avatar: author.Avatar,
	}

	created, err := ps.posts.New(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	if ps.eventPublisher != nil {
		if err := ps.eventPublisher.PublishPostCreated(ctx, created.ID.Hex(), author.ID.Hex()); err != nil {
			log.Printf("Warning: failed to publish post created event: %v", err)
		}
	}

	return created, nil
}

func (ps *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return ps.posts.FindAll(ctx)
}

func (ps *PostService) Get(ctx context.Context, postID bson.ObjectID) (*models.Post, error) {
	post, err := ps.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error finding post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %w", ErrNotFound)
	}
	return post, nil
}

// Delete removes a post. Only the authoring identity may delete it.
func (ps *PostService) Delete(ctx context.Context, userID, postID bson.ObjectID) error {
	post, err := ps.posts.FindByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("error finding post: %w", err)
	}
	if post == nil {
		return fmt.Errorf("post %w", ErrNotFound)
	}
	if post.UserID != userID {
		return fmt.Errorf("deleting another user's post: %w", ErrNotOwner)
	}

	if err := ps.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("post %w", ErrNotFound)
		}
		return fmt.Errorf("error deleting post: %w", err)
	}
	return nil
}

// ToggleLike removes the caller's like when present, otherwise adds one.
// Both arms are single atomic updates; losing a race between them falls back
// to the other arm once.
func (ps *PostService) ToggleLike(ctx context.Context, userID, postID bson.ObjectID) (*models.Post, error) {
	post, err := ps.posts.PullLike(ctx, postID, userID)
	if err == nil {
		return post, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error toggling like: %w", err)
	}

	post, err = ps.posts.PushLike(ctx, postID, userID)
	if err == nil {
		return post, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error toggling like: %w", err)
	}

	// The push filter only rejects posts the caller already likes, so either
	// the post is gone or a concurrent toggle slipped in a like. Unlike once
	// more before giving up.
	post, err = ps.posts.PullLike(ctx, postID, userID)
	if err == nil {
		return post, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("post %w", ErrNotFound)
	}
	return nil, fmt.Errorf("error toggling like: %w", err)
}

// AddComment appends a comment at the head of the post's comment list. Any
// authenticated identity may comment on any post.
func (ps *PostService) AddComment(ctx context.Context, author *models.User, postID bson.ObjectID, req *models.CommentRequest) (*models.Post, error) {
	comment := models.Comment{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		Text:      req.Text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: int(time.Now().Unix()),
	}

	post, err := ps.posts.PushComment(ctx, postID, comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("post %w", ErrNotFound)
		}
		return nil, fmt.Errorf("error adding comment: %w", err)
	}
	return post, nil
}

// RemoveComment deletes a comment by id. There is deliberately no author
// check here, matching the upstream behavior this service reimplements.
func (ps *PostService) RemoveComment(ctx context.Context, postID bson.ObjectID, commentID string) (*models.Post, error) {
	post, err := ps.posts.PullComment(ctx, postID, commentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("comment %w", ErrNotFound)
		}
		return nil, fmt.Errorf("error removing comment: %w", err)
	}
	return post, nil
}
