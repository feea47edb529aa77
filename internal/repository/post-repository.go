package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devconnect/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PostRepository struct {
	collection *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		collection: db.Collection("posts"),
	}
}

func (r *PostRepository) New(ctx context.Context, post *models.Post) (*models.Post, error) {
	if post.ID.IsZero() {
		post.ID = bson.NewObjectID()
	}
	if post.CreatedAt == 0 {
		post.CreatedAt = int(time.Now().Unix())
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}

	_, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}
	return post, nil
}

// FindByID returns (nil, nil) when no post matches.
func (r *PostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) FindAll(ctx context.Context) ([]*models.Post, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []*models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PullLike removes the caller's like in one atomic update. It returns
// mongo.ErrNoDocuments when the post does not exist or the caller has no
// like on it.
func (r *PostRepository) PullLike(ctx context.Context, postID, userID bson.ObjectID) (*models.Post, error) {
	filter := bson.M{"_id": postID, "likes.userId": userID}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"userId": userID}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Post
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// PushLike appends the caller's like. The filter excludes posts already liked
// by the caller, so a like can never be duplicated even under concurrent
// toggles.
func (r *PostRepository) PushLike(ctx context.Context, postID, userID bson.ObjectID) (*models.Post, error) {
	filter := bson.M{"_id": postID, "likes.userId": bson.M{"$ne": userID}}
	update := bson.M{"$push": bson.M{"likes": models.Like{UserID: userID}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Post
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// PushComment inserts the comment at the head of the comment list.
func (r *PostRepository) PushComment(ctx context.Context, postID bson.ObjectID, comment models.Comment) (*models.Post, error) {
	update := bson.M{
		"$push": bson.M{
			"comments": bson.M{
				"$each":     bson.A{comment},
				"$position": 0,
			},
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Post
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": postID}, update, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// PullComment removes a comment by id. The filter requires the comment to be
// present, so a missing comment surfaces as mongo.ErrNoDocuments.
func (r *PostRepository) PullComment(ctx context.Context, postID bson.ObjectID, commentID string) (*models.Post, error) {
	filter := bson.M{"_id": postID, "comments.id": commentID}
	update := bson.M{"$pull": bson.M{"comments": bson.M{"id": commentID}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Post
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *PostRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}
	return nil
}
