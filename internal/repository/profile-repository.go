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

type ProfileRepository struct {
	collection *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		collection: db.Collection("profiles"),
	}
}

func (r *ProfileRepository) New(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.ID.IsZero() {
		profile.ID = bson.NewObjectID()
	}

	currentTime := int(time.Now().Unix())
	if profile.CreatedAt == 0 {
		profile.CreatedAt = currentTime
	}
	profile.UpdatedAt = currentTime

	if profile.Experience == nil {
		profile.Experience = []models.Experience{}
	}
	if profile.Education == nil {
		profile.Education = []models.Education{}
	}

	_, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}
	return profile, nil
}

// FindByUserID returns (nil, nil) when the user has no profile.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID bson.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"handle": handle}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateByUserID applies a partial $set and returns the updated document.
func (r *ProfileRepository) UpdateByUserID(ctx context.Context, userID bson.ObjectID, fields bson.M) (*models.Profile, error) {
	fields["updatedAt"] = int(time.Now().Unix())

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Profile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"userId": userID}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID bson.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindAllSummaries joins each profile with its owning user and projects the
// public listing fields.
func (r *ProfileRepository) FindAllSummaries(ctx context.Context) ([]*models.ProfileSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		{{Key: "$unwind", Value: "$owner"}},
		{{Key: "$project", Value: bson.M{
			"userId":   1,
			"handle":   1,
			"location": 1,
			"name":     "$owner.name",
			"avatar":   "$owner.avatar",
		}}},
		{{Key: "$sort", Value: bson.M{"_id": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var summaries []*models.ProfileSummary
	if err = cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return summaries, nil
}

// PushExperience inserts the entry at the head of the experience list as a
// single atomic update.
func (r *ProfileRepository) PushExperience(ctx context.Context, userID bson.ObjectID, exp models.Experience) (*models.Profile, error) {
	return r.pushEntry(ctx, userID, "experience", exp)
}

// PullExperience removes the entry with the given id. Removing an id that is
// not present is a no-op; the error is mongo.ErrNoDocuments only when the
// user has no profile at all.
func (r *ProfileRepository) PullExperience(ctx context.Context, userID bson.ObjectID, entryID string) (*models.Profile, error) {
	return r.pullEntry(ctx, userID, "experience", entryID)
}

func (r *ProfileRepository) PushEducation(ctx context.Context, userID bson.ObjectID, edu models.Education) (*models.Profile, error) {
	return r.pushEntry(ctx, userID, "education", edu)
}

func (r *ProfileRepository) PullEducation(ctx context.Context, userID bson.ObjectID, entryID string) (*models.Profile, error) {
	return r.pullEntry(ctx, userID, "education", entryID)
}

func (r *ProfileRepository) pushEntry(ctx context.Context, userID bson.ObjectID, field string, entry any) (*models.Profile, error) {
	update := bson.M{
		"$push": bson.M{
			field: bson.M{
				"$each":     bson.A{entry},
				"$position": 0,
			},
		},
		"$set": bson.M{"updatedAt": int(time.Now().Unix())},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Profile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ProfileRepository) pullEntry(ctx context.Context, userID bson.ObjectID, field, entryID string) (*models.Profile, error) {
	update := bson.M{
		"$pull": bson.M{field: bson.M{"id": entryID}},
		"$set":  bson.M{"updatedAt": int(time.Now().Unix())},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Profile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ProfileRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "handle", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}
	return nil
}
