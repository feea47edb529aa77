package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"devconnect/internal/events"
	"devconnect/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ProfileStore interface {
	New(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	FindByUserID(ctx context.Context, userID bson.ObjectID) (*models.Profile, error)
	FindByHandle(ctx context.Context, handle string) (*models.Profile, error)
	UpdateByUserID(ctx context.Context, userID bson.ObjectID, fields bson.M) (*models.Profile, error)
	DeleteByUserID(ctx context.Context, userID bson.ObjectID) error
	FindAllSummaries(ctx context.Context) ([]*models.ProfileSummary, error)
	PushExperience(ctx context.Context, userID bson.ObjectID, exp models.Experience) (*models.Profile, error)
	PullExperience(ctx context.Context, userID bson.ObjectID, entryID string) (*models.Profile, error)
	PushEducation(ctx context.Context, userID bson.ObjectID, edu models.Education) (*models.Profile, error)
	PullEducation(ctx context.Context, userID bson.ObjectID, entryID string) (*models.Profile, error)
}

type ProfileService struct {
	profiles       ProfileStore
	users          UserStore
	eventPublisher events.Publisher
}

func NewProfileService(profiles ProfileStore, users UserStore, eventPublisher events.Publisher) *ProfileService {
	return &ProfileService{
		profiles:       profiles,
		users:          users,
		eventPublisher: eventPublisher,
	}
}

// Upsert creates the caller's profile or partially updates an existing one.
// On create, a handle owned by any other profile aborts with a conflict
// before anything is written.
func (ps *ProfileService) Upsert(ctx context.Context, userID bson.ObjectID, req *models.ProfileRequest) (*models.Profile, error) {
	existing, err := ps.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error finding profile: %w", err)
	}

	var profile *models.Profile
	if existing != nil {
		profile, err = ps.profiles.UpdateByUserID(ctx, userID, profileFields(req))
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("profile %w", ErrNotFound)
			}
			return nil, fmt.Errorf("error updating profile: %w", err)
		}
	} else {
		taken, err := ps.profiles.FindByHandle(ctx, req.Handle)
		if err != nil {
			return nil, fmt.Errorf("error checking handle: %w", err)
		}
		if taken != nil {
			return nil, fmt.Errorf("profile with this handle %w", ErrConflict)
		}

		profile, err = ps.profiles.New(ctx, profileFromRequest(userID, req))
		if err != nil {
			return nil, fmt.Errorf("error creating profile: %w", err)
		}
	}

	if ps.eventPublisher != nil {
		if err := ps.eventPublisher.PublishProfileUpdated(ctx, userID.Hex(), profile.Handle); err != nil {
			log.Printf("Warning: failed to publish profile updated event: %v", err)
		}
	}

	return profile, nil
}

func (ps *ProfileService) GetOwn(ctx context.Context, userID bson.ObjectID) (*models.Profile, error) {
	profile, err := ps.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error finding profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %w", ErrNotFound)
	}
	return profile, nil
}

func (ps *ProfileService) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	profile, err := ps.profiles.FindByHandle(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("error finding profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %w", ErrNotFound)
	}
	return profile, nil
}

func (ps *ProfileService) GetByUserID(ctx context.Context, userID bson.ObjectID) (*models.Profile, error) {
	return ps.GetOwn(ctx, userID)
}

func (ps *ProfileService) ListSummaries(ctx context.Context) ([]*models.ProfileSummary, error) {
	return ps.profiles.FindAllSummaries(ctx)
}

func (ps *ProfileService) AddExperience(ctx context.Context, userID bson.ObjectID, req *models.ExperienceRequest) (*models.Profile, error) {
	exp := models.Experience{
		ID:      uuid.NewString(),
		Title:   req.Title,
		Company: req.Company,
		From:    req.From,
		To:      req.To,
	}
	if req.Location != nil {
		exp.Location = *req.Location
	}
	if req.Current != nil {
		exp.Current = *req.Current
	}
	if req.Description != nil {
		exp.Description = *req.Description
	}

	profile, err := ps.profiles.PushExperience(ctx, userID, exp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("profile %w", ErrNotFound)
		}
		return nil, fmt.Errorf("error adding experience: %w", err)
	}
	return profile, nil
}

// RemoveExperience deletes an entry by id. A missing id is an idempotent
// success; only a missing profile is an error.
func (ps *ProfileService) RemoveExperience(ctx context.Context, userID bson.ObjectID, entryID string) (*models.Profile, error) {
	profile, err := ps.profiles.PullExperience(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("profile %w", ErrNotFound)
		}
		return nil, fmt.Errorf("error removing experience: %w", err)
	}
	return profile, nil
}

func (ps *ProfileService) AddEducation(ctx context.Context, userID bson.ObjectID, req *models.EducationRequest) (*models.Profile, error) {
	edu := models.Education{
		ID:           uuid.NewString(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
	}
	if req.Current != nil {
		edu.Current = *req.Current
	}
	if req.Description != nil {
		edu.Description = *req.Description
	}

	profile, err := ps.profiles.PushEducation(ctx, userID, edu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("profile %w", ErrNotFound)
		}
		return nil, fmt.Errorf("error adding education: %w", err)
	}
	return profile, nil
}

func (ps *ProfileService) RemoveEducation(ctx context.Context, userID bson.ObjectID, entryID string) (*models.Profile, error) {
	profile, err := ps.profiles.PullEducation(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("profile %w", ErrNotFound)
		}
		return nil, fmt.Errorf("error removing education: %w", err)
	}
	return profile, nil
}

// DeleteAccount removes the caller's profile and identity together.
func (ps *ProfileService) DeleteAccount(ctx context.Context, userID bson.ObjectID) error {
	if err := ps.profiles.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("error deleting profile: %w", err)
	}

	if err := ps.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("user %w", ErrNotFound)
		}
		return fmt.Errorf("error deleting user: %w", err)
	}

	log.Printf("Deleted profile and user %s", userID.Hex())
	return nil
}

// profileFields flattens the validated payload into a partial $set document.
// Skills arrive as a comma-delimited string and are stored as trimmed tokens;
// the social links live under the social sub-document.
func profileFields(req *models.ProfileRequest) bson.M {
	fields := bson.M{
		"handle": req.Handle,
		"status": req.Status,
		"skills": splitSkills(req.Skills),
	}

	scalars := map[string]*string{
		"company":        req.Company,
		"website":        req.Website,
		"location":       req.Location,
		"bio":            req.Bio,
		"githubUsername": req.GithubUsername,
	}
	for key, value := range scalars {
		if value != nil {
			fields[key] = *value
		}
	}

	socials := map[string]*string{
		"social.youtube":   req.Youtube,
		"social.facebook":  req.Facebook,
		"social.linkedin":  req.Linkedin,
		"social.instagram": req.Instagram,
	}
	for key, value := range socials {
		if value != nil {
			fields[key] = *value
		}
	}

	return fields
}

func profileFromRequest(userID bson.ObjectID, req *models.ProfileRequest) *models.Profile {
	profile := &models.Profile{
		UserID: userID,
		Handle: req.Handle,
		Status: req.Status,
		Skills: splitSkills(req.Skills),
	}

	if req.Company != nil {
		profile.Company = *req.Company
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.GithubUsername != nil {
		profile.GithubUsername = *req.GithubUsername
	}
	if req.Youtube != nil {
		profile.Social.Youtube = *req.Youtube
	}
	if req.Facebook != nil {
		profile.Social.Facebook = *req.Facebook
	}
	if req.Linkedin != nil {
		profile.Social.Linkedin = *req.Linkedin
	}
	if req.Instagram != nil {
		profile.Social.Instagram = *req.Instagram
	}

	return profile
}

func splitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
