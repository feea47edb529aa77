package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"devconnect/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type fakeProfileStore struct {
	profiles map[bson.ObjectID]*models.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[bson.ObjectID]*models.Profile)}
}

func (s *fakeProfileStore) New(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.ID.IsZero() {
		profile.ID = bson.NewObjectID()
	}
	if profile.Experience == nil {
		profile.Experience = []models.Experience{}
	}
	if profile.Education == nil {
		profile.Education = []models.Education{}
	}
	s.profiles[profile.UserID] = profile
	return profile, nil
}

func (s *fakeProfileStore) FindByUserID(ctx context.Context, userID bson.ObjectID) (*models.Profile, error) {
	return s.profiles[userID], nil
}

func (s *fakeProfileStore) FindByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	for _, profile := range s.profiles {
		if profile.Handle == handle {
			return profile, nil
		}
	}
	return nil, nil
}

func (s *fakeProfileStore) UpdateByUserID(ctx context.Context, userID bson.ObjectID, fields bson.M) (*models.Profile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for key, value := range fields {
		switch key {
		case "handle":
			profile.Handle = value.(string)
		case "status":
			profile.Status = value.(string)
		case "skills":
			profile.Skills = value.([]string)
		case "company":
			profile.Company = value.(string)
		case "website":
			profile.Website = value.(string)
		case "location":
			profile.Location = value.(string)
		case "bio":
			profile.Bio = value.(string)
		case "githubUsername":
			profile.GithubUsername = value.(string)
		case "social.youtube":
			profile.Social.Youtube = value.(string)
		case "social.facebook":
			profile.Social.Facebook = value.(string)
		case "social.linkedin":
			profile.Social.Linkedin = value.(string)
		case "social.instagram":
			profile.Social.Instagram = value.(string)
		}
	}
	return profile, nil
}

func (s *fakeProfileStore) DeleteByUserID(ctx context.Context, userID bson.ObjectID) error {
	if _, ok := s.profiles[userID]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.profiles, userID)
	return nil
}

func (s *fakeProfileStore) FindAllSummaries(ctx context.Context) ([]*models.ProfileSummary, error) {
	summaries := make([]*models.ProfileSummary, 0, len(s.profiles))
	for _, profile := range s.profiles {
		summaries = append(summaries, &models.ProfileSummary{
			ID:       profile.ID,
			UserID:   profile.UserID,
			Handle:   profile.Handle,
			Location: profile.Location,
		})
	}
	return summaries, nil
}

func (s *fakeProfileStore) PushExperience(ctx context.Context, userID bson.ObjectID, exp models.Experience) (*models.Profile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	profile.Experience = append([]models.Experience{exp}, profile.Experience...)
	return profile, nil
}

func (s *fakeProfileStore) PullExperience(ctx context.Context, userID bson.ObjectID, entryID string) (*models.Profile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	kept := profile.Experience[:0]
	for _, exp := range profile.Experience {
		if exp.ID != entryID {
			kept = append(kept, exp)
		}
	}
	profile.Experience = kept
	return profile, nil
}

func (s *fakeProfileStore) PushEducation(ctx context.Context, userID bson.ObjectID, edu models.Education) (*models.Profile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	profile.Education = append([]models.Education{edu}, profile.Education...)
	return profile, nil
}

func (s *fakeProfileStore) PullEducation(ctx context.Context, userID bson.ObjectID, entryID string) (*models.Profile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	kept := profile.Education[:0]
	for _, edu := range profile.Education {
		if edu.ID != entryID {
			kept = append(kept, edu)
		}
	}
	profile.Education = kept
	return profile, nil
}

func profileRequest(handle string) *models.ProfileRequest {
	return &models.ProfileRequest{
		Handle: handle,
		Status: "Developer",
		Skills: "go, rust",
	}
}

func TestUpsertCreatesProfile(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(store, newFakeUserStore(), nil)
	userID := bson.NewObjectID()

	profile, err := svc.Upsert(context.Background(), userID, profileRequest("alice"))
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if profile.UserID != userID {
		t.Errorf("Expected owner %s, got %s", userID.Hex(), profile.UserID.Hex())
	}
	if !reflect.DeepEqual(profile.Skills, []string{"go", "rust"}) {
		t.Errorf("Expected skills [go rust], got %v", profile.Skills)
	}
}

func TestUpsertHandleConflictAbortsCreate(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(store, newFakeUserStore(), nil)

	if _, err := svc.Upsert(context.Background(), bson.NewObjectID(), profileRequest("alice")); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}

	otherUser := bson.NewObjectID()
	_, err := svc.Upsert(context.Background(), otherUser, profileRequest("alice"))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}
	if len(store.profiles) != 1 {
		t.Errorf("Expected conflict to create no profile, have %d", len(store.profiles))
	}
	if _, ok := store.profiles[otherUser]; ok {
		t.Error("Expected no profile for the conflicting user")
	}
}

func TestUpsertPartialUpdateKeepsUnsetFields(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(store, newFakeUserStore(), nil)
	userID := bson.NewObjectID()

	company := "Initech"
	youtube := "https://youtube.com/alice"
	first := profileRequest("alice")
	first.Company = &company
	first.Youtube = &youtube

	if _, err := svc.Upsert(context.Background(), userID, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Second payload omits company and youtube entirely.
	second := profileRequest("alice")
	second.Skills = "go,rust,zig"

	profile, err := svc.Upsert(context.Background(), userID, second)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if profile.Company != "Initech" {
		t.Errorf("Expected company to survive partial update, got %q", profile.Company)
	}
	if profile.Social.Youtube != youtube {
		t.Errorf("Expected youtube link to survive partial update, got %q", profile.Social.Youtube)
	}
	if !reflect.DeepEqual(profile.Skills, []string{"go", "rust", "zig"}) {
		t.Errorf("Expected updated skills, got %v", profile.Skills)
	}
}

func TestExperienceRoundTrip(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(store, newFakeUserStore(), nil)
	userID := bson.NewObjectID()

	if _, err := svc.Upsert(context.Background(), userID, profileRequest("alice")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	profile, err := svc.AddExperience(context.Background(), userID, &models.ExperienceRequest{
		Title:   "Engineer",
		Company: "Initech",
		From:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("AddExperience failed: %v", err)
	}
	if len(profile.Experience) != 1 {
		t.Fatalf("Expected 1 experience entry, got %d", len(profile.Experience))
	}
	if profile.Experience[0].ID == "" {
		t.Fatal("Expected entry to be assigned an id")
	}

	profile, err = svc.RemoveExperience(context.Background(), userID, profile.Experience[0].ID)
	if err != nil {
		t.Fatalf("RemoveExperience failed: %v", err)
	}
	if len(profile.Experience) != 0 {
		t.Errorf("Expected experience list back to empty, got %d entries", len(profile.Experience))
	}
}

func TestExperienceHeadInsertion(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(store, newFakeUserStore(), nil)
	userID := bson.NewObjectID()

	if _, err := svc.Upsert(context.Background(), userID, profileRequest("alice")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.AddExperience(context.Background(), userID, &models.ExperienceRequest{Title: "First", Company: "A", From: from}); err != nil {
		t.Fatalf("AddExperience failed: %v", err)
	}
	profile, err := svc.AddExperience(context.Background(), userID, &models.ExperienceRequest{Title: "Second", Company: "B", From: from})
	if err != nil {
		t.Fatalf("AddExperience failed: %v", err)
	}

	if profile.Experience[0].Title != "Second" {
		t.Errorf("Expected newest entry first, got %q", profile.Experience[0].Title)
	}
}

func TestRemoveExperienceIsIdempotent(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(store, newFakeUserStore(), nil)
	userID := bson.NewObjectID()

	if _, err := svc.Upsert(context.Background(), userID, profileRequest("alice")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if _, err := svc.RemoveExperience(context.Background(), userID, "no-such-id"); err != nil {
		t.Errorf("Expected deleting a missing entry to succeed, got %v", err)
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	profileStore := newFakeProfileStore()
	userStore := newFakeUserStore()
	svc := NewProfileService(profileStore, userStore, nil)

	user, err := userStore.New(context.Background(), &models.User{Name: "Alice", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("Seeding user failed: %v", err)
	}
	if _, err := svc.Upsert(context.Background(), user.ID, profileRequest("alice")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), user.ID); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	if len(profileStore.profiles) != 0 {
		t.Error("Expected profile to be deleted")
	}
	if len(userStore.users) != 0 {
		t.Error("Expected user to be deleted")
	}
}

func TestProfileFieldsTransform(t *testing.T) {
	company := "Initech"
	youtube := "https://youtube.com/alice"
	req := &models.ProfileRequest{
		Handle:  "alice",
		Status:  "Developer",
		Skills:  " go , rust ,,zig",
		Company: &company,
		Youtube: &youtube,
	}

	fields := profileFields(req)

	if !reflect.DeepEqual(fields["skills"], []string{"go", "rust", "zig"}) {
		t.Errorf("Expected trimmed skill tokens, got %v", fields["skills"])
	}
	if fields["social.youtube"] != youtube {
		t.Errorf("Expected youtube under social, got %v", fields["social.youtube"])
	}
	if _, ok := fields["youtube"]; ok {
		t.Error("Expected no top-level youtube field")
	}
	if _, ok := fields["bio"]; ok {
		t.Error("Expected absent fields to stay out of the update")
	}
}
