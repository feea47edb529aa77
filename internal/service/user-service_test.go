package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"devconnect/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users map[bson.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[bson.ObjectID]*models.User)}
}

func (s *fakeUserStore) New(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *fakeUserStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return s.users[id], nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id bson.ObjectID) error {
	if _, ok := s.users[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.users, id)
	return nil
}

func registerRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Name:      "Alice",
		Email:     "a@x.com",
		Password:  "secret123",
		Password2: "secret123",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil, nil, 10)

	user, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.Password == "secret123" {
		t.Error("Expected password to be hashed, got plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")); err != nil {
		t.Errorf("Stored hash does not verify against the password: %v", err)
	}
	if !strings.HasPrefix(user.Avatar, "https://www.gravatar.com/avatar/") {
		t.Errorf("Expected gravatar avatar, got %q", user.Avatar)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil, nil, 10)

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("First register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), registerRequest())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}
	if len(store.users) != 1 {
		t.Errorf("Expected 1 stored user after conflict, got %d", len(store.users))
	}
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil, nil, 10)

	registered, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "a@x.com", "secret123")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("Expected user %s, got %s", registered.ID.Hex(), user.ID.Hex())
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "a@x.com", "wrong-password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@x.com", "secret123")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestGravatarURL(t *testing.T) {
	first := GravatarURL("A@X.com ")
	second := GravatarURL("a@x.com")
	if first != second {
		t.Errorf("Expected normalized emails to hash equally: %q vs %q", first, second)
	}
	if !strings.Contains(first, "s=200") || !strings.Contains(first, "r=pg") {
		t.Errorf("Unexpected gravatar options in %q", first)
	}
}
