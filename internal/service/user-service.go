package service

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"devconnect/internal/events"
	"devconnect/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	New(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

// LockStore backs the login lockout. A nil LockStore disables locking.
type LockStore interface {
	SaveInt(ctx context.Context, key string, value int64, ttl time.Duration) error
	GetInt(ctx context.Context, key string) int64
}

type UserService struct {
	users          UserStore
	locks          LockStore
	eventPublisher events.Publisher
	lockWindow     time.Duration

	mu           sync.Mutex
	failedLogins map[string]*failedLoginAttempt
}

type failedLoginAttempt struct {
	failedAt     int64
	failedNumber int
}

func NewUserService(users UserStore, locks LockStore, eventPublisher events.Publisher, lockMinutes int64) *UserService {
	return &UserService{
		users:          users,
		locks:          locks,
		eventPublisher: eventPublisher,
		lockWindow:     time.Duration(lockMinutes) * time.Minute,
		failedLogins:   make(map[string]*failedLoginAttempt),
	}
}

// Register creates a new identity. The email must be unused, the password is
// hashed before anything is persisted, and a hashing failure creates no
// record.
func (us *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	existing, err := us.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user with this email %w", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Avatar:   GravatarURL(req.Email),
	}

	created, err := us.users.New(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	log.Printf("New user registered: %s", created.Email)

	if us.eventPublisher != nil {
		if err := us.eventPublisher.PublishUserRegistered(ctx, created.ID.Hex(), created.Name, created.Email); err != nil {
			log.Printf("Warning: failed to publish user registered event: %v", err)
		}
	}

	return created, nil
}

// Login verifies credentials. Rapid-fire or repeated failures lock the
// account for the configured window.
func (us *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if us.locks != nil && us.locks.GetInt(ctx, lockKey(email)) != 0 {
		return nil, ErrUserLocked
	}

	user, err := us.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		us.recordFailedLogin(ctx, email)
		return nil, ErrInvalidCredentials
	}

	us.mu.Lock()
	delete(us.failedLogins, email)
	us.mu.Unlock()

	return user, nil
}

func (us *UserService) recordFailedLogin(ctx context.Context, email string) {
	loginTime := time.Now().UnixMilli()

	us.mu.Lock()
	attempt := us.failedLogins[email]
	if attempt == nil {
		attempt = &failedLoginAttempt{}
		us.failedLogins[email] = attempt
	}
	lastFailedAt := attempt.failedAt
	attempt.failedAt = loginTime
	attempt.failedNumber++
	failedNumber := attempt.failedNumber
	us.mu.Unlock()

	if us.locks == nil {
		return
	}

	if lastFailedAt != 0 && loginTime-lastFailedAt < 1000 {
		log.Printf("WARN: suspicious login activity for %s, instant lock activated", email)
		us.lock(ctx, email, loginTime)
	}
	if failedNumber > 10 {
		log.Printf("Login for %s failed %d times, locked for %s", email, failedNumber, us.lockWindow)
		us.lock(ctx, email, loginTime)
	}
}

func (us *UserService) lock(ctx context.Context, email string, loginTime int64) {
	if err := us.locks.SaveInt(ctx, lockKey(email), loginTime, us.lockWindow); err != nil {
		log.Printf("Warning: failed to persist login lock for %s: %v", email, err)
	}
}

func lockKey(email string) string {
	return "devconnect-lock-user-" + email
}

// GravatarURL derives the avatar URL the way the rest of the world does:
// md5 of the normalized email, size 200, pg-rated, mystery-man fallback.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", md5.Sum([]byte(normalized)))
}
