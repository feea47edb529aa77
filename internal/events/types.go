package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	// UserRegistered is published when a new identity is created
	UserRegistered EventType = "user.registered"
	// ProfileUpdated is published when a profile is created or updated
	ProfileUpdated EventType = "profile.updated"
	// PostCreated is published when a new post is stored
	PostCreated EventType = "post.created"
)

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	Version   string    `json:"version"`
}

func newBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Version:   "1.0",
	}
}

type UserRegisteredEvent struct {
	BaseEvent
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func NewUserRegisteredEvent(userID, name, email string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: newBaseEvent(UserRegistered),
		UserID:    userID,
		Name:      name,
		Email:     email,
	}
}

func (e *UserRegisteredEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type ProfileUpdatedEvent struct {
	BaseEvent
	UserID string `json:"user_id"`
	Handle string `json:"handle"`
}

func NewProfileUpdatedEvent(userID, handle string) *ProfileUpdatedEvent {
	return &ProfileUpdatedEvent{
		BaseEvent: newBaseEvent(ProfileUpdated),
		UserID:    userID,
		Handle:    handle,
	}
}

func (e *ProfileUpdatedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type PostCreatedEvent struct {
	BaseEvent
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
}

func NewPostCreatedEvent(postID, userID string) *PostCreatedEvent {
	return &PostCreatedEvent{
		BaseEvent: newBaseEvent(PostCreated),
		PostID:    postID,
		UserID:    userID,
	}
}

func (e *PostCreatedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
