package events

import (
	"context"
	"log"
)

type Publisher interface {
	PublishUserRegistered(ctx context.Context, userID, name, email string) error
	PublishProfileUpdated(ctx context.Context, userID, handle string) error
	PublishPostCreated(ctx context.Context, postID, userID string) error

	// Close closes the publisher and releases resources
	Close() error
}

type EventPublisher struct {
	rabbitMQ *RabbitMQClient
	enabled  bool
}

// NewEventPublisher with an empty URI returns a disabled publisher; every
// publish becomes a logged no-op.
func NewEventPublisher(rabbitURI string) (*EventPublisher, error) {
	if rabbitURI == "" {
		log.Println("Warning: RabbitMQ URI is empty, event publishing is disabled")
		return &EventPublisher{
			enabled: false,
		}, nil
	}

	client, err := NewRabbitMQClient(rabbitURI)
	if err != nil {
		return nil, err
	}

	if err := client.setupExchanges(); err != nil {
		client.Close()
		return nil, err
	}

	return &EventPublisher{
		rabbitMQ: client,
		enabled:  true,
	}, nil
}

func (p *EventPublisher) PublishUserRegistered(ctx context.Context, userID, name, email string) error {
	if !p.enabled {
		log.Println("Event publishing is disabled, skipping UserRegistered")
		return nil
	}

	event := NewUserRegisteredEvent(userID, name, email)

	eventData, err := event.ToJSON()
	if err != nil {
		return err
	}

	if err := p.rabbitMQ.PublishEvent("user-events", string(UserRegistered), eventData); err != nil {
		return err
	}

	log.Printf("Published UserRegistered event for user ID: %s", userID)
	return nil
}

func (p *EventPublisher) PublishProfileUpdated(ctx context.Context, userID, handle string) error {
	if !p.enabled {
		log.Println("Event publishing is disabled, skipping ProfileUpdated")
		return nil
	}

	event := NewProfileUpdatedEvent(userID, handle)

	eventData, err := event.ToJSON()
	if err != nil {
		return err
	}

	if err := p.rabbitMQ.PublishEvent("profile-events", string(ProfileUpdated), eventData); err != nil {
		return err
	}

	log.Printf("Published ProfileUpdated event for user ID: %s", userID)
	return nil
}

func (p *EventPublisher) PublishPostCreated(ctx context.Context, postID, userID string) error {
	if !p.enabled {
		log.Println("Event publishing is disabled, skipping PostCreated")
		return nil
	}

	event := NewPostCreatedEvent(postID, userID)

	eventData, err := event.ToJSON()
	if err != nil {
		return err
	}

	if err := p.rabbitMQ.PublishEvent("post-events", string(PostCreated), eventData); err != nil {
		return err
	}

	log.Printf("Published PostCreated event for post ID: %s", postID)
	return nil
}

func (p *EventPublisher) Close() error {
	if !p.enabled || p.rabbitMQ == nil {
		return nil
	}

	return p.rabbitMQ.Close()
}
