package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/snake_catalogue/internal/models"
	"github.com/Skotchmaster/snake_catalogue/internal/mykafka"
	"github.com/Skotchmaster/snake_catalogue/internal/repo"
)

type MessageRepo interface {
	GetMessage(ctx context.Context, id uint) (*models.Message, error)
	ListMessages(ctx context.Context, offset, limit int) ([]models.Message, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	DeleteMessage(ctx context.Context, id uint) (*models.Message, error)
}

type CreateMessageInput struct {
	Sender   string
	Body     string
	Title    string
	Datetime *time.Time
}

type MessageService struct {
	Repo   MessageRepo
	Events mykafka.Publisher
	Now    func() time.Time
}

func (s *MessageService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *MessageService) Create(ctx context.Context, in CreateMessageInput) (*models.Message, error) {
	if strings.TrimSpace(in.Sender) == "" || strings.TrimSpace(in.Body) == "" {
		return nil, fmt.Errorf("%w: sender and body are required", ErrValidation)
	}

	msg := &models.Message{
		Sender: in.Sender,
		Body:   in.Body,
		Title:  in.Title,
	}
	if in.Datetime != nil && !in.Datetime.IsZero() {
		msg.Datetime = in.Datetime.UTC()
	} else {
		msg.Datetime = s.now()
	}

	if err := s.Repo.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	s.publish(ctx, "message_created", msg)
	return msg, nil
}

func (s *MessageService) List(ctx context.Context, offset, limit int) ([]models.Message, error) {
	return s.Repo.ListMessages(ctx, offset, limit)
}

func (s *MessageService) Get(ctx context.Context, id uint) (*models.Message, error) {
	msg, err := s.Repo.GetMessage(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return msg, nil
}

func (s *MessageService) Delete(ctx context.Context, id uint) (*models.Message, error) {
	msg, err := s.Repo.DeleteMessage(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete message: %w", err)
	}

	s.publish(ctx, "message_deleted", msg)
	return msg, nil
}

func (s *MessageService) publish(ctx context.Context, eventType string, msg *models.Message) {
	mykafka.Publish(ctx, s.Events, mykafka.TopicMessageEvents, fmt.Sprint(msg.ID), map[string]any{
		"type":      eventType,
		"messageID": msg.ID,
		"sender":    msg.Sender,
	})
}
