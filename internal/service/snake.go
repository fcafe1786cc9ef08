package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Skotchmaster/snake_catalogue/internal/models"
	"github.com/Skotchmaster/snake_catalogue/internal/mykafka"
	"github.com/Skotchmaster/snake_catalogue/internal/repo"
	"github.com/Skotchmaster/snake_catalogue/internal/storage"
	"github.com/Skotchmaster/snake_catalogue/pkg/logging"
)

type SnakeRepo interface {
	GetSnake(ctx context.Context, id uint) (*models.Snake, error)
	ListSnakes(ctx context.Context, offset, limit int) ([]models.Snake, error)
	CreateSnake(ctx context.Context, snake *models.Snake) error
	SaveSnake(ctx context.Context, snake *models.Snake) error
	DeleteSnake(ctx context.Context, id uint) (*models.Snake, error)
}

type SnakeIndexer interface {
	Enabled() bool
	IndexSnake(ctx context.Context, snake *models.Snake) error
	DeleteSnake(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Snake, error)
}

type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
	Size        int64
}

type CreateSnakeInput struct {
	Species     string
	Description string
	Sex         string
	Image       Image
}

type SnakePatch struct {
	Species     *string
	Description *string
	Sex         *string
}

type SnakeService struct {
	Repo   SnakeRepo
	Images storage.ImageStore
	Index  SnakeIndexer
	Events mykafka.Publisher
}

func (s *SnakeService) List(ctx context.Context, offset, limit int) ([]models.Snake, error) {
	return s.Repo.ListSnakes(ctx, offset, limit)
}

func (s *SnakeService) Get(ctx context.Context, id uint) (*models.Snake, error) {
	snake, err := s.Repo.GetSnake(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return snake, nil
}

// UploadImage stores img on the image host and returns its public URL.
func (s *SnakeService) UploadImage(ctx context.Context, img Image) (key, url string, err error) {
	l := logging.FromContext(ctx).With("svc", "snake.upload_image")

	key, url, err = s.Images.Upload(ctx, img.Filename, img.ContentType, img.Body, img.Size)
	if err != nil {
		l.Error("upload failed", "status", 500, "filename", img.Filename, "error", err)
		return "", "", fmt.Errorf("%w: %w", ErrImageUpload, err)
	}
	return key, url, nil
}

// Create uploads the picture first and stores the row only once the image
// host has accepted it.
func (s *SnakeService) Create(ctx context.Context, in CreateSnakeInput) (*models.Snake, error) {
	l := logging.FromContext(ctx).With("svc", "snake.create")

	in.Species = strings.TrimSpace(in.Species)
	if in.Species == "" || in.Image.Body == nil {
		return nil, fmt.Errorf("%w: species and image are required", ErrValidation)
	}

	key, url, err := s.UploadImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	snake := &models.Snake{
		Species:     in.Species,
		Description: in.Description,
		Sex:         in.Sex,
		ImageURL:    url,
		ImageKey:    key,
	}
	if err := s.Repo.CreateSnake(ctx, snake); err != nil {
		l.Error("create failed", "status", 500, "error", err)
		if derr := s.Images.Delete(ctx, key); derr != nil {
			l.Error("orphaned image", "key", key, "error", derr)
		}
		return nil, fmt.Errorf("create snake: %w", err)
	}

	s.index(ctx, snake)
	s.publish(ctx, "snake_created", snake)
	return snake, nil
}

func (s *SnakeService) Patch(ctx context.Context, id uint, p SnakePatch) (*models.Snake, error) {
	snake, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Species != nil {
		species := strings.TrimSpace(*p.Species)
		if species == "" {
			return nil, fmt.Errorf("%w: species cannot be empty", ErrValidation)
		}
		snake.Species = species
	}
	if p.Description != nil {
		snake.Description = *p.Description
	}
	if p.Sex != nil {
		snake.Sex = *p.Sex
	}

	if err := s.Repo.SaveSnake(ctx, snake); err != nil {
		return nil, fmt.Errorf("save snake: %w", err)
	}

	s.index(ctx, snake)
	s.publish(ctx, "snake_updated", snake)
	return snake, nil
}

// Delete removes the picture from the image host and then the row. When the
// image cannot be removed the row is kept.
func (s *SnakeService) Delete(ctx context.Context, id uint) (*models.Snake, error) {
	l := logging.FromContext(ctx).With("svc", "snake.delete")

	snake, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if snake.ImageKey != "" {
		if err := s.Images.Delete(ctx, snake.ImageKey); err != nil {
			l.Error("delete failed", "status", 500, "reason", "cannot delete image", "key", snake.ImageKey, "error", err)
			return nil, fmt.Errorf("%w: %w", ErrImageDelete, err)
		}
	}

	deleted, err := s.Repo.DeleteSnake(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete snake: %w", err)
	}

	if s.Index != nil {
		if err := s.Index.DeleteSnake(ctx, id); err != nil {
			l.Error("unindex failed", "snakeID", id, "error", err)
		}
	}
	s.publish(ctx, "snake_deleted", deleted)
	return deleted, nil
}

func (s *SnakeService) Search(ctx context.Context, query string, offset, limit int) (int64, []models.Snake, error) {
	if s.Index == nil || !s.Index.Enabled() {
		return 0, nil, ErrSearchDisabled
	}
	return s.Index.Search(ctx, query, offset, limit)
}

func (s *SnakeService) index(ctx context.Context, snake *models.Snake) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexSnake(ctx, snake); err != nil {
		logging.FromContext(ctx).Error("index failed", "snakeID", snake.ID, "error", err)
	}
}

func (s *SnakeService) publish(ctx context.Context, eventType string, snake *models.Snake) {
	mykafka.Publish(ctx, s.Events, mykafka.TopicSnakeEvents, fmt.Sprint(snake.ID), map[string]any{
		"type":    eventType,
		"snakeID": snake.ID,
		"species": snake.Species,
	})
}
