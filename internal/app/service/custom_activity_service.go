package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/mindjournal/mindjournal-backend/internal/app/repository"
)

const maxActivityNameLength = 100

type CustomActivityService interface {
	List(ctx context.Context, email string) ([]string, error)
	// Add and Remove return the email's activities after the change.
	Add(ctx context.Context, email, activity string) ([]string, error)
	Remove(ctx context.Context, email, activity string) ([]string, error)
}

type customActivityService struct {
	repo repository.CustomActivityRepository
}

func NewCustomActivityService(repo repository.CustomActivityRepository) CustomActivityService {
	return &customActivityService{repo: repo}
}

func (s *customActivityService) List(ctx context.Context, email string) ([]string, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrInvalidActivity
	}

	activities, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(activities))
	for _, a := range activities {
		names = append(names, a.Name)
	}
	return names, nil
}

func (s *customActivityService) Add(ctx context.Context, email, activity string) ([]string, error) {
	name, err := normalizeActivity(email, activity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Add(ctx, email, name); err != nil {
		return nil, err
	}
	return s.List(ctx, email)
}

func (s *customActivityService) Remove(ctx context.Context, email, activity string) ([]string, error) {
	name, err := normalizeActivity(email, activity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Remove(ctx, email, name); err != nil {
		return nil, err
	}
	return s.List(ctx, email)
}

func normalizeActivity(email, activity string) (string, error) {
	name := strings.TrimSpace(activity)
	if strings.TrimSpace(email) == "" || name == "" {
		return "", ErrInvalidActivity
	}
	if utf8.RuneCountInString(name) > maxActivityNameLength {
		return "", ErrActivityTooLong
	}
	return name, nil
}
