package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type suggestionService struct {
	repo   ports.SuggestionRepository
	logger logrus.FieldLogger
}

func NewSuggestionService(repo ports.SuggestionRepository, logger logrus.FieldLogger) ports.SuggestionService {
	return &suggestionService{
		repo:   repo,
		logger: logger,
	}
}

func (s *suggestionService) Submit(ctx context.Context, input ports.SuggestionInput) error {
	suggestion, err := domain.NewSuggestion(input.Name, input.Email, input.Message)
	if err != nil {
		return err
	}

	if err := s.repo.Save(ctx, suggestion); err != nil {
		s.logger.WithError(err).Error("Error submitting suggestion")
		return fmt.Errorf("%w: %w", domain.ErrSuggestionFailed, err)
	}

	s.logger.Info("Suggestion submitted")
	return nil
}
