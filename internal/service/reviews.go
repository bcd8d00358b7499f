package service

import (
	"context"
	"fmt"

	"tutorhub-service/internal/models"
	"tutorhub-service/pkg/response"
	"tutorhub-service/pkg/sl"
)

type ReviewInput struct {
	TutoringID string
	Rating     int
	Comment    string
}

// CreateReview posts a review for the given student. A student who
// already reviewed the session gets a conflict; the check is advisory
// (the backend stores no such constraint) and a failed lookup does
// not block the create.
func (s *Service) CreateReview(ctx context.Context, studentID string, input ReviewInput) (*models.TutoringReview, error) {
	const op = "service.CreateReview"

	existing, err := s.backend.ListReviews(ctx, input.TutoringID)
	if err != nil {
		s.log.Warn("Failed to check existing reviews", sl.Err(err))
		existing = nil
	}
	for _, review := range existing {
		if review.StudentID == studentID {
			return nil, fmt.Errorf("%s: %w", op, response.ErrConflict)
		}
	}

	review, err := s.backend.CreateReview(ctx, map[string]any{
		"tutoringId": input.TutoringID,
		"studentId":  studentID,
		"rating":     input.Rating,
		"comment":    input.Comment,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return review, nil
}

func (s *Service) UpdateReview(ctx context.Context, studentID, reviewID string, input ReviewInput) (*models.TutoringReview, error) {
	const op = "service.UpdateReview"

	if err := s.checkReviewOwner(ctx, studentID, reviewID, input.TutoringID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	review, err := s.backend.UpdateReview(ctx, reviewID, map[string]any{
		"rating":  input.Rating,
		"comment": input.Comment,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return review, nil
}

func (s *Service) DeleteReview(ctx context.Context, studentID, reviewID, tutoringID string) error {
	const op = "service.DeleteReview"

	if err := s.checkReviewOwner(ctx, studentID, reviewID, tutoringID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.backend.DeleteReview(ctx, reviewID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// checkReviewOwner resolves the review through the session's review
// list (the backend exposes no single-review read) and verifies the
// author.
func (s *Service) checkReviewOwner(ctx context.Context, studentID, reviewID, tutoringID string) error {
	reviews, err := s.backend.ListReviews(ctx, tutoringID)
	if err != nil {
		return err
	}

	for _, review := range reviews {
		if review.ID != reviewID {
			continue
		}
		if review.StudentID != studentID {
			return response.ErrForbidden
		}
		return nil
	}

	return response.ErrNotFound
}
