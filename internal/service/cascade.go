package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"tutorhub-service/internal/models"
	"tutorhub-service/pkg/response"
	"tutorhub-service/pkg/sl"
)

type CascadeStep struct {
	Resource string `json:"resource"`
	Deleted  int    `json:"deleted"`
	Failed   int    `json:"failed"`
	Error    string `json:"error,omitempty"`
}

type CascadeResult struct {
	Steps         []CascadeStep `json:"steps"`
	ParentDeleted bool          `json:"parent_deleted"`
}

// DeleteTutoring removes a listing and its dependents: availability
// slots, reviews, materials, image, then the parent record. Every
// step runs inside its own error boundary; a failure is recorded in
// the summary and never blocks the remaining steps or the final
// parent delete.
func (s *Service) DeleteTutoring(ctx context.Context, userID, id string) (*CascadeResult, error) {
	const op = "service.DeleteTutoring"

	tutoring, err := s.backend.GetTutoring(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.IsOwner(userID, *tutoring) {
		return nil, fmt.Errorf("%s: %w", op, response.ErrForbidden)
	}

	result := &CascadeResult{}

	result.Steps = append(result.Steps, s.deleteSlotsStep(ctx, id))
	result.Steps = append(result.Steps, s.deleteReviewsStep(ctx, id))
	result.Steps = append(result.Steps, s.deleteMaterialsStep(ctx, id))
	result.Steps = append(result.Steps, s.deleteImageStep(ctx, id, tutoring.ImageURL))

	if err := s.backend.DeleteTutoring(ctx, id); err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}
	result.ParentDeleted = true

	s.cache.Delete(ctx, cacheKeyTutorings)

	return result, nil
}

func (s *Service) deleteSlotsStep(ctx context.Context, tutoringID string) CascadeStep {
	step := CascadeStep{Resource: "available_times"}

	records, err := s.backend.ListAvailableTimes(ctx, tutoringID)
	if err != nil {
		s.log.Warn("Cascade: failed to list available times", sl.Err(err))
		step.Error = err.Error()
		return step
	}

	for _, rec := range records {
		slot := models.NewAvailableTimeSlot(rec)
		if slot.ID == "" {
			continue
		}
		if err := s.backend.DeleteAvailableTime(ctx, slot.ID); err != nil {
			s.log.Warn("Cascade: failed to delete available time", slog.String("slot_id", slot.ID), sl.Err(err))
			step.Failed++
			if step.Error == "" {
				step.Error = err.Error()
			}
			continue
		}
		step.Deleted++
	}

	return step
}

func (s *Service) deleteReviewsStep(ctx context.Context, tutoringID string) CascadeStep {
	step := CascadeStep{Resource: "reviews"}

	reviews, err := s.backend.ListReviews(ctx, tutoringID)
	if err != nil {
		s.log.Warn("Cascade: failed to list reviews", sl.Err(err))
		step.Error = err.Error()
		return step
	}

	for _, review := range reviews {
		if review.ID == "" {
			continue
		}
		if err := s.backend.DeleteReview(ctx, review.ID); err != nil {
			s.log.Warn("Cascade: failed to delete review", slog.String("review_id", review.ID), sl.Err(err))
			step.Failed++
			if step.Error == "" {
				step.Error = err.Error()
			}
			continue
		}
		step.Deleted++
	}

	return step
}

func (s *Service) deleteMaterialsStep(ctx context.Context, tutoringID string) CascadeStep {
	step := CascadeStep{Resource: "materials"}

	materials, err := s.backend.ListMaterials(ctx, tutoringID)
	if err != nil {
		s.log.Warn("Cascade: failed to list materials", sl.Err(err))
		step.Error = err.Error()
		return step
	}

	for _, material := range materials {
		if material.ID == "" {
			continue
		}
		if err := s.backend.DeleteMaterial(ctx, material.ID); err != nil {
			s.log.Warn("Cascade: failed to delete material", slog.String("material_id", material.ID), sl.Err(err))
			step.Failed++
			if step.Error == "" {
				step.Error = err.Error()
			}
			continue
		}
		step.Deleted++
	}

	return step
}

func (s *Service) deleteImageStep(ctx context.Context, tutoringID, imageURL string) CascadeStep {
	step := CascadeStep{Resource: "image"}

	fileName, ok := imageFileName(imageURL)
	if !ok || imageURL == s.placeholderImage {
		return step
	}

	if err := s.backend.DeleteTutoringImage(ctx, tutoringID, fileName); err != nil {
		s.log.Warn("Cascade: failed to delete image", slog.String("file_name", fileName), sl.Err(err))
		step.Failed++
		step.Error = err.Error()
		return step
	}
	step.Deleted++

	return step
}

// imageFileName extracts the stored file name from a tutoring-image
// URL. Placeholder and foreign URLs yield no name.
func imageFileName(imageURL string) (string, bool) {
	if imageURL == "" {
		return "", false
	}

	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", false
	}

	if !strings.Contains(parsed.Path, "/storage/tutoring-images/") {
		return "", false
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	name := segments[len(segments)-1]
	if name == "" {
		return "", false
	}

	return name, true
}
