package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"tutorhub-service/internal/availability"
	"tutorhub-service/internal/models"
	"tutorhub-service/pkg/response"
	"tutorhub-service/pkg/sl"
)

type TutoringInput struct {
	Title             string
	Description       string
	Price             float64
	WhatTheyWillLearn []string
	CourseID          string
	// Availability maps day names to selected hour labels.
	Availability map[string][]string
}

type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// CreateTutoring creates the listing for the given tutor, then
// uploads the image if one was provided. An upload failure is not
// fatal: the listing keeps the placeholder image and a warning is
// logged.
func (s *Service) CreateTutoring(ctx context.Context, tutorID string, input TutoringInput, image *ImageUpload) (*models.TutoringSession, error) {
	const op = "service.CreateTutoring"

	grid := availability.GridFromSelection(input.Availability, s.log)

	payload := map[string]any{
		"title":             input.Title,
		"description":       input.Description,
		"price":             input.Price,
		"whatTheyWillLearn": input.WhatTheyWillLearn,
		"imageUrl":          s.placeholderImage,
		"tutorId":           tutorID,
		"availableTimes":    slotsToWire(grid.Flatten("")),
	}
	if input.CourseID != "" {
		payload["courseId"] = input.CourseID
	}

	created, err := s.backend.CreateTutoring(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if image != nil {
		created = s.attachImage(ctx, created, image)
	}

	s.cache.Delete(ctx, cacheKeyTutorings)

	return created, nil
}

// UpdateTutoring fully replaces description, price, learning points,
// image and availability. Existing availability slots are deleted
// one by one, best-effort; the replacement set rides on the PATCH.
func (s *Service) UpdateTutoring(ctx context.Context, userID, id string, input TutoringInput, image *ImageUpload) (*models.TutoringSession, error) {
	const op = "service.UpdateTutoring"

	existing, err := s.backend.GetTutoring(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.IsOwner(userID, *existing) {
		return nil, fmt.Errorf("%s: %w", op, response.ErrForbidden)
	}

	s.deleteAvailableTimes(ctx, id)

	imageURL := existing.ImageURL
	if image != nil {
		uploaded, err := s.backend.UploadTutoringImage(ctx, id, image.FileName, image.ContentType, image.Size, image.Data)
		if err != nil {
			s.log.Warn("Image upload failed, keeping previous image", slog.String("tutoring_id", id), sl.Err(err))
		} else {
			imageURL = uploaded
		}
	}

	grid := availability.GridFromSelection(input.Availability, s.log)

	payload := map[string]any{
		"description":       input.Description,
		"price":             input.Price,
		"whatTheyWillLearn": input.WhatTheyWillLearn,
		"imageUrl":          imageURL,
		"availableTimes":    slotsToWire(grid.Flatten(id)),
	}

	updated, err := s.backend.UpdateTutoring(ctx, id, payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Delete(ctx, cacheKeyTutorings)

	if updated == nil {
		return s.backend.GetTutoring(ctx, id)
	}

	return updated, nil
}

// UploadImage replaces the image of an existing listing and patches
// the stored URL.
func (s *Service) UploadImage(ctx context.Context, userID, tutoringID string, image *ImageUpload) (string, error) {
	const op = "service.UploadImage"

	tutoring, err := s.backend.GetTutoring(ctx, tutoringID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !s.IsOwner(userID, *tutoring) {
		return "", fmt.Errorf("%s: %w", op, response.ErrForbidden)
	}

	uploaded, err := s.backend.UploadTutoringImage(ctx, tutoringID, image.FileName, image.ContentType, image.Size, image.Data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.backend.UpdateTutoring(ctx, tutoringID, map[string]any{"imageUrl": uploaded}); err != nil {
		s.log.Warn("Failed to patch image url after upload", slog.String("tutoring_id", tutoringID), sl.Err(err))
	}

	s.cache.Delete(ctx, cacheKeyTutorings)

	return uploaded, nil
}

func (s *Service) attachImage(ctx context.Context, created *models.TutoringSession, image *ImageUpload) *models.TutoringSession {
	uploaded, err := s.backend.UploadTutoringImage(ctx, created.ID, image.FileName, image.ContentType, image.Size, image.Data)
	if err != nil {
		s.log.Warn("Image upload failed, keeping placeholder", slog.String("tutoring_id", created.ID), sl.Err(err))
		return created
	}

	updated, err := s.backend.UpdateTutoring(ctx, created.ID, map[string]any{"imageUrl": uploaded})
	if err != nil {
		s.log.Warn("Failed to patch image url after upload", slog.String("tutoring_id", created.ID), sl.Err(err))
		return created
	}
	if updated == nil {
		created.ImageURL = uploaded
		return created
	}

	return updated
}

// deleteAvailableTimes removes the current slot records one by one.
// Failures are logged and skipped; the PATCH that follows carries the
// replacement set either way.
func (s *Service) deleteAvailableTimes(ctx context.Context, tutoringID string) {
	records, err := s.backend.ListAvailableTimes(ctx, tutoringID)
	if err != nil {
		s.log.Warn("Failed to list available times for replacement", slog.String("tutoring_id", tutoringID), sl.Err(err))
		return
	}

	for _, rec := range records {
		slot := models.NewAvailableTimeSlot(rec)
		if slot.ID == "" {
			continue
		}
		if err := s.backend.DeleteAvailableTime(ctx, slot.ID); err != nil {
			s.log.Warn("Failed to delete available time", slog.String("slot_id", slot.ID), sl.Err(err))
		}
	}
}

func slotsToWire(slots []models.AvailableTimeSlot) []any {
	wired := make([]any, 0, len(slots))
	for _, slot := range slots {
		rec := map[string]any{
			"dayOfWeek": slot.DayOfWeek,
			"startTime": slot.StartTime,
			"endTime":   slot.EndTime,
		}
		if slot.TutoringID != "" {
			rec["tutoringId"] = slot.TutoringID
		}
		wired = append(wired, rec)
	}

	return wired
}
