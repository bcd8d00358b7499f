package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"tutorhub-service/internal/models"
)

func (c *Client) ListTutorings(ctx context.Context) ([]models.TutoringSession, error) {
	const op = "backend.ListTutorings"

	decoded, err := c.getJSON(ctx, "/tutoring-sessions", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records := asList(decoded)
	sessions := make([]models.TutoringSession, 0, len(records))
	for _, rec := range records {
		sessions = append(sessions, models.NewTutoringSession(rec))
	}

	return sessions, nil
}

func (c *Client) GetTutoring(ctx context.Context, id string) (*models.TutoringSession, error) {
	const op = "backend.GetTutoring"

	decoded, err := c.getJSON(ctx, "/tutoring-sessions/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, ok := asMap(decoded)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected response shape", op)
	}

	session := models.NewTutoringSession(rec)

	return &session, nil
}

func (c *Client) CreateTutoring(ctx context.Context, payload map[string]any) (*models.TutoringSession, error) {
	const op = "backend.CreateTutoring"

	decoded, err := c.send(ctx, http.MethodPost, "/tutoring-sessions", payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, ok := asMap(decoded)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected response shape", op)
	}

	session := models.NewTutoringSession(rec)

	return &session, nil
}

func (c *Client) UpdateTutoring(ctx context.Context, id string, payload map[string]any) (*models.TutoringSession, error) {
	const op = "backend.UpdateTutoring"

	decoded, err := c.send(ctx, http.MethodPatch, "/tutoring-sessions/"+url.PathEscape(id), payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, ok := asMap(decoded)
	if !ok {
		// Some backend versions reply with an empty body on PATCH.
		return nil, nil
	}

	session := models.NewTutoringSession(rec)

	return &session, nil
}

func (c *Client) DeleteTutoring(ctx context.Context, id string) error {
	const op = "backend.DeleteTutoring"

	if _, err := c.send(ctx, http.MethodDelete, "/tutoring-sessions/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListAvailableTimes returns the raw camelized availability records.
// The slot model does its own tolerant field resolution, so records
// are not coerced into typed slots here.
func (c *Client) ListAvailableTimes(ctx context.Context, tutoringID string) ([]map[string]any, error) {
	const op = "backend.ListAvailableTimes"

	decoded, err := c.getJSON(ctx, "/tutoring-sessions/"+url.PathEscape(tutoringID)+"/available-times", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return asList(decoded), nil
}

func (c *Client) DeleteAvailableTime(ctx context.Context, id string) error {
	const op = "backend.DeleteAvailableTime"

	if _, err := c.send(ctx, http.MethodDelete, "/tutoring-sessions/available-times/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *Client) ListMaterials(ctx context.Context, tutoringID string) ([]models.TutoringMaterial, error) {
	const op = "backend.ListMaterials"

	decoded, err := c.getJSON(ctx, "/tutoring-sessions/"+url.PathEscape(tutoringID)+"/materials", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records := asList(decoded)
	materials := make([]models.TutoringMaterial, 0, len(records))
	for _, rec := range records {
		materials = append(materials, models.NewTutoringMaterial(rec))
	}

	return materials, nil
}

func (c *Client) DeleteMaterial(ctx context.Context, id string) error {
	const op = "backend.DeleteMaterial"

	if _, err := c.send(ctx, http.MethodDelete, "/tutoring-sessions/materials/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
