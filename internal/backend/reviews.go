package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"tutorhub-service/internal/models"
)

func (c *Client) ListReviews(ctx context.Context, tutoringID string) ([]models.TutoringReview, error) {
	const op = "backend.ListReviews"

	decoded, err := c.getJSON(ctx, "/tutoring-sessions/"+url.PathEscape(tutoringID)+"/reviews", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records := asList(decoded)
	reviews := make([]models.TutoringReview, 0, len(records))
	for _, rec := range records {
		reviews = append(reviews, models.NewTutoringReview(rec))
	}

	return reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, payload map[string]any) (*models.TutoringReview, error) {
	const op = "backend.CreateReview"

	decoded, err := c.send(ctx, http.MethodPost, "/tutoring-sessions/reviews", payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, ok := asMap(decoded)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected response shape", op)
	}

	review := models.NewTutoringReview(rec)

	return &review, nil
}

func (c *Client) UpdateReview(ctx context.Context, id string, payload map[string]any) (*models.TutoringReview, error) {
	const op = "backend.UpdateReview"

	decoded, err := c.send(ctx, http.MethodPatch, "/tutoring-sessions/reviews/"+url.PathEscape(id), payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, ok := asMap(decoded)
	if !ok {
		return nil, nil
	}

	review := models.NewTutoringReview(rec)

	return &review, nil
}

func (c *Client) DeleteReview(ctx context.Context, id string) error {
	const op = "backend.DeleteReview"

	if _, err := c.send(ctx, http.MethodDelete, "/tutoring-sessions/reviews/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
