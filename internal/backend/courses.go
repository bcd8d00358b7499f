package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"tutorhub-service/internal/models"
)

func (c *Client) ListCourses(ctx context.Context, semesterNumber *int) ([]models.Course, error) {
	const op = "backend.ListCourses"

	var query url.Values
	if semesterNumber != nil {
		query = url.Values{"semesterNumber": []string{strconv.Itoa(*semesterNumber)}}
	}

	decoded, err := c.getJSON(ctx, "/courses", query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records := asList(decoded)
	courses := make([]models.Course, 0, len(records))
	for _, rec := range records {
		courses = append(courses, models.NewCourse(rec))
	}

	return courses, nil
}

func (c *Client) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	const op = "backend.GetCourse"

	decoded, err := c.getJSON(ctx, "/courses/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, ok := asMap(decoded)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected response shape", op)
	}

	course := models.NewCourse(rec)

	return &course, nil
}

func (c *Client) GetProfile(ctx context.Context, id string) (*models.User, error) {
	const op = "backend.GetProfile"

	decoded, err := c.getJSON(ctx, "/profiles/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, ok := asMap(decoded)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected response shape", op)
	}

	user := models.NewUser(rec)

	return &user, nil
}
