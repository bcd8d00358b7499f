package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorhub-service/internal/models"
	"tutorhub-service/pkg/response"
)

func ownedTutoring(imageURL string) func(context.Context, string) (*models.TutoringSession, error) {
	return func(_ context.Context, id string) (*models.TutoringSession, error) {
		return &models.TutoringSession{ID: id, TutorID: "t1", ImageURL: imageURL}, nil
	}
}

func TestDeleteTutoring_Forbidden(t *testing.T) {
	backend := &fakeBackend{getTutoring: ownedTutoring("")}

	_, err := newTestService(backend).DeleteTutoring(context.Background(), "intruder", "s1")

	assert.ErrorIs(t, err, response.ErrForbidden)
}

func TestDeleteTutoring_StepOrderAndCounts(t *testing.T) {
	imageURL := "http://backend/storage/tutoring-images/s1/pic.png"
	var deletedImage string

	backend := &fakeBackend{
		getTutoring: ownedTutoring(imageURL),
		listAvailableTimes: func(_ context.Context, _ string) ([]map[string]any, error) {
			return []map[string]any{{"id": "a1"}, {"id": "a2"}}, nil
		},
		deleteAvailable: func(_ context.Context, id string) error {
			if id == "a2" {
				return errors.New("slot is locked")
			}
			return nil
		},
		listReviews: func(_ context.Context, _ string) ([]models.TutoringReview, error) {
			return []models.TutoringReview{{ID: "r1"}}, nil
		},
		listMaterials: func(_ context.Context, _ string) ([]models.TutoringMaterial, error) {
			return []models.TutoringMaterial{{ID: "m1"}}, nil
		},
		deleteImage: func(_ context.Context, _, fileName string) error {
			deletedImage = fileName
			return nil
		},
	}

	result, err := newTestService(backend).DeleteTutoring(context.Background(), "t1", "s1")
	require.NoError(t, err)

	require.Len(t, result.Steps, 4)
	assert.Equal(t, "available_times", result.Steps[0].Resource)
	assert.Equal(t, "reviews", result.Steps[1].Resource)
	assert.Equal(t, "materials", result.Steps[2].Resource)
	assert.Equal(t, "image", result.Steps[3].Resource)

	assert.Equal(t, 1, result.Steps[0].Deleted)
	assert.Equal(t, 1, result.Steps[0].Failed)
	assert.Equal(t, "slot is locked", result.Steps[0].Error)
	assert.Equal(t, 1, result.Steps[1].Deleted)
	assert.Equal(t, 1, result.Steps[3].Deleted)
	assert.Equal(t, "pic.png", deletedImage)
	assert.True(t, result.ParentDeleted)
}

func TestDeleteTutoring_ListFailureDoesNotBlockParent(t *testing.T) {
	backend := &fakeBackend{
		getTutoring: ownedTutoring(""),
		listReviews: func(_ context.Context, _ string) ([]models.TutoringReview, error) {
			return nil, errors.New("reviews endpoint down")
		},
	}

	result, err := newTestService(backend).DeleteTutoring(context.Background(), "t1", "s1")
	require.NoError(t, err)

	assert.Equal(t, "reviews endpoint down", result.Steps[1].Error)
	assert.True(t, result.ParentDeleted)
}

func TestDeleteTutoring_PlaceholderImageSkipped(t *testing.T) {
	called := false

	backend := &fakeBackend{
		getTutoring: ownedTutoring(placeholder),
		deleteImage: func(_ context.Context, _, _ string) error {
			called = true
			return nil
		},
	}

	result, err := newTestService(backend).DeleteTutoring(context.Background(), "t1", "s1")
	require.NoError(t, err)

	assert.False(t, called)
	assert.Zero(t, result.Steps[3].Deleted)
}

func TestDeleteTutoring_ParentFailureReturnsSummary(t *testing.T) {
	backend := &fakeBackend{
		getTutoring: ownedTutoring(""),
		deleteTutoring: func(_ context.Context, _ string) error {
			return response.ErrUpstream
		},
	}

	result, err := newTestService(backend).DeleteTutoring(context.Background(), "t1", "s1")

	assert.ErrorIs(t, err, response.ErrUpstream)
	require.NotNil(t, result)
	assert.False(t, result.ParentDeleted)
}

func TestImageFileName(t *testing.T) {
	tests := []struct {
		name     string
		imageURL string
		want     string
		ok       bool
	}{
		{
			name:     "StoredImage",
			imageURL: "http://backend/storage/tutoring-images/s1/pic.png",
			want:     "pic.png",
			ok:       true,
		},
		{
			name:     "ForeignURL",
			imageURL: "https://example.com/cats/pic.png",
			ok:       false,
		},
		{
			name:     "Empty",
			imageURL: "",
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := imageFileName(tt.imageURL)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
