package create_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorhub-service/internal/http-server/handlers/reviews/create"
	"tutorhub-service/internal/models"
	"tutorhub-service/internal/service"
	"tutorhub-service/internal/session"
	"tutorhub-service/pkg/response"
)

type creatorFunc func(ctx context.Context, studentID string, input service.ReviewInput) (*models.TutoringReview, error)

func (f creatorFunc) CreateReview(ctx context.Context, studentID string, input service.ReviewInput) (*models.TutoringReview, error) {
	return f(ctx, studentID, input)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func login(t *testing.T, sessions *session.Manager, req *http.Request, userID string) {
	t.Helper()

	rec := httptest.NewRecorder()
	seed := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, sessions.Set(rec, seed, session.User{ID: userID}))

	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
}

func newCreateRequest(body map[string]any) *http.Request {
	data, _ := json.Marshal(body)
	return httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader(data))
}

func TestCreateHandler_ValidationShortCircuits(t *testing.T) {
	sessions := session.NewManager("test-secret")
	called := false
	handler := create.New(discardLogger(), creatorFunc(func(_ context.Context, _ string, _ service.ReviewInput) (*models.TutoringReview, error) {
		called = true
		return nil, nil
	}), sessions)

	req := newCreateRequest(map[string]any{
		"tutoring_id": "s1",
		"rating":      9,
		"comment":     "short",
	})
	login(t, sessions, req, "st1")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, called)

	var resp create.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(response.VALIDATION_FAILED), resp.ResponseError.Code)
	assert.Contains(t, resp.Fields, "rating")
	assert.Contains(t, resp.Fields, "comment")
}

func TestCreateHandler_Conflict(t *testing.T) {
	sessions := session.NewManager("test-secret")
	handler := create.New(discardLogger(), creatorFunc(func(_ context.Context, _ string, _ service.ReviewInput) (*models.TutoringReview, error) {
		return nil, response.ErrConflict
	}), sessions)

	req := newCreateRequest(map[string]any{
		"tutoring_id": "s1",
		"rating":      4,
		"comment":     "really helped me out",
	})
	login(t, sessions, req, "st1")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateHandler_Created(t *testing.T) {
	sessions := session.NewManager("test-secret")

	var gotStudentID string
	var gotInput service.ReviewInput
	handler := create.New(discardLogger(), creatorFunc(func(_ context.Context, studentID string, input service.ReviewInput) (*models.TutoringReview, error) {
		gotStudentID = studentID
		gotInput = input
		return &models.TutoringReview{ID: "r1", StudentID: studentID, Rating: input.Rating}, nil
	}), sessions)

	req := newCreateRequest(map[string]any{
		"tutoring_id": "s1",
		"rating":      5,
		"comment":     "really helped me out",
	})
	login(t, sessions, req, "st1")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "st1", gotStudentID)
	assert.Equal(t, "s1", gotInput.TutoringID)
	assert.Equal(t, 5, gotInput.Rating)

	var resp create.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Review)
	assert.Equal(t, "r1", resp.Review.ID)
}
