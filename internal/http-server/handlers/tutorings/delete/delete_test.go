package delete_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	del "tutorhub-service/internal/http-server/handlers/tutorings/delete"
	"tutorhub-service/internal/service"
	"tutorhub-service/internal/session"
	"tutorhub-service/pkg/response"
)

type deleterFunc func(ctx context.Context, userID, id string) (*service.CascadeResult, error)

func (f deleterFunc) DeleteTutoring(ctx context.Context, userID, id string) (*service.CascadeResult, error) {
	return f(ctx, userID, id)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// login issues a session cookie for the given user and attaches it to
// the request.
func login(t *testing.T, sessions *session.Manager, req *http.Request, userID string) {
	t.Helper()

	rec := httptest.NewRecorder()
	seed := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, sessions.Set(rec, seed, session.User{ID: userID}))

	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
}

func newDeleteRequest(tutoringID string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/tutorings/"+tutoringID, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", tutoringID)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestDeleteHandler_Unauthorized(t *testing.T) {
	sessions := session.NewManager("test-secret")
	handler := del.New(discardLogger(), deleterFunc(func(_ context.Context, _, _ string) (*service.CascadeResult, error) {
		t.Fatal("deleter must not be called without a session")
		return nil, nil
	}), sessions)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newDeleteRequest("s1"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteHandler_Forbidden(t *testing.T) {
	sessions := session.NewManager("test-secret")
	handler := del.New(discardLogger(), deleterFunc(func(_ context.Context, _, _ string) (*service.CascadeResult, error) {
		return nil, response.ErrForbidden
	}), sessions)

	req := newDeleteRequest("s1")
	login(t, sessions, req, "intruder")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(response.FORBIDDEN), resp.ResponseError.Code)
}

func TestDeleteHandler_ReturnsCascadeSummary(t *testing.T) {
	sessions := session.NewManager("test-secret")

	var gotUserID, gotID string
	handler := del.New(discardLogger(), deleterFunc(func(_ context.Context, userID, id string) (*service.CascadeResult, error) {
		gotUserID, gotID = userID, id
		return &service.CascadeResult{
			Steps: []service.CascadeStep{
				{Resource: "available_times", Deleted: 3},
				{Resource: "reviews", Deleted: 1, Failed: 1, Error: "review is locked"},
			},
			ParentDeleted: true,
		}, nil
	}), sessions)

	req := newDeleteRequest("s1")
	login(t, sessions, req, "t1")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t1", gotUserID)
	assert.Equal(t, "s1", gotID)

	var resp del.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Cascade)
	assert.True(t, resp.Cascade.ParentDeleted)
	require.Len(t, resp.Cascade.Steps, 2)
	assert.Equal(t, "review is locked", resp.Cascade.Steps[1].Error)
}
