package set

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"tutorhub-service/api"
	"tutorhub-service/internal/models"
	"tutorhub-service/internal/session"
	"tutorhub-service/pkg/response"
	"tutorhub-service/pkg/sl"
)

type ProfileGetter interface {
	GetProfile(ctx context.Context, id string) (*models.User, error)
}

type Request struct {
	api.SessionRequest
}

type Response struct {
	response.Response
	User *models.User `json:"user,omitempty"`
}

// New starts a session for the given user id after resolving the
// profile against the backend.
func New(log *slog.Logger, profiles ProfileGetter, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.session.set.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		if req.UserID == "" {
			log.Error("user_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "user_id is required"))
			return
		}

		user, err := profiles.GetProfile(r.Context(), req.UserID)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("profile not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to resolve profile", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to resolve profile"))
			return
		}

		if err := sessions.Set(w, r, session.User{ID: user.ID, Role: user.Role}); err != nil {
			log.Error("Failed to save session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to save session"))
			return
		}

		log.Info("Session started", slog.String("user_id", user.ID))
		render.JSON(w, r, Response{User: user})
	}
}
