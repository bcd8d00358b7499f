package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"tutorhub-service/internal/models"
	"tutorhub-service/pkg/response"
	"tutorhub-service/pkg/sl"
)

type ProfileGetter interface {
	GetProfile(ctx context.Context, id string) (*models.User, error)
}

type Response struct {
	response.Response
	Profile *models.User `json:"profile,omitempty"`
}

func New(log *slog.Logger, getter ProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.profiles.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("Profile id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "profile id is required"))
			return
		}

		profile, err := getter.GetProfile(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("profile not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to get profile", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get profile"))
			return
		}

		log.Info("Profile retrieved", slog.String("profile_id", id))
		render.JSON(w, r, Response{Profile: profile})
	}
}
