package delete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"tutorhub-service/internal/session"
	"tutorhub-service/pkg/response"
	"tutorhub-service/pkg/sl"
)

type ReviewDeleter interface {
	DeleteReview(ctx context.Context, studentID, reviewID, tutoringID string) error
}

func New(log *slog.Logger, deleter ReviewDeleter, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.reviews.delete.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		user, ok := sessions.Current(r)
		if !ok {
			log.Error("No active session")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), "login required"))
			return
		}

		id := chi.URLParam(r, "id")
		tutoringID := r.URL.Query().Get("tutoring_id")
		if id == "" || tutoringID == "" {
			log.Error("Review id or tutoring_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "review id and tutoring_id are required"))
			return
		}

		err := deleter.DeleteReview(r.Context(), user.ID, id, tutoringID)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("review not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if errors.Is(err, response.ErrForbidden) {
			log.Error("user is not the author of this review")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(string(response.FORBIDDEN), "only the author can delete a review"))
			return
		}

		if err != nil {
			log.Error("Failed to delete review", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to delete review"))
			return
		}

		log.Info("Review deleted", slog.String("review_id", id))
		render.JSON(w, r, response.Response{})
	}
}
