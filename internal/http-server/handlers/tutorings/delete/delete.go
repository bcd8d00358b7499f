package delete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"tutorhub-service/internal/service"
	"tutorhub-service/internal/session"
	"tutorhub-service/pkg/response"
	"tutorhub-service/pkg/sl"
)

type TutoringDeleter interface {
	DeleteTutoring(ctx context.Context, userID, id string) (*service.CascadeResult, error)
}

type Response struct {
	response.Response
	Cascade *service.CascadeResult `json:"cascade,omitempty"`
}

func New(log *slog.Logger, deleter TutoringDeleter, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.tutorings.delete.New"

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
		if id == "" {
			log.Error("Tutoring id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "tutoring id is required"))
			return
		}

		cascade, err := deleter.DeleteTutoring(r.Context(), user.ID, id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("tutoring not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if errors.Is(err, response.ErrForbidden) {
			log.Error("user does not own this tutoring")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(string(response.FORBIDDEN), "only the owner can delete a tutoring"))
			return
		}

		if err != nil {
			log.Error("Failed to delete tutoring", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{
				Response: response.Error(string(response.FAILED_REQUEST), "failed to delete tutoring"),
				Cascade:  cascade,
			})
			return
		}

		log.Info("Tutoring deleted", slog.String("tutoring_id", id), slog.Any("cascade", cascade))
		render.JSON(w, r, Response{Cascade: cascade})
	}
}
