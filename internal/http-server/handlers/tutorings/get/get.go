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
	"tutorhub-service/internal/service"
	"tutorhub-service/internal/session"
	"tutorhub-service/pkg/response"
	"tutorhub-service/pkg/sl"
)

type TutoringGetter interface {
	ListTutorings(ctx context.Context) ([]models.TutoringSession, error)
	GetTutoringDetail(ctx context.Context, id string) (*service.TutoringDetail, error)
}

type Response struct {
	response.Response
	Tutorings []models.TutoringSession `json:"tutorings,omitempty"`
	Detail    *service.TutoringDetail  `json:"detail,omitempty"`
	IsOwner   bool                     `json:"is_owner,omitempty"`
}

func New(log *slog.Logger, getter TutoringGetter, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.tutorings.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		if id != "" {
			detail, err := getter.GetTutoringDetail(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("tutoring not found")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get tutoring detail", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get tutoring"))
				return
			}

			// Ownership is derived from the session synchronously,
			// never polled.
			user, ok := sessions.Current(r)
			isOwner := ok && user.ID == detail.Tutoring.TutorID

			log.Info("Tutoring detail retrieved", slog.String("tutoring_id", id))
			render.JSON(w, r, Response{Detail: detail, IsOwner: isOwner})
			return
		}

		tutorings, err := getter.ListTutorings(r.Context())

		if err != nil {
			log.Error("Failed to list tutorings", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list tutorings"))
			return
		}

		log.Info("Tutorings retrieved", slog.Int("count", len(tutorings)))
		render.JSON(w, r, Response{Tutorings: tutorings})
	}
}
