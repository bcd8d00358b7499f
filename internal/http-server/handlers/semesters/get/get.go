package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"tutorhub-service/internal/models"
	"tutorhub-service/pkg/response"
	"tutorhub-service/pkg/sl"
)

type SemesterLister interface {
	ListSemesters(ctx context.Context) ([]models.Semester, error)
}

type Response struct {
	response.Response
	Semesters []models.Semester `json:"semesters"`
}

func New(log *slog.Logger, lister SemesterLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.semesters.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		semesters, err := lister.ListSemesters(r.Context())

		if err != nil {
			log.Error("Failed to list semesters", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list semesters"))
			return
		}

		log.Info("Semesters retrieved", slog.Int("count", len(semesters)))
		render.JSON(w, r, Response{Semesters: semesters})
	}
}
