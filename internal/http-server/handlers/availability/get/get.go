package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"tutorhub-service/internal/availability"
	"tutorhub-service/internal/service"
	"tutorhub-service/pkg/response"
	"tutorhub-service/pkg/sl"
)

type AvailabilityGetter interface {
	GetAvailability(ctx context.Context, tutoringID string) (*service.Availability, error)
}

type Response struct {
	response.Response
	Availability *service.Availability  `json:"availability,omitempty"`
	Sections     []availability.Section `json:"sections,omitempty"`
}

func New(log *slog.Logger, getter AvailabilityGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("Tutoring id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "tutoring id is required"))
			return
		}

		avail, err := getter.GetAvailability(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("tutoring not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to get availability", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get availability"))
			return
		}

		log.Info("Availability retrieved", slog.String("tutoring_id", id))
		render.JSON(w, r, Response{
			Availability: avail,
			Sections:     availability.Sections,
		})
	}
}
