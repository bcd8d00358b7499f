package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"tutorhub-service/api"
	"tutorhub-service/internal/models"
	"tutorhub-service/internal/service"
	"tutorhub-service/internal/session"
	"tutorhub-service/pkg/response"
	"tutorhub-service/pkg/sl"
)

type ReviewUpdater interface {
	UpdateReview(ctx context.Context, studentID, reviewID string, input service.ReviewInput) (*models.TutoringReview, error)
}

type Request struct {
	api.ReviewUpdateRequest
}

type Response struct {
	response.Response
	Fields map[string]string      `json:"fields,omitempty"`
	Review *models.TutoringReview `json:"review,omitempty"`
}

func New(log *slog.Logger, updater ReviewUpdater, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.reviews.update.New"

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
			log.Error("Review id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "review id is required"))
			return
		}

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		if problems := req.Validate(); len(problems) > 0 {
			log.Error("Validation failed", slog.Any("fields", problems))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, Response{
				Response: response.Error(string(response.VALIDATION_FAILED), "validation failed"),
				Fields:   problems,
			})
			return
		}

		review, err := updater.UpdateReview(r.Context(), user.ID, id, service.ReviewInput{
			TutoringID: req.TutoringID,
			Rating:     req.Rating,
			Comment:    req.Comment,
		})

		if errors.Is(err, response.ErrNotFound) {
			log.Error("review not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if errors.Is(err, response.ErrForbidden) {
			log.Error("user is not the author of this review")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(string(response.FORBIDDEN), "only the author can edit a review"))
			return
		}

		if err != nil {
			log.Error("Failed to update review", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update review"))
			return
		}

		log.Info("Review updated", slog.String("review_id", id))
		render.JSON(w, r, Response{Review: review})
	}
}
