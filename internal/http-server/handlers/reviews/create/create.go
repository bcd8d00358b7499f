package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"tutorhub-service/api"
	"tutorhub-service/internal/models"
	"tutorhub-service/internal/service"
	"tutorhub-service/internal/session"
	"tutorhub-service/pkg/response"
	"tutorhub-service/pkg/sl"
)

type ReviewCreator interface {
	CreateReview(ctx context.Context, studentID string, input service.ReviewInput) (*models.TutoringReview, error)
}

type Request struct {
	api.ReviewCreateRequest
}

type Response struct {
	response.Response
	Fields map[string]string      `json:"fields,omitempty"`
	Review *models.TutoringReview `json:"review,omitempty"`
}

func New(log *slog.Logger, creator ReviewCreator, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.reviews.create.New"

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

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		if problems := req.Validate(); len(problems) > 0 {
			log.Error("Validation failed", slog.Any("fields", problems))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, Response{
				Response: response.Error(string(response.VALIDATION_FAILED), "validation failed"),
				Fields:   problems,
			})
			return
		}

		review, err := creator.CreateReview(r.Context(), user.ID, service.ReviewInput{
			TutoringID: req.TutoringID,
			Rating:     req.Rating,
			Comment:    req.Comment,
		})

		if errors.Is(err, response.ErrConflict) {
			log.Error("review already exists")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "you have already reviewed this tutoring"))
			return
		}

		if err != nil {
			log.Error("Failed to create review", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create review"))
			return
		}

		log.Info("Review created", slog.String("review_id", review.ID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{Review: review})
	}
}
