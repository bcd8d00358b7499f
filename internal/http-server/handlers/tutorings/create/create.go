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

type TutoringCreator interface {
	CreateTutoring(ctx context.Context, tutorID string, input service.TutoringInput, image *service.ImageUpload) (*models.TutoringSession, error)
}

type Request struct {
	api.TutoringCreateRequest
}

type Response struct {
	response.Response
	Fields   map[string]string       `json:"fields,omitempty"`
	Tutoring *models.TutoringSession `json:"tutoring,omitempty"`
}

func New(log *slog.Logger, creator TutoringCreator, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.tutorings.create.New"

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

		tutoring, err := creator.CreateTutoring(r.Context(), user.ID, service.TutoringInput{
			Title:             req.Title,
			Description:       req.Description,
			Price:             req.Price,
			WhatTheyWillLearn: req.WhatTheyWillLearn,
			CourseID:          req.CourseID,
			Availability:      req.Availability,
		}, nil)

		if errors.Is(err, response.ErrUpstream) {
			log.Error("Backend rejected tutoring create", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error(string(response.UPSTREAM_FAILED), "backend request failed"))
			return
		}

		if err != nil {
			log.Error("Failed to create tutoring", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create tutoring"))
			return
		}

		log.Info("Tutoring created", slog.String("tutoring_id", tutoring.ID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{Tutoring: tutoring})
	}
}
