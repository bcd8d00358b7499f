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

type TutoringUpdater interface {
	UpdateTutoring(ctx context.Context, userID, id string, input service.TutoringInput, image *service.ImageUpload) (*models.TutoringSession, error)
}

type Request struct {
	api.TutoringUpdateRequest
}

type Response struct {
	response.Response
	Fields   map[string]string       `json:"fields,omitempty"`
	Tutoring *models.TutoringSession `json:"tutoring,omitempty"`
}

func New(log *slog.Logger, updater TutoringUpdater, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.tutorings.update.New"

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

		tutoring, err := updater.UpdateTutoring(r.Context(), user.ID, id, service.TutoringInput{
			Description:       req.Description,
			Price:             req.Price,
			WhatTheyWillLearn: req.WhatTheyWillLearn,
			Availability:      req.Availability,
		}, nil)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("tutoring not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if errors.Is(err, response.ErrForbidden) {
			log.Error("user does not own this tutoring")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(string(response.FORBIDDEN), "only the owner can edit a tutoring"))
			return
		}

		if err != nil {
			log.Error("Failed to update tutoring", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update tutoring"))
			return
		}

		log.Info("Tutoring updated", slog.String("tutoring_id", id))
		render.JSON(w, r, Response{Tutoring: tutoring})
	}
}
