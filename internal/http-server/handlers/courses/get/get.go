package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"tutorhub-service/internal/models"
	"tutorhub-service/pkg/response"
	"tutorhub-service/pkg/sl"
)

type CourseGetter interface {
	ListCourses(ctx context.Context, semesterNumber *int) ([]models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
}

type Response struct {
	response.Response
	Courses []models.Course `json:"courses,omitempty"`
	Course  *models.Course  `json:"course,omitempty"`
}

func New(log *slog.Logger, getter CourseGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.courses.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		if id != "" {
			course, err := getter.GetCourse(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("course not found")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get course", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get course"))
				return
			}

			log.Info("Course retrieved", slog.String("course_id", id))
			render.JSON(w, r, Response{Course: course})
			return
		}

		var semesterNumber *int
		if raw := r.URL.Query().Get("semester_number"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				log.Error("Invalid semester_number", slog.String("value", raw))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "semester_number must be a positive integer"))
				return
			}
			semesterNumber = &n
		}

		courses, err := getter.ListCourses(r.Context(), semesterNumber)

		if err != nil {
			log.Error("Failed to list courses", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list courses"))
			return
		}

		log.Info("Courses retrieved", slog.Int("count", len(courses)))
		render.JSON(w, r, Response{Courses: courses})
	}
}
