package upload

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"tutorhub-service/internal/backend"
	"tutorhub-service/internal/service"
	"tutorhub-service/internal/session"
	"tutorhub-service/pkg/response"
	"tutorhub-service/pkg/sl"
)

type ImageUploader interface {
	UploadImage(ctx context.Context, userID, tutoringID string, image *service.ImageUpload) (string, error)
}

type Response struct {
	response.Response
	ImageURL string `json:"image_url,omitempty"`
}

func New(log *slog.Logger, uploader ImageUploader, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.images.upload.New"

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

		if err := r.ParseMultipartForm(backend.MaxUploadSize); err != nil {
			log.Error("Failed to parse multipart form", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to parse multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			log.Error("Missing file part", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "file is required"))
			return
		}
		defer file.Close()

		imageURL, err := uploader.UploadImage(r.Context(), user.ID, id, &service.ImageUpload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Data:        file,
		})

		if errors.Is(err, response.ErrNotFound) {
			log.Error("tutoring not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if errors.Is(err, response.ErrForbidden) {
			log.Error("user does not own this tutoring")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(string(response.FORBIDDEN), "only the owner can change the image"))
			return
		}

		if errors.Is(err, response.ErrValidation) {
			log.Error("Image rejected", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "image must be png, jpeg, gif or webp and at most 5MB"))
			return
		}

		if err != nil {
			log.Error("Failed to upload image", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to upload image"))
			return
		}

		log.Info("Image uploaded", slog.String("tutoring_id", id), slog.String("image_url", imageURL))
		render.JSON(w, r, Response{ImageURL: imageURL})
	}
}
