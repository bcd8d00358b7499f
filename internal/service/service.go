package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"tutorhub-service/internal/availability"
	"tutorhub-service/internal/cache"
	"tutorhub-service/internal/models"
	"tutorhub-service/pkg/sl"
)

type Service struct {
	backend          Backend
	cache            cache.Cache
	log              *slog.Logger
	cacheTTL         time.Duration
	placeholderImage string
}

func NewService(backend Backend, c cache.Cache, log *slog.Logger, cacheTTL time.Duration, placeholderImage string) *Service {
	return &Service{
		backend:          backend,
		cache:            c,
		log:              log,
		cacheTTL:         cacheTTL,
		placeholderImage: placeholderImage,
	}
}

type Backend interface {
	// Courses & profiles
	ListCourses(ctx context.Context, semesterNumber *int) ([]models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	GetProfile(ctx context.Context, id string) (*models.User, error)

	// Tutoring sessions
	ListTutorings(ctx context.Context) ([]models.TutoringSession, error)
	GetTutoring(ctx context.Context, id string) (*models.TutoringSession, error)
	CreateTutoring(ctx context.Context, payload map[string]any) (*models.TutoringSession, error)
	UpdateTutoring(ctx context.Context, id string, payload map[string]any) (*models.TutoringSession, error)
	DeleteTutoring(ctx context.Context, id string) error

	// Availability
	ListAvailableTimes(ctx context.Context, tutoringID string) ([]map[string]any, error)
	DeleteAvailableTime(ctx context.Context, id string) error

	// Reviews
	ListReviews(ctx context.Context, tutoringID string) ([]models.TutoringReview, error)
	CreateReview(ctx context.Context, payload map[string]any) (*models.TutoringReview, error)
	UpdateReview(ctx context.Context, id string, payload map[string]any) (*models.TutoringReview, error)
	DeleteReview(ctx context.Context, id string) error

	// Materials
	ListMaterials(ctx context.Context, tutoringID string) ([]models.TutoringMaterial, error)
	DeleteMaterial(ctx context.Context, id string) error

	// Storage
	UploadTutoringImage(ctx context.Context, tutoringID, fileName, contentType string, size int64, file io.Reader) (string, error)
	DeleteTutoringImage(ctx context.Context, tutoringID, fileName string) error
	ImageURL(tutoringID, fileName string) string
}

const (
	cacheKeySemesters = "semesters"
	cacheKeyTutorings = "tutorings"
)

// IsOwner reports whether the given user owns the tutoring session.
func (s *Service) IsOwner(userID string, tutoring models.TutoringSession) bool {
	return userID != "" && userID == tutoring.TutorID
}

func (s *Service) ListCourses(ctx context.Context, semesterNumber *int) ([]models.Course, error) {
	const op = "service.ListCourses"

	courses, err := s.backend.ListCourses(ctx, semesterNumber)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return courses, nil
}

func (s *Service) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	const op = "service.GetCourse"

	course, err := s.backend.GetCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return course, nil
}

func (s *Service) GetProfile(ctx context.Context, id string) (*models.User, error) {
	const op = "service.GetProfile"

	user, err := s.backend.GetProfile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// ListSemesters groups the course catalogue by semester number. The
// grouping only exists at read time; the backend has no semester
// resource.
func (s *Service) ListSemesters(ctx context.Context) ([]models.Semester, error) {
	const op = "service.ListSemesters"

	if data, ok := s.cache.Get(ctx, cacheKeySemesters); ok {
		var semesters []models.Semester
		if err := json.Unmarshal(data, &semesters); err == nil {
			return semesters, nil
		}
	}

	courses, err := s.backend.ListCourses(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	grouped := make(map[int][]models.Course)
	for _, course := range courses {
		grouped[course.SemesterNumber] = append(grouped[course.SemesterNumber], course)
	}

	numbers := make([]int, 0, len(grouped))
	for n := range grouped {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	semesters := make([]models.Semester, 0, len(numbers))
	for _, n := range numbers {
		semesters = append(semesters, models.Semester{
			ID:      fmt.Sprintf("%d", n),
			Name:    fmt.Sprintf("Semester %d", n),
			Courses: grouped[n],
		})
	}

	if data, err := json.Marshal(semesters); err == nil {
		s.cache.Set(ctx, cacheKeySemesters, data, s.cacheTTL)
	}

	return semesters, nil
}

func (s *Service) ListTutorings(ctx context.Context) ([]models.TutoringSession, error) {
	const op = "service.ListTutorings"

	if data, ok := s.cache.Get(ctx, cacheKeyTutorings); ok {
		var sessions []models.TutoringSession
		if err := json.Unmarshal(data, &sessions); err == nil {
			return sessions, nil
		}
	}

	sessions, err := s.backend.ListTutorings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if data, err := json.Marshal(sessions); err == nil {
		s.cache.Set(ctx, cacheKeyTutorings, data, s.cacheTTL)
	}

	return sessions, nil
}

type TutoringDetail struct {
	Tutoring models.TutoringSession  `json:"tutoring"`
	Tutor    *models.User            `json:"tutor,omitempty"`
	Course   *models.Course          `json:"course,omitempty"`
	Reviews  []models.TutoringReview `json:"reviews"`
	Schedule map[string][]string     `json:"schedule"`
}

// GetTutoringDetail fans out the dependent reads (tutor profile,
// course, reviews, availability) and joins them before returning. Each
// branch catches its own error and leaves its slot empty; only the
// initial tutoring fetch is fatal.
func (s *Service) GetTutoringDetail(ctx context.Context, id string) (*TutoringDetail, error) {
	const op = "service.GetTutoringDetail"

	tutoring, err := s.backend.GetTutoring(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	detail := &TutoringDetail{
		Tutoring: *tutoring,
		Reviews:  []models.TutoringReview{},
		Schedule: availability.ScheduleFromWire(nil, s.log),
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		tutor, err := s.backend.GetProfile(ctx, tutoring.TutorID)
		if err != nil {
			s.log.Warn("Failed to fetch tutor profile", sl.Err(err))
			return
		}
		detail.Tutor = tutor
	}()

	if tutoring.CourseID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			course, err := s.backend.GetCourse(ctx, tutoring.CourseID)
			if err != nil {
				s.log.Warn("Failed to fetch course", sl.Err(err))
				return
			}
			detail.Course = course
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		reviews, err := s.backend.ListReviews(ctx, id)
		if err != nil {
			s.log.Warn("Failed to fetch reviews", sl.Err(err))
			return
		}
		detail.Reviews = reviews
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		records, err := s.backend.ListAvailableTimes(ctx, id)
		if err != nil {
			s.log.Warn("Failed to fetch available times", sl.Err(err))
			return
		}
		detail.Schedule = availability.ScheduleFromWire(records, s.log)
	}()

	wg.Wait()

	return detail, nil
}

type Availability struct {
	Schedule  map[string][]string `json:"schedule"`
	Selection map[string][]string `json:"selection"`
}

// GetAvailability returns both availability projections for one
// tutoring session: the display schedule and the edit-form selection.
func (s *Service) GetAvailability(ctx context.Context, tutoringID string) (*Availability, error) {
	const op = "service.GetAvailability"

	records, err := s.backend.ListAvailableTimes(ctx, tutoringID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Availability{
		Schedule:  availability.ScheduleFromWire(records, s.log),
		Selection: availability.GridFromWire(records, s.log).Selection(),
	}, nil
}
