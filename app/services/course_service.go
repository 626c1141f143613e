package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/shashiranjanraj/eduportal/app/models"
	"github.com/shashiranjanraj/eduportal/app/repositories"
	"github.com/shashiranjanraj/eduportal/pkg/apperr"
	"github.com/shashiranjanraj/eduportal/pkg/cache"
	"github.com/shashiranjanraj/eduportal/pkg/event"
	"github.com/shashiranjanraj/eduportal/pkg/logger"
)

// CatalogGenKey holds the catalog generation. Add bumps it, so a list
// cached under an older generation is never read again.
const CatalogGenKey = "courses:gen"

// CatalogKey is the cache key of the full course list at generation gen.
func CatalogKey(gen int64) string { return "courses:all:" + strconv.FormatInt(gen, 10) }

// CourseKey is the cache key of a single course.
func CourseKey(id string) string { return "courses:" + id }

// CourseInput is the POST /add-course body. Every field must be present.
type CourseInput struct {
	CourseName    string `json:"courseName" validate:"required"`
	Description   string `json:"description" validate:"required"`
	Duration      string `json:"duration" validate:"required"`
	StartDate     string `json:"startDate" validate:"required"`
	Objectives    string `json:"objectives" validate:"required"`
	CourseContent string `json:"courseContent" validate:"required"`
	Requirements  string `json:"requirements" validate:"required"`
	CourseFee     string `json:"courseFee" validate:"required"`
}

// CourseService manages the catalog. Courses never change once added, so
// reads are served from the cache when one is configured. The list is keyed
// by generation: a read that raced an Add stores its result under the old
// generation, which nothing looks up afterwards.
type CourseService struct {
	courses repositories.CourseRepository
	cache   *cache.Cache
	ttl     time.Duration
	events  *event.Dispatcher
}

func NewCourseService(courses repositories.CourseRepository, c *cache.Cache, ttl time.Duration, events *event.Dispatcher) *CourseService {
	return &CourseService{courses: courses, cache: c, ttl: ttl, events: events}
}

func (s *CourseService) Add(ctx context.Context, in CourseInput) (models.Course, error) {
	course := models.Course{
		CourseName:    in.CourseName,
		Description:   in.Description,
		Duration:      in.Duration,
		StartDate:     in.StartDate,
		Objectives:    in.Objectives,
		CourseContent: in.CourseContent,
		Requirements:  in.Requirements,
		CourseFee:     in.CourseFee,
	}
	if err := s.courses.Create(ctx, &course); err != nil {
		return models.Course{}, err
	}

	if _, err := s.cache.Incr(ctx, CatalogGenKey); err != nil {
		logger.WithCtx(ctx).Warn("catalog generation not bumped", "error", err.Error())
	}

	s.events.Fire(ctx, event.CourseAdded, course)
	return course, nil
}

// All lists every course. The generation is read before the store so the
// cached list is never newer-keyed than its contents.
func (s *CourseService) All(ctx context.Context) ([]models.Course, error) {
	gen, err := s.cache.Counter(ctx, CatalogGenKey)
	if err != nil {
		logger.WithCtx(ctx).Warn("catalog generation unreadable", "error", err.Error())
		return s.courses.All(ctx)
	}

	key := CatalogKey(gen)
	var courses []models.Course
	if s.cache.Get(ctx, key, &courses) && courses != nil {
		return courses, nil
	}

	courses, err = s.courses.All(ctx)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, key, courses)
	return courses, nil
}

// Get returns the course with id. Unknown and malformed ids are both
// reported as apperr.ErrCourseNotFound.
func (s *CourseService) Get(ctx context.Context, id string) (models.Course, error) {
	var course models.Course
	if s.cache.Get(ctx, CourseKey(id), &course) {
		return course, nil
	}

	course, err := s.courses.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Course{}, apperr.ErrCourseNotFound
	}
	if err != nil {
		return models.Course{}, err
	}
	s.remember(ctx, CourseKey(id), course)
	return course, nil
}

func (s *CourseService) remember(ctx context.Context, key string, v interface{}) {
	if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
		logger.WithCtx(ctx).Warn("cache write failed", "key", key, "error", err.Error())
	}
}
