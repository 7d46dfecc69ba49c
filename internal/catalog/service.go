package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"skillforge-backend/internal/cache"
)

var ErrNotFound = errors.New("course not found")

// ErrUnavailable wraps an upstream fetch failure. Callers surface it as an
// explicit error state; retrying is re-issuing the same request, so filter
// selections survive.
var ErrUnavailable = errors.New("catalog unavailable")

const listCacheKey = "catalog:courses"

type Service struct {
	repo  Repository
	cache cache.Cache
	ttl   time.Duration
}

func NewService(repo Repository, c cache.Cache, ttl time.Duration) *Service {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Service{
		repo:  repo,
		cache: c,
		ttl:   ttl,
	}
}

type Page struct {
	Items      []Course `json:"items"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	Size       int      `json:"size"`
	HasNext    bool     `json:"hasNext"`
	Categories []string `json:"categories"`
}

// Browse evaluates the criteria against the full collection and windows
// the result. Categories always come from the live collection, not the
// filtered subset.
func (s *Service) Browse(ctx context.Context, criteria Criteria, page, size int) (Page, error) {
	courses, err := s.list(ctx)
	if err != nil {
		return Page{}, err
	}

	matched := Evaluate(criteria, courses)
	return Page{
		Items:      Paginate(matched, page, size),
		Total:      len(matched),
		Page:       page,
		Size:       size,
		HasNext:    HasNext(page, size, len(matched)),
		Categories: Categories(courses),
	}, nil
}

// Popular lists the most-enrolled courses.
func (s *Service) Popular(ctx context.Context, limit int) ([]Course, error) {
	courses, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	sorted := SortByEnrollment(courses)
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// TopRevenue lists courses by gross revenue.
func (s *Service) TopRevenue(ctx context.Context, limit int) ([]Course, error) {
	courses, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	sorted := SortByRevenue(courses)
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (s *Service) BySlug(ctx context.Context, slug string) (Course, error) {
	course, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Course{}, ErrNotFound
		}
		return Course{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return course, nil
}

func (s *Service) ByID(ctx context.Context, id string) (Course, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Course{}, ErrNotFound
		}
		return Course{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return course, nil
}

// RecordEnrollment bumps the course's enrollment count and drops the
// cached collection so the catalog reflects it.
func (s *Service) RecordEnrollment(ctx context.Context, id string) error {
	if err := s.repo.IncrementEnrollment(ctx, id); err != nil {
		return err
	}
	s.InvalidateList(ctx)
	return nil
}

// RecordReview folds a new review into the course's aggregate rating.
func (s *Service) RecordReview(ctx context.Context, course Course, rating int) error {
	newCount := course.ReviewCount + 1
	newRating := (course.Rating*float64(course.ReviewCount) + float64(rating)) / float64(newCount)
	if err := s.repo.SetRatingStats(ctx, course.ID, newRating, newCount); err != nil {
		return err
	}
	s.InvalidateList(ctx)
	return nil
}

// InvalidateList drops the cached collection; called after any write that
// changes catalog aggregates (enrollments, reviews).
func (s *Service) InvalidateList(ctx context.Context) {
	_ = s.cache.Delete(ctx, listCacheKey)
}

func (s *Service) list(ctx context.Context) ([]Course, error) {
	if payload, ok, err := s.cache.Get(ctx, listCacheKey); err == nil && ok {
		var courses []Course
		if err := json.Unmarshal(payload, &courses); err == nil {
			return courses, nil
		}
	}

	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if payload, err := json.Marshal(courses); err == nil {
		_ = s.cache.Set(ctx, listCacheKey, payload, s.ttl)
	}
	return courses, nil
}
