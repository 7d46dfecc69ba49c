package reviews

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"skillforge-backend/internal/catalog"
)

type Service struct {
	repo    Repository
	catalog *catalog.Service
	log     *slog.Logger
	now     func() time.Time
}

func NewService(repo Repository, cat *catalog.Service, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: cat,
		log:     log,
		now:     time.Now,
	}
}

// ListForCourse returns the newest reviews for the course behind slug.
func (s *Service) ListForCourse(ctx context.Context, slug string) ([]Review, error) {
	course, err := s.catalog.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCourse(ctx, course.ID)
}

// Create stores the review and folds its rating into the course's
// aggregate. The aggregate update is best effort; the stored review wins.
func (s *Service) Create(ctx context.Context, slug string, req CreateRequest) (Review, error) {
	course, err := s.catalog.BySlug(ctx, slug)
	if err != nil {
		return Review{}, err
	}

	review := Review{
		ID:        uuid.NewString(),
		CourseID:  course.ID,
		Name:      strings.TrimSpace(req.Name),
		Rating:    req.Rating,
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return Review{}, fmt.Errorf("create review: %w", err)
	}

	if err := s.catalog.RecordReview(ctx, course, review.Rating); err != nil {
		s.log.Warn("course rating not updated", slog.String("course_id", course.ID), slog.String("error", err.Error()))
	}
	return review, nil
}
