package reviews

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"skillforge-backend/internal/cache"
	"skillforge-backend/internal/catalog"
)

type fakeCatalogRepo struct {
	course      catalog.Course
	rating      float64
	reviewCount int
}

func (f *fakeCatalogRepo) List(ctx context.Context) ([]catalog.Course, error) {
	return []catalog.Course{f.course}, nil
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, id string) (catalog.Course, error) {
	if id != f.course.ID {
		return catalog.Course{}, mongo.ErrNoDocuments
	}
	return f.course, nil
}

func (f *fakeCatalogRepo) GetBySlug(ctx context.Context, slug string) (catalog.Course, error) {
	if slug != f.course.Slug {
		return catalog.Course{}, mongo.ErrNoDocuments
	}
	return f.course, nil
}

func (f *fakeCatalogRepo) IncrementEnrollment(ctx context.Context, id string) error {
	return nil
}

func (f *fakeCatalogRepo) SetRatingStats(ctx context.Context, id string, rating float64, reviewCount int) error {
	f.rating = rating
	f.reviewCount = reviewCount
	return nil
}

type fakeReviewRepo struct {
	items []Review
}

func (f *fakeReviewRepo) Create(ctx context.Context, item Review) error {
	f.items = append(f.items, item)
	return nil
}

func (f *fakeReviewRepo) ListByCourse(ctx context.Context, courseID string) ([]Review, error) {
	return f.items, nil
}

func newReviewFixture(course catalog.Course) (*Service, *fakeCatalogRepo, *fakeReviewRepo) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	courses := &fakeCatalogRepo{course: course}
	repo := &fakeReviewRepo{}
	catalogService := catalog.NewService(courses, cache.NewNoop(), time.Minute)
	return NewService(repo, catalogService, logger), courses, repo
}

func TestCreateStoresReviewAndUpdatesAggregate(t *testing.T) {
	svc, courses, repo := newReviewFixture(catalog.Course{
		ID: "crs-1", Slug: "go-basics", Rating: 4.0, ReviewCount: 3,
	})

	review, err := svc.Create(context.Background(), "go-basics", CreateRequest{
		Name:    "  Dana  ",
		Rating:  5,
		Message: "Clear and practical.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if review.Name != "Dana" {
		t.Errorf("name = %q, want trimmed", review.Name)
	}
	if review.CourseID != "crs-1" {
		t.Errorf("course id = %q", review.CourseID)
	}
	if len(repo.items) != 1 {
		t.Fatalf("stored reviews = %d", len(repo.items))
	}

	// (4.0*3 + 5) / 4 = 4.25
	if courses.reviewCount != 4 {
		t.Errorf("review count = %d, want 4", courses.reviewCount)
	}
	if courses.rating != 4.25 {
		t.Errorf("rating = %v, want 4.25", courses.rating)
	}
}

func TestCreateFirstReviewSetsRating(t *testing.T) {
	svc, courses, _ := newReviewFixture(catalog.Course{
		ID: "crs-1", Slug: "go-basics",
	})

	if _, err := svc.Create(context.Background(), "go-basics", CreateRequest{
		Name: "Ben", Rating: 3, Message: "Decent intro.",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if courses.reviewCount != 1 || courses.rating != 3.0 {
		t.Errorf("aggregate = (%v, %d), want (3.0, 1)", courses.rating, courses.reviewCount)
	}
}

func TestCreateUnknownCourse(t *testing.T) {
	svc, _, repo := newReviewFixture(catalog.Course{ID: "crs-1", Slug: "go-basics"})

	_, err := svc.Create(context.Background(), "missing", CreateRequest{
		Name: "Ben", Rating: 3, Message: "x",
	})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(repo.items) != 0 {
		t.Errorf("review stored for unknown course")
	}
}

func TestListForCourse(t *testing.T) {
	svc, _, repo := newReviewFixture(catalog.Course{ID: "crs-1", Slug: "go-basics"})
	repo.items = []Review{{ID: "rev-1", CourseID: "crs-1", Name: "Ana", Rating: 4}}

	items, err := svc.ListForCourse(context.Background(), "go-basics")
	if err != nil {
		t.Fatalf("ListForCourse: %v", err)
	}
	if len(items) != 1 || items[0].ID != "rev-1" {
		t.Errorf("items = %+v", items)
	}

	if _, err := svc.ListForCourse(context.Background(), "missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
