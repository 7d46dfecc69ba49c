package payments

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"skillforge-backend/internal/admin"
	"skillforge-backend/internal/cache"
	"skillforge-backend/internal/catalog"
	"skillforge-backend/internal/enrollments"
	"skillforge-backend/internal/validation"
)

type fakeCatalogRepo struct {
	courses    map[string]catalog.Course
	increments []string
}

func (f *fakeCatalogRepo) List(ctx context.Context) ([]catalog.Course, error) {
	items := make([]catalog.Course, 0, len(f.courses))
	for _, c := range f.courses {
		items = append(items, c)
	}
	return items, nil
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, id string) (catalog.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return catalog.Course{}, mongo.ErrNoDocuments
	}
	return c, nil
}

func (f *fakeCatalogRepo) GetBySlug(ctx context.Context, slug string) (catalog.Course, error) {
	for _, c := range f.courses {
		if c.Slug == slug {
			return c, nil
		}
	}
	return catalog.Course{}, mongo.ErrNoDocuments
}

func (f *fakeCatalogRepo) IncrementEnrollment(ctx context.Context, id string) error {
	f.increments = append(f.increments, id)
	return nil
}

func (f *fakeCatalogRepo) SetRatingStats(ctx context.Context, id string, rating float64, reviewCount int) error {
	return nil
}

type fakeEnrollmentRepo struct {
	created []enrollments.Enrollment
	orders  map[string]bool
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, item enrollments.Enrollment) error {
	f.created = append(f.created, item)
	f.orders[item.OrderID] = true
	return nil
}

func (f *fakeEnrollmentRepo) ListByEmail(ctx context.Context, email string) ([]enrollments.Enrollment, error) {
	return f.created, nil
}

func (f *fakeEnrollmentRepo) ExistsForOrder(ctx context.Context, orderID string) (bool, error) {
	return f.orders[orderID], nil
}

type fakeGateway struct {
	orders int
	valid  map[string]bool
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (Order, error) {
	f.orders++
	return Order{ID: "order_fake_1", Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func (f *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return f.valid[signature]
}

type fakeMailer struct {
	sent int
}

func (f *fakeMailer) SendEnrollmentConfirmation(ctx context.Context, enr enrollments.Enrollment, course catalog.Course) (string, error) {
	f.sent++
	return "message-1", nil
}

type checkoutFixture struct {
	svc     *Service
	gateway *fakeGateway
	courses *fakeCatalogRepo
	enrolls *fakeEnrollmentRepo
	mailer  *fakeMailer
	console *admin.Store
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	courses := &fakeCatalogRepo{courses: map[string]catalog.Course{
		"crs-1": {ID: "crs-1", Slug: "go-basics", Title: "Go Basics", Price: 49.5, InstructorName: "Sam Lee"},
	}}
	catalogService := catalog.NewService(courses, cache.NewNoop(), time.Minute)

	enrolls := &fakeEnrollmentRepo{orders: map[string]bool{}}
	gateway := &fakeGateway{valid: map[string]bool{"good-sig": true}}
	mailer := &fakeMailer{}

	console := admin.NewStore(admin.NewMemoryStore(), admin.NoDelay{}, validation.New(), logger)
	console.Load(context.Background())

	svc := NewService(gateway, catalogService, enrolls, console, mailer, "INR", logger)
	return &checkoutFixture{
		svc:     svc,
		gateway: gateway,
		courses: courses,
		enrolls: enrolls,
		mailer:  mailer,
		console: console,
	}
}

func TestCreateOrderUsesCoursePrice(t *testing.T) {
	f := newCheckoutFixture(t)

	order, err := f.svc.CreateOrder(context.Background(), "crs-1", "learner@example.com")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Amount != 4950 {
		t.Errorf("amount = %d, want 4950 minor units", order.Amount)
	}
	if order.Currency != "INR" {
		t.Errorf("currency = %q", order.Currency)
	}
	if order.OrderID != "order_fake_1" {
		t.Errorf("order id = %q", order.OrderID)
	}
	if f.gateway.orders != 1 {
		t.Errorf("gateway orders = %d", f.gateway.orders)
	}
}

func TestCreateOrderUnknownCourse(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.CreateOrder(context.Background(), "crs-missing", "learner@example.com")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if f.gateway.orders != 0 {
		t.Errorf("gateway called for unknown course")
	}
}

func TestVerifyRecordsEnrollment(t *testing.T) {
	f := newCheckoutFixture(t)

	enr, err := f.svc.Verify(context.Background(), "order_fake_1", "pay_1", "good-sig", "crs-1", "learner@example.com")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if enr.CourseTitle != "Go Basics" {
		t.Errorf("course title = %q", enr.CourseTitle)
	}
	if enr.Amount != 49.5 {
		t.Errorf("amount = %v", enr.Amount)
	}
	if len(f.enrolls.created) != 1 {
		t.Fatalf("enrollments created = %d", len(f.enrolls.created))
	}
	if len(f.courses.increments) != 1 || f.courses.increments[0] != "crs-1" {
		t.Errorf("enrollment count increments = %v", f.courses.increments)
	}
	if f.mailer.sent != 1 {
		t.Errorf("confirmation emails = %d", f.mailer.sent)
	}

	txns := f.console.Transactions()
	if len(txns) == 0 {
		t.Fatal("no back-office transaction recorded")
	}
	if txns[0].CourseTitle != "Go Basics" || txns[0].Status != admin.TransactionStatusPaid {
		t.Errorf("transaction = %+v", txns[0])
	}
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.Verify(context.Background(), "order_fake_1", "pay_1", "bad-sig", "crs-1", "learner@example.com")
	if !errors.Is(err, ErrVerification) {
		t.Fatalf("err = %v, want ErrVerification", err)
	}
	if len(f.enrolls.created) != 0 {
		t.Errorf("enrollment recorded despite bad signature")
	}
	if f.mailer.sent != 0 {
		t.Errorf("email sent despite bad signature")
	}
}

func TestVerifyIsIdempotentPerOrder(t *testing.T) {
	f := newCheckoutFixture(t)

	if _, err := f.svc.Verify(context.Background(), "order_fake_1", "pay_1", "good-sig", "crs-1", "learner@example.com"); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	_, err := f.svc.Verify(context.Background(), "order_fake_1", "pay_1", "good-sig", "crs-1", "learner@example.com")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
	if len(f.enrolls.created) != 1 {
		t.Errorf("enrollments created = %d, want 1", len(f.enrolls.created))
	}
}

func TestCheckoutWithoutGateway(t *testing.T) {
	f := newCheckoutFixture(t)
	f.svc.gateway = nil

	if _, err := f.svc.CreateOrder(context.Background(), "crs-1", "a@b.c"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("CreateOrder err = %v, want ErrNotConfigured", err)
	}
	if _, err := f.svc.Verify(context.Background(), "o", "p", "s", "crs-1", "a@b.c"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Verify err = %v, want ErrNotConfigured", err)
	}
}
