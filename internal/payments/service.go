package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"skillforge-backend/internal/admin"
	"skillforge-backend/internal/catalog"
	"skillforge-backend/internal/enrollments"
)

var (
	// ErrNotConfigured means no gateway credentials were supplied.
	ErrNotConfigured = errors.New("payments not configured")
	// ErrVerification means the payment signature did not check out.
	ErrVerification = errors.New("payment verification failed")
	// ErrDuplicate means the order was already recorded as an enrollment.
	ErrDuplicate = errors.New("order already recorded")
)

// Mailer sends the post-purchase confirmation. Failures are logged and
// never fail the checkout.
type Mailer interface {
	SendEnrollmentConfirmation(ctx context.Context, enr enrollments.Enrollment, course catalog.Course) (string, error)
}

type Service struct {
	gateway  Gateway
	catalog  *catalog.Service
	enrolls  enrollments.Repository
	console  *admin.Store
	mailer   Mailer
	currency string
	log      *slog.Logger
	now      func() time.Time
}

// NewService wires the checkout flow. gateway may be nil when payment
// credentials are absent, in which case every call returns
// ErrNotConfigured. mailer and console may also be nil.
func NewService(gateway Gateway, cat *catalog.Service, enrolls enrollments.Repository, console *admin.Store, mailer Mailer, currency string, log *slog.Logger) *Service {
	return &Service{
		gateway:  gateway,
		catalog:  cat,
		enrolls:  enrolls,
		console:  console,
		mailer:   mailer,
		currency: currency,
		log:      log,
		now:      time.Now,
	}
}

// CheckoutOrder is what the frontend needs to open the payment widget.
type CheckoutOrder struct {
	OrderID  string  `json:"orderId"`
	Amount   int64   `json:"amount"`
	Currency string  `json:"currency"`
	CourseID string  `json:"courseId"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
}

func (s *Service) CreateOrder(ctx context.Context, courseID, email string) (CheckoutOrder, error) {
	if s.gateway == nil {
		return CheckoutOrder{}, ErrNotConfigured
	}
	course, err := s.catalog.ByID(ctx, courseID)
	if err != nil {
		return CheckoutOrder{}, err
	}
	amount := minorUnits(course.Price)
	receipt := "crs_" + course.ID + "_" + email
	order, err := s.gateway.CreateOrder(ctx, amount, s.currency, receipt)
	if err != nil {
		return CheckoutOrder{}, fmt.Errorf("create order: %w", err)
	}
	return CheckoutOrder{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		CourseID: course.ID,
		Title:    course.Title,
		Price:    course.Price,
	}, nil
}

// Verify checks the gateway signature and, when valid, records the
// enrollment exactly once. The enrollment count bump, back-office
// transaction and confirmation email follow from it; only the
// enrollment write itself is fatal.
func (s *Service) Verify(ctx context.Context, orderID, paymentID, signature, courseID, email string) (enrollments.Enrollment, error) {
	if s.gateway == nil {
		return enrollments.Enrollment{}, ErrNotConfigured
	}
	course, err := s.catalog.ByID(ctx, courseID)
	if err != nil {
		return enrollments.Enrollment{}, err
	}
	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		return enrollments.Enrollment{}, ErrVerification
	}
	exists, err := s.enrolls.ExistsForOrder(ctx, orderID)
	if err != nil {
		return enrollments.Enrollment{}, fmt.Errorf("check order: %w", err)
	}
	if exists {
		return enrollments.Enrollment{}, ErrDuplicate
	}

	enr := enrollments.Enrollment{
		ID:          uuid.NewString(),
		CourseID:    course.ID,
		CourseTitle: course.Title,
		Email:       email,
		Amount:      course.Price,
		OrderID:     orderID,
		PaymentID:   paymentID,
		CreatedAt:   s.now(),
	}
	if err := s.enrolls.Create(ctx, enr); err != nil {
		return enrollments.Enrollment{}, fmt.Errorf("record enrollment: %w", err)
	}

	if err := s.catalog.RecordEnrollment(ctx, course.ID); err != nil {
		s.log.Warn("enrollment count not updated", slog.String("course_id", course.ID), slog.String("error", err.Error()))
	}
	if s.console != nil {
		_, err := s.console.AppendTransaction(ctx, admin.TransactionDraft{
			CourseTitle:  course.Title,
			LearnerEmail: email,
			Amount:       course.Price,
		})
		if err != nil {
			s.log.Warn("back-office transaction not recorded", slog.String("order_id", orderID), slog.String("error", err.Error()))
		}
	}
	if s.mailer != nil {
		if _, err := s.mailer.SendEnrollmentConfirmation(ctx, enr, course); err != nil {
			s.log.Warn("confirmation email not sent", slog.String("email", email), slog.String("error", err.Error()))
		}
	}
	return enr, nil
}

func minorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
