package admin

import "time"

// Entity kinds, used in activity messages.
const (
	KindCourse            = "course"
	KindUser              = "user"
	KindPost              = "post"
	KindInstructorRequest = "instructor request"
	KindCategory          = "category"
	KindTransaction       = "transaction"
)

const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"

	UserStatusActive = "active"
	UserStatusBanned = "banned"

	PostStatusDraft     = "draft"
	PostStatusPublished = "published"

	InstructorStatusPending  = "pending"
	InstructorStatusVerified = "verified"
	InstructorStatusRejected = "rejected"

	TransactionStatusPaid     = "paid"
	TransactionStatusRefunded = "refunded"
)

var courseStatuses = map[string]struct{}{
	CourseStatusDraft:     {},
	CourseStatusPublished: {},
}

var userStatuses = map[string]struct{}{
	UserStatusActive: {},
	UserStatusBanned: {},
}

var postStatuses = map[string]struct{}{
	PostStatusDraft:     {},
	PostStatusPublished: {},
}

var instructorStatuses = map[string]struct{}{
	InstructorStatusPending:  {},
	InstructorStatusVerified: {},
	InstructorStatusRejected: {},
}

var transactionStatuses = map[string]struct{}{
	TransactionStatusPaid:     {},
	TransactionStatusRefunded: {},
}

type Course struct {
	ID              string    `json:"id" csv:"id"`
	Title           string    `json:"title" csv:"title"`
	Description     string    `json:"description" csv:"-"`
	Category        string    `json:"category" csv:"category"`
	Level           string    `json:"level" csv:"level"`
	Price           float64   `json:"price" csv:"price"`
	InstructorName  string    `json:"instructorName" csv:"instructor"`
	EnrollmentCount int       `json:"enrollmentCount" csv:"enrollments"`
	Status          string    `json:"status" csv:"status"`
	CreatedAt       time.Time `json:"createdAt" csv:"created_at"`
}

type ManagedUser struct {
	ID       string    `json:"id" csv:"id"`
	Name     string    `json:"name" csv:"name"`
	Email    string    `json:"email" csv:"email"`
	Status   string    `json:"status" csv:"status"`
	JoinedAt time.Time `json:"joinedAt" csv:"joined_at"`
}

type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type InstructorRequest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Expertise   string    `json:"expertise"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	CourseCount int    `json:"courseCount"`
}

// Transaction carries a denormalized course title on purpose: it is a
// historical fact, and later course edits must not rewrite it.
type Transaction struct {
	ID           string    `json:"id" csv:"id"`
	CourseTitle  string    `json:"courseTitle" csv:"course"`
	LearnerEmail string    `json:"learnerEmail" csv:"email"`
	Amount       float64   `json:"amount" csv:"amount"`
	Status       string    `json:"status" csv:"status"`
	CreatedAt    time.Time `json:"createdAt" csv:"created_at"`
}

type ActivityEntry struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Draft payloads. An empty id means not yet persisted; Create assigns one.

type CourseDraft struct {
	Title          string  `json:"title" validate:"required"`
	Description    string  `json:"description" validate:"required"`
	Category       string  `json:"category"`
	Level          string  `json:"level" validate:"omitempty,level"`
	Price          float64 `json:"price" validate:"gte=0"`
	InstructorName string  `json:"instructorName" validate:"required"`
	Status         string  `json:"status" validate:"omitempty,oneof=draft published"`
}

type UserDraft struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type PostDraft struct {
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body" validate:"required"`
	Author string `json:"author"`
	Status string `json:"status" validate:"omitempty,oneof=draft published"`
}

type InstructorDraft struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Expertise string `json:"expertise" validate:"required"`
}

type CategoryDraft struct {
	Name string `json:"name" validate:"required"`
}

type TransactionDraft struct {
	CourseTitle  string  `json:"courseTitle" validate:"required"`
	LearnerEmail string  `json:"learnerEmail" validate:"required,email"`
	Amount       float64 `json:"amount" validate:"gte=0"`
	Status       string  `json:"status" validate:"omitempty,oneof=paid refunded"`
}
