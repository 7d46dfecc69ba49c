package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"skillforge-backend/internal/validation"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidStatus = errors.New("invalid status")
)

const activityCap = 50

// State holds every back-office collection. Collections are mutually
// independent: no foreign keys, cross-references are denormalized copies.
type State struct {
	Courses      []Course            `json:"courses"`
	Users        []ManagedUser       `json:"users"`
	Posts        []BlogPost          `json:"posts"`
	Instructors  []InstructorRequest `json:"instructors"`
	Categories   []Category          `json:"categories"`
	Transactions []Transaction       `json:"transactions"`
	Activity     []ActivityEntry     `json:"activity"`
}

// Store is the single writer over the console state. Every mutation runs
// the same path: validate, wait the injected delay, apply under the lock,
// log activity, persist the full snapshot.
type Store struct {
	mu    sync.Mutex
	state State
	snap  SnapshotStore
	delay Delay
	val   *validation.Validator
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

func NewStore(snap SnapshotStore, delay Delay, val *validation.Validator, log *slog.Logger) *Store {
	if delay == nil {
		delay = NoDelay{}
	}
	return &Store{
		snap:  snap,
		delay: delay,
		val:   val,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Load restores the snapshot. Absent or malformed data falls back to the
// default dataset with a warning; it never fails the boot.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.snap.Load(ctx)
	if err != nil {
		s.log.Warn("admin state: snapshot read failed, using defaults", slog.String("error", err.Error()))
		s.state = DefaultState()
		return
	}
	if !ok {
		s.log.Info("admin state: no snapshot, using defaults")
		s.state = DefaultState()
		return
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		s.log.Warn("admin state: snapshot malformed, using defaults", slog.String("error", err.Error()))
		s.state = DefaultState()
		return
	}
	s.state = state
	s.log.Info("admin state: snapshot restored",
		slog.Int("courses", len(state.Courses)),
		slog.Int("transactions", len(state.Transactions)))
}

// mutate is the single apply path. The delay runs before the lock, so a
// second mutation queues behind the in-flight one at the lock. Snapshot
// write failure is warned, not returned: in-memory state stays
// authoritative for the session.
func (s *Store) mutate(ctx context.Context, apply func(st *State) (string, error)) error {
	s.delay.Wait()

	s.mu.Lock()
	message, err := apply(&s.state)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if message != "" {
		entry := ActivityEntry{ID: s.newID(), Message: message, At: s.now()}
		s.state.Activity = append([]ActivityEntry{entry}, s.state.Activity...)
		if len(s.state.Activity) > activityCap {
			s.state.Activity = s.state.Activity[:activityCap]
		}
	}
	data, marshalErr := json.Marshal(s.state)
	s.mu.Unlock()

	if marshalErr != nil {
		s.log.Warn("admin state: snapshot marshal failed", slog.String("error", marshalErr.Error()))
		return nil
	}
	if err := s.snap.Save(ctx, data); err != nil {
		s.log.Warn("admin state: snapshot save failed", slog.String("error", err.Error()))
	}
	return nil
}

// Filter returns the items the predicate keeps, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func indexByID[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func snapshotOf[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// ---- courses ----

func (s *Store) CreateCourse(ctx context.Context, draft CourseDraft) (Course, error) {
	if err := s.val.Struct(draft); err != nil {
		return Course{}, err
	}
	course := Course{
		ID:             s.newID(),
		Title:          strings.TrimSpace(draft.Title),
		Description:    strings.TrimSpace(draft.Description),
		Category:       strings.TrimSpace(draft.Category),
		Level:          draft.Level,
		Price:          draft.Price,
		InstructorName: strings.TrimSpace(draft.InstructorName),
		Status:         draft.Status,
		CreatedAt:      s.now(),
	}
	if course.Status == "" {
		course.Status = CourseStatusDraft
	}
	err := s.mutate(ctx, func(st *State) (string, error) {
		st.Courses = append([]Course{course}, st.Courses...)
		return "Created course: " + course.Title, nil
	})
	return course, err
}

func (s *Store) UpdateCourse(ctx context.Context, id string, draft CourseDraft) (Course, error) {
	if err := s.val.Struct(draft); err != nil {
		return Course{}, err
	}
	var updated Course
	err := s.mutate(ctx, func(st *State) (string, error) {
		i := indexByID(st.Courses, id, func(c Course) string { return c.ID })
		if i < 0 {
			return "", ErrNotFound
		}
		current := st.Courses[i]
		current.Title = strings.TrimSpace(draft.Title)
		current.Description = strings.TrimSpace(draft.Description)
		current.Category = strings.TrimSpace(draft.Category)
		current.Level = draft.Level
		current.Price = draft.Price
		current.InstructorName = strings.TrimSpace(draft.InstructorName)
		if draft.Status != "" {
			current.Status = draft.Status
		}
		st.Courses[i] = current
		updated = current
		return "Updated course: " + current.Title, nil
	})
	return updated, err
}

func (s *Store) DeleteCourse(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *State) (string, error) {
		i := indexByID(st.Courses, id, func(c Course) string { return c.ID })
		if i < 0 {
			return "", nil
		}
		title := st.Courses[i].Title
		st.Courses = append(st.Courses[:i], st.Courses[i+1:]...)
		return "Deleted course: " + title, nil
	})
}

func (s *Store) Courses() []Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.state.Courses)
}

// ---- managed users ----

func (s *Store) CreateUser(ctx context.Context, draft UserDraft) (ManagedUser, error) {
	if err := s.val.Struct(draft); err != nil {
		return ManagedUser{}, err
	}
	user := ManagedUser{
		ID:       s.newID(),
		Name:     strings.TrimSpace(draft.Name),
		Email:    strings.TrimSpace(draft.Email),
		Status:   UserStatusActive,
		JoinedAt: s.now(),
	}
	err := s.mutate(ctx, func(st *State) (string, error) {
		st.Users = append([]ManagedUser{user}, st.Users...)
		return "Created user: " + user.Name, nil
	})
	return user, err
}

func (s *Store) UpdateUser(ctx context.Context, id string, draft UserDraft) (ManagedUser, error) {
	if err := s.val.Struct(draft); err != nil {
		return ManagedUser{}, err
	}
	var updated ManagedUser
	err := s.mutate(ctx, func(st *State) (string, error) {
		i := indexByID(st.Users, id, func(u ManagedUser) string { return u.ID })
		if i < 0 {
			return "", ErrNotFound
		}
		current := st.Users[i]
		current.Name = strings.TrimSpace(draft.Name)
		current.Email = strings.TrimSpace(draft.Email)
		st.Users[i] = current
		updated = current
		return "Updated user: " + current.Name, nil
	})
	return updated, err
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *State) (string, error) {
		i := indexByID(st.Users, id, func(u ManagedUser) string { return u.ID })
		if i < 0 {
			return "", nil
		}
		name := st.Users[i].Name
		st.Users = append(st.Users[:i], st.Users[i+1:]...)
		return "Deleted user: " + name, nil
	})
}

// SetUserStatus applies a ban/activate transition. The only guard is that
// the target status exists; the activity entry is written even when the
// value did not change.
func (s *Store) SetUserStatus(ctx context.Context, id, status string) (ManagedUser, error) {
	if _, ok := userStatuses[status]; !ok {
		return ManagedUser{}, ErrInvalidStatus
	}
	var updated ManagedUser
	err := s.mutate(ctx, func(st *State) (string, error) {
		i := indexByID(st.Users, id, func(u ManagedUser) string { return u.ID })
		if i < 0 {
			return "", ErrNotFound
		}
		st.Users[i].Status = status
		updated = st.Users[i]
		return "Updated user status: " + updated.Name + " (" + status + ")", nil
	})
	return updated, err
}

func (s *Store) Users() []ManagedUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.state.Users)
}

// ---- blog posts ----

func (s *Store) CreatePost(ctx context.Context, draft PostDraft) (BlogPost, error) {
	if err := s.val.Struct(draft); err != nil {
		return BlogPost{}, err
	}
	post := BlogPost{
		ID:        s.newID(),
		Title:     strings.TrimSpace(draft.Title),
		Body:      draft.Body,
		Author:    strings.TrimSpace(draft.Author),
		Status:    draft.Status,
		CreatedAt: s.now(),
	}
	if post.Status == "" {
		post.Status = PostStatusDraft
	}
	err := s.mutate(ctx, func(st *State) (string, error) {
		st.Posts = append([]BlogPost{post}, st.Posts...)
		return "Created post: " + post.Title, nil
	})
	return post, err
}

func (s *Store) UpdatePost(ctx context.Context, id string, draft PostDraft) (BlogPost, error) {
	if err := s.val.Struct(draft); err != nil {
		return BlogPost{}, err
	}
	var updated BlogPost
	err := s.mutate(ctx, func(st *State) (string, error) {
		i := indexByID(st.Posts, id, func(p BlogPost) string { return p.ID })
		if i < 0 {
			return "", ErrNotFound
		}
		current := st.Posts[i]
		current.Title = strings.TrimSpace(draft.Title)
		current.Body = draft.Body
		current.Author = strings.TrimSpace(draft.Author)
		if draft.Status != "" {
			current.Status = draft.Status
		}
		st.Posts[i] = current
		updated = current
		return "Updated post: " + current.Title, nil
	})
	return updated, err
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *State) (string, error) {
		i := indexByID(st.Posts, id, func(p BlogPost) string { return p.ID })
		if i < 0 {
			return "", nil
		}
		title := st.Posts[i].Title
		st.Posts = append(st.Posts[:i], st.Posts[i+1:]...)
		return "Deleted post: " + title, nil
	})
}

func (s *Store) SetPostStatus(ctx context.Context, id, status string) (BlogPost, error) {
	if _, ok := postStatuses[status]; !ok {
		return BlogPost{}, ErrInvalidStatus
	}
	var updated BlogPost
	err := s.mutate(ctx, func(st *State) (string, error) {
		i := indexByID(st.Posts, id, func(p BlogPost) string { return p.ID })
		if i < 0 {
			return "", ErrNotFound
		}
		st.Posts[i].Status = status
		updated = st.Posts[i]
		return "Updated post status: " + updated.Title + " (" + status + ")", nil
	})
	return updated, err
}

func (s *Store) Posts() []BlogPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.state.Posts)
}

// ---- instructor requests ----

func (s *Store) CreateInstructorRequest(ctx context.Context, draft InstructorDraft) (InstructorRequest, error) {
	if err := s.val.Struct(draft); err != nil {
		return InstructorRequest{}, err
	}
	req := InstructorRequest{
		ID:          s.newID(),
		Name:        strings.TrimSpace(draft.Name),
		Email:       strings.TrimSpace(draft.Email),
		Expertise:   strings.TrimSpace(draft.Expertise),
		Status:      InstructorStatusPending,
		SubmittedAt: s.now(),
	}
	err := s.mutate(ctx, func(st *State) (string, error) {
		st.Instructors = append([]InstructorRequest{req}, st.Instructors...)
		return "Created instructor request: " + req.Name, nil
	})
	return req, err
}

func (s *Store) DeleteInstructorRequest(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *State) (string, error) {
		i := indexByID(st.Instructors, id, func(r InstructorRequest) string { return r.ID })
		if i < 0 {
			return "", nil
		}
		name := st.Instructors[i].Name
		st.Instructors = append(st.Instructors[:i], st.Instructors[i+1:]...)
		return "Deleted instructor request: " + name, nil
	})
}

func (s *Store) SetInstructorStatus(ctx context.Context, id, status string) (InstructorRequest, error) {
	if _, ok := instructorStatuses[status]; !ok {
		return InstructorRequest{}, ErrInvalidStatus
	}
	var updated InstructorRequest
	err := s.mutate(ctx, func(st *State) (string, error) {
		i := indexByID(st.Instructors, id, func(r InstructorRequest) string { return r.ID })
		if i < 0 {
			return "", ErrNotFound
		}
		st.Instructors[i].Status = status
		updated = st.Instructors[i]
		return "Updated instructor request status: " + updated.Name + " (" + status + ")", nil
	})
	return updated, err
}

func (s *Store) Instructors() []InstructorRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.state.Instructors)
}

// ---- categories ----

func (s *Store) CreateCategory(ctx context.Context, draft CategoryDraft) (Category, error) {
	if err := s.val.Struct(draft); err != nil {
		return Category{}, err
	}
	category := Category{
		ID:   s.newID(),
		Name: strings.TrimSpace(draft.Name),
	}
	err := s.mutate(ctx, func(st *State) (string, error) {
		category.Slug = uniqueCategorySlug(st.Categories, category.Name)
		st.Categories = append([]Category{category}, st.Categories...)
		return "Created category: " + category.Name, nil
	})
	return category, err
}

func (s *Store) UpdateCategory(ctx context.Context, id string, draft CategoryDraft) (Category, error) {
	if err := s.val.Struct(draft); err != nil {
		return Category{}, err
	}
	var updated Category
	err := s.mutate(ctx, func(st *State) (string, error) {
		i := indexByID(st.Categories, id, func(c Category) string { return c.ID })
		if i < 0 {
			return "", ErrNotFound
		}
		st.Categories[i].Name = strings.TrimSpace(draft.Name)
		updated = st.Categories[i]
		return "Updated category: " + updated.Name, nil
	})
	return updated, err
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *State) (string, error) {
		i := indexByID(st.Categories, id, func(c Category) string { return c.ID })
		if i < 0 {
			return "", nil
		}
		name := st.Categories[i].Name
		st.Categories = append(st.Categories[:i], st.Categories[i+1:]...)
		return "Deleted category: " + name, nil
	})
}

func (s *Store) Categories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.state.Categories)
}

// ---- transactions ----

func (s *Store) AppendTransaction(ctx context.Context, draft TransactionDraft) (Transaction, error) {
	if err := s.val.Struct(draft); err != nil {
		return Transaction{}, err
	}
	txn := Transaction{
		ID:           s.newID(),
		CourseTitle:  strings.TrimSpace(draft.CourseTitle),
		LearnerEmail: strings.TrimSpace(draft.LearnerEmail),
		Amount:       draft.Amount,
		Status:       draft.Status,
		CreatedAt:    s.now(),
	}
	if txn.Status == "" {
		txn.Status = TransactionStatusPaid
	}
	err := s.mutate(ctx, func(st *State) (string, error) {
		st.Transactions = append([]Transaction{txn}, st.Transactions...)
		return "Created transaction: " + txn.CourseTitle, nil
	})
	return txn, err
}

func (s *Store) SetTransactionStatus(ctx context.Context, id, status string) (Transaction, error) {
	if _, ok := transactionStatuses[status]; !ok {
		return Transaction{}, ErrInvalidStatus
	}
	var updated Transaction
	err := s.mutate(ctx, func(st *State) (string, error) {
		i := indexByID(st.Transactions, id, func(t Transaction) string { return t.ID })
		if i < 0 {
			return "", ErrNotFound
		}
		st.Transactions[i].Status = status
		updated = st.Transactions[i]
		return "Updated transaction status: " + updated.CourseTitle + " (" + status + ")", nil
	})
	return updated, err
}

func (s *Store) Transactions() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.state.Transactions)
}

// ---- activity ----

func (s *Store) Activity() []ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.state.Activity)
}
