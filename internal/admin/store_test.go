package admin

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"skillforge-backend/internal/validation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) (*Store, *MemoryStore) {
	t.Helper()
	mem := NewMemoryStore()
	store := NewStore(mem, NoDelay{}, validation.New(), testLogger())
	store.Load(context.Background())
	return store, mem
}

func validCourseDraft() CourseDraft {
	return CourseDraft{
		Title:          "Test Course",
		Description:    "A course for testing.",
		Category:       "Web",
		Level:          "beginner",
		Price:          25,
		InstructorName: "Priya Nair",
	}
}

func TestCreateCoursePrependsAndLogs(t *testing.T) {
	store, mem := newTestStore(t)
	before := len(store.Courses())

	course, err := store.CreateCourse(context.Background(), validCourseDraft())
	if err != nil {
		t.Fatalf("CreateCourse error: %v", err)
	}
	if course.ID == "" {
		t.Fatalf("expected a generated id")
	}
	if course.Status != CourseStatusDraft {
		t.Fatalf("expected default draft status, got %q", course.Status)
	}

	courses := store.Courses()
	if len(courses) != before+1 {
		t.Fatalf("expected %d courses, got %d", before+1, len(courses))
	}
	if courses[0].ID != course.ID {
		t.Fatalf("new course should be first, got %q", courses[0].ID)
	}

	activity := store.Activity()
	if len(activity) == 0 || activity[0].Message != "Created course: Test Course" {
		t.Fatalf("unexpected activity: %v", activity)
	}
	if mem.Saves() != 1 {
		t.Fatalf("expected one snapshot save, got %d", mem.Saves())
	}
}

func TestCreateCourseBlankTitleMutatesNothing(t *testing.T) {
	store, mem := newTestStore(t)
	before := store.Courses()

	draft := validCourseDraft()
	draft.Title = ""
	if _, err := store.CreateCourse(context.Background(), draft); err == nil {
		t.Fatalf("expected validation error")
	}

	if !reflect.DeepEqual(store.Courses(), before) {
		t.Fatalf("collection changed on failed create")
	}
	if len(store.Activity()) != 0 {
		t.Fatalf("activity logged on failed create")
	}
	if mem.Saves() != 0 {
		t.Fatalf("snapshot written on failed create")
	}
}

func TestCreateThenDeleteRestoresCollection(t *testing.T) {
	store, _ := newTestStore(t)
	before := store.Courses()

	course, err := store.CreateCourse(context.Background(), validCourseDraft())
	if err != nil {
		t.Fatalf("CreateCourse error: %v", err)
	}
	if err := store.DeleteCourse(context.Background(), course.ID); err != nil {
		t.Fatalf("DeleteCourse error: %v", err)
	}

	if !reflect.DeepEqual(store.Courses(), before) {
		t.Fatalf("create+delete did not restore the collection")
	}
	if len(store.Activity()) != 2 {
		t.Fatalf("expected 2 activity entries, got %d", len(store.Activity()))
	}
}

func TestUpdateUnknownIDIsSafeNoOp(t *testing.T) {
	store, mem := newTestStore(t)
	before := store.Courses()

	_, err := store.UpdateCourse(context.Background(), "missing", validCourseDraft())
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !reflect.DeepEqual(store.Courses(), before) {
		t.Fatalf("collection changed on unknown-id update")
	}
	if mem.Saves() != 0 {
		t.Fatalf("snapshot written on unknown-id update")
	}
}

func TestUpdatePreservesOrder(t *testing.T) {
	store, _ := newTestStore(t)
	courses := store.Courses()
	target := courses[len(courses)-1]

	draft := validCourseDraft()
	draft.Title = "Renamed"
	updated, err := store.UpdateCourse(context.Background(), target.ID, draft)
	if err != nil {
		t.Fatalf("UpdateCourse error: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("expected renamed record, got %q", updated.Title)
	}

	after := store.Courses()
	if after[len(after)-1].ID != target.ID {
		t.Fatalf("update reordered the collection")
	}
}

func TestDeleteAbsentIDIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	before := store.Courses()

	if err := store.DeleteCourse(context.Background(), "missing"); err != nil {
		t.Fatalf("DeleteCourse error: %v", err)
	}
	if !reflect.DeepEqual(store.Courses(), before) {
		t.Fatalf("collection changed on absent-id delete")
	}
	if len(store.Activity()) != 0 {
		t.Fatalf("activity logged for absent-id delete")
	}
}

func TestSetStatusAlwaysLogs(t *testing.T) {
	store, _ := newTestStore(t)
	user := store.Users()[0]
	if user.Status != UserStatusActive {
		t.Fatalf("expected an active default user")
	}

	// Same value again: the transition still logs.
	if _, err := store.SetUserStatus(context.Background(), user.ID, UserStatusActive); err != nil {
		t.Fatalf("SetUserStatus error: %v", err)
	}
	if _, err := store.SetUserStatus(context.Background(), user.ID, UserStatusBanned); err != nil {
		t.Fatalf("SetUserStatus error: %v", err)
	}

	if len(store.Activity()) != 2 {
		t.Fatalf("expected 2 activity entries, got %d", len(store.Activity()))
	}
	if store.Users()[0].Status != UserStatusBanned {
		t.Fatalf("status not applied")
	}
}

func TestSetStatusRejectsUnknownTarget(t *testing.T) {
	store, _ := newTestStore(t)
	user := store.Users()[0]

	if _, err := store.SetUserStatus(context.Background(), user.ID, "suspended"); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if len(store.Activity()) != 0 {
		t.Fatalf("activity logged for invalid status")
	}
}

func TestActivityCapped(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	user := store.Users()[0]
	for i := 0; i < activityCap+10; i++ {
		if _, err := store.SetUserStatus(ctx, user.ID, UserStatusActive); err != nil {
			t.Fatalf("SetUserStatus error: %v", err)
		}
	}

	if len(store.Activity()) != activityCap {
		t.Fatalf("expected %d entries, got %d", activityCap, len(store.Activity()))
	}
}

func TestLoadMalformedSnapshotFallsBack(t *testing.T) {
	mem := NewMemoryStore()
	mem.Seed([]byte("{not json"))

	store := NewStore(mem, NoDelay{}, validation.New(), testLogger())
	store.Load(context.Background())

	defaults := DefaultState()
	if len(store.Courses()) != len(defaults.Courses) {
		t.Fatalf("malformed snapshot did not fall back to defaults")
	}
}

func TestLoadRestoresSnapshot(t *testing.T) {
	first, mem := newTestStore(t)
	if _, err := first.CreateCourse(context.Background(), validCourseDraft()); err != nil {
		t.Fatalf("CreateCourse error: %v", err)
	}

	second := NewStore(mem, NoDelay{}, validation.New(), testLogger())
	second.Load(context.Background())

	if !reflect.DeepEqual(second.Courses(), first.Courses()) {
		t.Fatalf("reload did not restore persisted state")
	}
}

func TestSnapshotIsFullState(t *testing.T) {
	store, mem := newTestStore(t)
	if _, err := store.CreatePost(context.Background(), PostDraft{Title: "T", Body: "B"}); err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}

	data, ok, err := mem.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("snapshot missing: %v", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatalf("snapshot not valid json: %v", err)
	}
	if len(state.Courses) == 0 || len(state.Posts) == 0 || len(state.Activity) == 0 {
		t.Fatalf("snapshot is not the full state: %+v", state)
	}
}
