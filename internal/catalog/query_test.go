package catalog

import (
	"reflect"
	"testing"
)

func sampleCourses() []Course {
	return []Course{
		{ID: "1", Title: "X", Description: "Design fundamentals", InstructorName: "Ada", Category: "Design", Level: LevelBeginner, Price: 20, EnrollmentCount: 10},
		{ID: "2", Title: "Y", Description: "Advanced web APIs", InstructorName: "Grace", Category: "Web", Level: LevelAdvanced, Price: 50, EnrollmentCount: 40},
		{ID: "3", Title: "Z", Description: "Intro to data", InstructorName: "Alan", Category: "Data", Level: LevelBeginner, Price: 30, EnrollmentCount: 25},
		{ID: "4", Title: "W", Description: "More web things", InstructorName: "Ada", Category: "Web", Level: LevelIntermediate, Price: 10, EnrollmentCount: 100},
	}
}

func TestEvaluateIdentity(t *testing.T) {
	courses := sampleCourses()
	result := Evaluate(Criteria{Query: "", Category: CategoryAll, Level: LevelAll}, courses)
	if !reflect.DeepEqual(result, courses) {
		t.Fatalf("identity criteria changed the collection: %v", result)
	}
}

func TestEvaluateQueryMatch(t *testing.T) {
	courses := []Course{
		{ID: "1", Title: "X", Category: "Design", Level: LevelBeginner},
		{ID: "2", Title: "Y", Category: "Web", Level: LevelAdvanced},
	}
	result := Evaluate(Criteria{Query: "x", Category: CategoryAll, Level: LevelAll}, courses)
	if len(result) != 1 || result[0].ID != "1" {
		t.Fatalf("expected only course 1, got %v", result)
	}
}

func TestEvaluateMatchesInstructorAndDescription(t *testing.T) {
	courses := sampleCourses()

	result := Evaluate(Criteria{Query: "ada"}, courses)
	if len(result) != 2 || result[0].ID != "1" || result[1].ID != "4" {
		t.Fatalf("instructor match failed: %v", result)
	}

	result = Evaluate(Criteria{Query: "intro"}, courses)
	if len(result) != 1 || result[0].ID != "3" {
		t.Fatalf("description match failed: %v", result)
	}
}

func TestEvaluateCategoryAndLevel(t *testing.T) {
	courses := sampleCourses()

	result := Evaluate(Criteria{Category: "Web"}, courses)
	if len(result) != 2 || result[0].ID != "2" || result[1].ID != "4" {
		t.Fatalf("category filter failed: %v", result)
	}

	result = Evaluate(Criteria{Category: "Web", Level: LevelAdvanced}, courses)
	if len(result) != 1 || result[0].ID != "2" {
		t.Fatalf("combined filter failed: %v", result)
	}
}

func TestEvaluatePreservesOrder(t *testing.T) {
	courses := sampleCourses()
	result := Evaluate(Criteria{Level: LevelBeginner}, courses)
	if len(result) != 2 {
		t.Fatalf("expected 2 beginner courses, got %d", len(result))
	}
	if result[0].ID != "1" || result[1].ID != "3" {
		t.Fatalf("relative order not preserved: %v", result)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	courses := sampleCourses()
	criteria := Criteria{Query: "web", Level: LevelAll}
	once := Evaluate(criteria, courses)
	twice := Evaluate(criteria, once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filtering is not idempotent: %v vs %v", once, twice)
	}
}

func TestCategoriesDistinctLive(t *testing.T) {
	categories := Categories(sampleCourses())
	expected := []string{"Design", "Web", "Data"}
	if !reflect.DeepEqual(categories, expected) {
		t.Fatalf("expected %v, got %v", expected, categories)
	}

	if got := Categories(nil); len(got) != 0 {
		t.Fatalf("expected no categories for empty collection, got %v", got)
	}
}

func TestPaginateWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	page := Paginate(items, 2, 5)
	if !reflect.DeepEqual(page, []int{6, 7}) {
		t.Fatalf("expected [6 7], got %v", page)
	}
}

func TestPaginatePastEnd(t *testing.T) {
	items := []int{1, 2, 3}
	page := Paginate(items, 4, 5)
	if len(page) != 0 {
		t.Fatalf("expected empty page past the end, got %v", page)
	}
}

func TestPaginateWindowsReconstruct(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	size := 4
	var joined []int
	for page := 1; ; page++ {
		window := Paginate(items, page, size)
		if len(window) == 0 {
			break
		}
		joined = append(joined, window...)
	}
	if !reflect.DeepEqual(joined, items) {
		t.Fatalf("windows do not reconstruct the input: %v", joined)
	}
}

func TestHasNext(t *testing.T) {
	if HasNext(2, 5, 7) {
		t.Fatalf("page 2 of 7 items at size 5 should be the last")
	}
	if !HasNext(1, 5, 7) {
		t.Fatalf("page 1 of 7 items at size 5 should have a next page")
	}
	if HasNext(1, 5, 5) {
		t.Fatalf("exact fit should not have a next page")
	}
}

func TestSortByEnrollment(t *testing.T) {
	sorted := SortByEnrollment(sampleCourses())
	if sorted[0].ID != "4" || sorted[1].ID != "2" {
		t.Fatalf("unexpected enrollment order: %v", sorted)
	}
}

func TestSortByRevenue(t *testing.T) {
	courses := sampleCourses()
	sorted := SortByRevenue(courses)
	// 2: 50*40=2000, 4: 10*100=1000, 3: 30*25=750, 1: 20*10=200
	if sorted[0].ID != "2" || sorted[1].ID != "4" || sorted[2].ID != "3" {
		t.Fatalf("unexpected revenue order: %v", sorted)
	}
	if courses[0].ID != "1" {
		t.Fatalf("sort mutated the source collection")
	}
}
