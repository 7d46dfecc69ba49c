package catalog

import (
	"sort"
	"strings"
)

const DefaultPageSize = 5

// Evaluate returns the courses matching the criteria, preserving the
// source collection's relative order. Matching is boolean: the text query
// is a case-insensitive substring scan over title, description and
// instructor name; category and level are exact matches unless set to the
// "all" sentinel.
func Evaluate(criteria Criteria, courses []Course) []Course {
	query := strings.ToLower(strings.TrimSpace(criteria.Query))
	category := strings.TrimSpace(criteria.Category)
	level := strings.TrimSpace(criteria.Level)

	matched := make([]Course, 0, len(courses))
	for _, course := range courses {
		if query != "" {
			haystack := strings.ToLower(course.Title + " " + course.Description + " " + course.InstructorName)
			if !strings.Contains(haystack, query) {
				continue
			}
		}
		if category != "" && category != CategoryAll && course.Category != category {
			continue
		}
		if level != "" && level != LevelAll && course.Level != level {
			continue
		}
		matched = append(matched, course)
	}
	return matched
}

// Categories lists the distinct categories present in the collection, in
// first-seen order, so filter options always reflect the live data.
func Categories(courses []Course) []string {
	seen := make(map[string]struct{}, len(courses))
	categories := make([]string, 0)
	for _, course := range courses {
		if course.Category == "" {
			continue
		}
		if _, ok := seen[course.Category]; ok {
			continue
		}
		seen[course.Category] = struct{}{}
		categories = append(categories, course.Category)
	}
	return categories
}

// Paginate returns the 1-based page window. Pages past the end are an
// empty slice, not an error.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// HasNext reports whether another page exists after the given one.
func HasNext(page, size, total int) bool {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	return page*size < total
}

// SortByEnrollment returns a copy ordered by enrollment count descending.
func SortByEnrollment(courses []Course) []Course {
	sorted := make([]Course, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EnrollmentCount > sorted[j].EnrollmentCount
	})
	return sorted
}

// SortByRevenue returns a copy ordered by price x enrollments descending.
func SortByRevenue(courses []Course) []Course {
	sorted := make([]Course, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return revenue(sorted[i]) > revenue(sorted[j])
	})
	return sorted
}

func revenue(c Course) float64 {
	return c.Price * float64(c.EnrollmentCount)
}
