package admin

import (
	"time"

	"skillforge-backend/internal/utils"
)

func uniqueCategorySlug(existing []Category, name string) string {
	return utils.UniqueSlug(name, func(candidate string) bool {
		for _, c := range existing {
			if c.Slug == candidate {
				return true
			}
		}
		return false
	})
}

// DefaultState is the fixed per-collection dataset used when no snapshot
// exists or the stored one cannot be read.
func DefaultState() State {
	seeded := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

	return State{
		Courses: []Course{
			{ID: "crs-001", Title: "Modern Web Development", Description: "HTML, CSS and JavaScript from scratch.", Category: "Web", Level: "beginner", Price: 49, InstructorName: "Priya Nair", EnrollmentCount: 812, Status: CourseStatusPublished, CreatedAt: seeded},
			{ID: "crs-002", Title: "UI Design Essentials", Description: "Layout, color and typography for product teams.", Category: "Design", Level: "beginner", Price: 39, InstructorName: "Marco Silva", EnrollmentCount: 431, Status: CourseStatusPublished, CreatedAt: seeded},
			{ID: "crs-003", Title: "Data Analysis with Spreadsheets", Description: "Practical analysis without writing code.", Category: "Data", Level: "intermediate", Price: 59, InstructorName: "Priya Nair", EnrollmentCount: 268, Status: CourseStatusPublished, CreatedAt: seeded},
			{ID: "crs-004", Title: "Advanced API Architecture", Description: "Designing and versioning production APIs.", Category: "Web", Level: "advanced", Price: 89, InstructorName: "Tomasz Kowalski", EnrollmentCount: 120, Status: CourseStatusDraft, CreatedAt: seeded},
		},
		Users: []ManagedUser{
			{ID: "usr-001", Name: "Alice Mensah", Email: "alice@example.com", Status: UserStatusActive, JoinedAt: seeded},
			{ID: "usr-002", Name: "Bo Lindqvist", Email: "bo@example.com", Status: UserStatusActive, JoinedAt: seeded},
			{ID: "usr-003", Name: "Chinwe Obi", Email: "chinwe@example.com", Status: UserStatusBanned, JoinedAt: seeded},
		},
		Posts: []BlogPost{
			{ID: "pst-001", Title: "Welcome to SkillForge", Body: "What we are building and why.", Author: "Team", Status: PostStatusPublished, CreatedAt: seeded},
			{ID: "pst-002", Title: "How we pick instructors", Body: "Our review process, in the open.", Author: "Team", Status: PostStatusDraft, CreatedAt: seeded},
		},
		Instructors: []InstructorRequest{
			{ID: "ins-001", Name: "Dana Petrescu", Email: "dana@example.com", Expertise: "Cloud infrastructure", Status: InstructorStatusPending, SubmittedAt: seeded},
			{ID: "ins-002", Name: "Elif Demir", Email: "elif@example.com", Expertise: "Product design", Status: InstructorStatusVerified, SubmittedAt: seeded},
		},
		Categories: []Category{
			{ID: "cat-001", Name: "Web", Slug: "web", CourseCount: 2},
			{ID: "cat-002", Name: "Design", Slug: "design", CourseCount: 1},
			{ID: "cat-003", Name: "Data", Slug: "data", CourseCount: 1},
		},
		Transactions: []Transaction{
			{ID: "txn-001", CourseTitle: "Modern Web Development", LearnerEmail: "alice@example.com", Amount: 49, Status: TransactionStatusPaid, CreatedAt: seeded},
			{ID: "txn-002", CourseTitle: "UI Design Essentials", LearnerEmail: "bo@example.com", Amount: 39, Status: TransactionStatusRefunded, CreatedAt: seeded},
		},
		Activity: []ActivityEntry{},
	}
}
