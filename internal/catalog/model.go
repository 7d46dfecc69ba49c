package catalog

import "time"

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"

	// LevelAll and CategoryAll are the "no filter" sentinels.
	LevelAll    = "all"
	CategoryAll = "all"
)

var validLevels = map[string]struct{}{
	LevelBeginner:     {},
	LevelIntermediate: {},
	LevelAdvanced:     {},
}

func IsValidLevel(value string) bool {
	_, ok := validLevels[value]
	return ok
}

type Lesson struct {
	Title           string `bson:"title" json:"title"`
	DurationMinutes int    `bson:"durationMinutes" json:"durationMinutes"`
	VideoURL        string `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
}

type Course struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	Slug            string    `bson:"slug" json:"slug"`
	Title           string    `bson:"title" json:"title"`
	Description     string    `bson:"description" json:"description"`
	Category        string    `bson:"category" json:"category"`
	Level           string    `bson:"level" json:"level"`
	Price           float64   `bson:"price" json:"price"`
	InstructorName  string    `bson:"instructorName" json:"instructorName"`
	Rating          float64   `bson:"rating" json:"rating"`
	ReviewCount     int       `bson:"reviewCount" json:"reviewCount"`
	EnrollmentCount int       `bson:"enrollmentCount" json:"enrollmentCount"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Lessons         []Lesson  `bson:"lessons" json:"lessons"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Criteria is one browsing session's filter state. Empty Query means no
// text filter; empty Category/Level are treated like the "all" sentinel.
type Criteria struct {
	Query    string
	Category string
	Level    string
}
