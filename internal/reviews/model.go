package reviews

import "time"

// Review is a learner's public rating of a course.
type Review struct {
	ID        string    `bson:"_id" json:"id"`
	CourseID  string    `bson:"courseId" json:"courseId"`
	Name      string    `bson:"name" json:"name"`
	Rating    int       `bson:"rating" json:"rating"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type CreateRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Message string `json:"message" validate:"required,max=2000"`
}
