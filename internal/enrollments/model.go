package enrollments

import "time"

// Enrollment keeps a denormalized course title: it is a record of what
// was bought at the time, not a live reference.
type Enrollment struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	CourseID    string    `bson:"courseId" json:"courseId"`
	CourseTitle string    `bson:"courseTitle" json:"courseTitle"`
	Email       string    `bson:"email" json:"email"`
	Amount      float64   `bson:"amount" json:"amount"`
	OrderID     string    `bson:"orderId" json:"orderId"`
	PaymentID   string    `bson:"paymentId" json:"paymentId"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
