package notifications

import (
	"bytes"
	"fmt"
	"html/template"

	"skillforge-backend/internal/catalog"
	"skillforge-backend/internal/enrollments"
)

const enrollmentConfirmationTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Hi,</p>
  <p>Your enrollment is confirmed. Here are the details:</p>
  <ul>
    <li>Course: {{.CourseTitle}}</li>
    <li>Instructor: {{.Instructor}}</li>
    <li>Level: {{.Level}}</li>
    <li>Lessons: {{.LessonCount}}</li>
    <li>Amount paid: {{.Amount}}</li>
    <li>Order number: {{.OrderID}}</li>
  </ul>
  <p>You can start learning right away from your dashboard.</p>
  <p>Happy learning!</p>
</body>
</html>`

var enrollmentConfirmationTmpl = template.Must(template.New("enrollment_confirmation").Parse(enrollmentConfirmationTemplate))

type enrollmentConfirmationData struct {
	CourseTitle string
	Instructor  string
	Level       string
	LessonCount int
	Amount      string
	OrderID     string
}

func buildEnrollmentConfirmationHTML(enr enrollments.Enrollment, course catalog.Course) (string, error) {
	data := enrollmentConfirmationData{
		CourseTitle: course.Title,
		Instructor:  course.InstructorName,
		Level:       course.Level,
		LessonCount: len(course.Lessons),
		Amount:      fmt.Sprintf("%.2f", enr.Amount),
		OrderID:     enr.OrderID,
	}
	var buf bytes.Buffer
	if err := enrollmentConfirmationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
