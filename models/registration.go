package models

import "time"

// Registration is a student inquiry submitted from the public inquiry page.
// Rows are insert-only.
type Registration struct {
	ID          string    `json:"id"`
	StudentName string    `json:"student_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	ParentName  string    `json:"parent_name"`
	Class       string    `json:"class"`
	Subject     string    `json:"subject"`
	Address     string    `json:"address"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// RegistrationRequest is the inquiry form.
type RegistrationRequest struct {
	StudentName string `json:"student_name" form:"student_name" label:"Student name" validate:"required"`
	Phone       string `json:"phone" form:"phone" label:"Phone" validate:"required"`
	Email       string `json:"email" form:"email" label:"Email" validate:"required,email"`
	ParentName  string `json:"parent_name" form:"parent_name" label:"Parent name"`
	Class       string `json:"class" form:"class" label:"Class" validate:"required"`
	Subject     string `json:"subject" form:"subject" label:"Subject"`
	Address     string `json:"address" form:"address" label:"Address"`
	Message     string `json:"message" form:"message" label:"Message"`
}

// Validate checks that student name, phone, email and class are present.
func (r *RegistrationRequest) Validate() error {
	return validateForm(r)
}

// ToRegistration copies the form into a new, not yet stored row.
func (r *RegistrationRequest) ToRegistration() *Registration {
	return &Registration{
		StudentName: r.StudentName,
		Email:       r.Email,
		Phone:       r.Phone,
		ParentName:  r.ParentName,
		Class:       r.Class,
		Subject:     r.Subject,
		Address:     r.Address,
		Message:     r.Message,
	}
}

// ClassOptions are the classes offered on the inquiry form.
var ClassOptions = []string{
	"Class 6",
	"Class 7",
	"Class 8",
	"Class 9",
	"Class 10",
	"Class 11 Science",
	"Class 11 Commerce",
	"Class 12 Science",
	"Class 12 Commerce",
}

// SubjectOptions are the subjects offered on the inquiry form.
var SubjectOptions = []string{
	"All Subjects",
	"Mathematics",
	"Physics",
	"Chemistry",
	"Biology",
	"English",
	"Accounts",
	"Economics",
}
