package models

import "time"

// Achievement is a student success story.
type Achievement struct {
	ID          string    `json:"id"`
	StudentName string    `json:"student_name"`
	Achievement string    `json:"achievement"`
	Year        *string   `json:"year"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// AchievementRequest is the admin "add achievement" form.
type AchievementRequest struct {
	StudentName string `json:"student_name" form:"student_name" label:"Student name" validate:"required"`
	Achievement string `json:"achievement" form:"achievement" label:"Achievement" validate:"required"`
	Year        string `json:"year" form:"year" label:"Year"`
	Description string `json:"description" form:"description" label:"Description"`
	ImageURL    string `json:"image_url" form:"image_url" label:"Image URL"`
}

// Validate checks that student name and achievement are present.
func (r *AchievementRequest) Validate() error {
	return validateForm(r)
}

// ToAchievement copies the form into a new row. Blank optional fields are stored as NULL.
func (r *AchievementRequest) ToAchievement() *Achievement {
	return &Achievement{
		StudentName: r.StudentName,
		Achievement: r.Achievement,
		Year:        optional(r.Year),
		Description: optional(r.Description),
		ImageURL:    optional(r.ImageURL),
	}
}
