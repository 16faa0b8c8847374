package services

import "github.com/tutorzindia/site/models"

// Collections shown when the backend has nothing or cannot be reached.

func str(s string) *string { return &s }

// DefaultAchievements are shown on the achievements page with an empty table.
func DefaultAchievements() []models.Achievement {
	a := func(n, name, achievement, year, description string) models.Achievement {
		return models.Achievement{
			ID:          "default-achievement-" + n,
			StudentName: name,
			Achievement: achievement,
			Year:        str(year),
			Description: str(description),
		}
	}
	return []models.Achievement{
		a("1", "Priya Sharma", "CBSE Board Topper - 99.2%", "2023",
			"Secured highest marks in the district for Class 12 CBSE Board Examinations."),
		a("2", "Rahul Verma", "JEE Main AIR 156", "2023",
			"Cracked JEE Main with an All India Rank of 156, securing admission to IIT Delhi."),
		a("3", "Ananya Patel", "NEET Score 695/720", "2023",
			"Outstanding performance in NEET with 695 marks, now studying at AIIMS Delhi."),
		a("4", "Vikram Singh", "State Science Olympiad Gold", "2022",
			"Won gold medal in State Level Science Olympiad competition."),
		a("5", "Sneha Reddy", "CA Foundation - AIR 28", "2023",
			"Achieved All India Rank 28 in CA Foundation examination."),
		a("6", "Arjun Mehta", "ICSE Topper - 98.4%", "2023",
			"School topper with exceptional performance in all subjects."),
	}
}

// DefaultGalleryImages are shown on the gallery page with an empty table.
func DefaultGalleryImages() []models.GalleryImage {
	img := func(n, title, category string) models.GalleryImage {
		return models.GalleryImage{
			ID:       "default-image-" + n,
			Title:    title,
			ImageURL: "/static/placeholder.svg",
			Category: str(category),
		}
	}
	return []models.GalleryImage{
		img("1", "Classroom Session", "classroom"),
		img("2", "Science Lab", "lab"),
		img("3", "Annual Day Celebration", "events"),
		img("4", "Award Ceremony", "events"),
		img("5", "Study Hall", "classroom"),
		img("6", "Sports Day", "events"),
	}
}

// DefaultContactInfo fills any blank field of the stored contact details.
func DefaultContactInfo() models.ContactInfo {
	return models.ContactInfo{
		Phone:    "+91 9876543210",
		Email:    "info@tutorzindia.org",
		Address:  "123 Education Street, Knowledge City, India",
		WhatsApp: "+91 9876543210",
	}
}
