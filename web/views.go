package web

import (
	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
)

// View is what every template receives. Data holds the page specific record.
type View struct {
	Title        string
	Path         string
	Lang         string
	Notification *pkg.Notification
	// AdminPage is "login" or "dashboard" on admin pages; admin.js opens the
	// session socket for it.
	AdminPage string
	// Collection is the collection the page lists. A content update for it
	// sends the tab to ReloadURL.
	Collection string
	ReloadURL  string
	// CSRFToken is rendered into every admin form.
	CSRFToken string
	Data      any
}

type HomeData struct {
	Stats    []Stat
	Features []Feature
	Courses  []Course
}

type AboutData struct {
	Values   []Feature
	Timeline []Milestone
	Team     []TeamMember
}

type AchievementsData struct {
	Items []models.Achievement
	Stats []Stat
}

type GalleryData struct {
	Images     []models.GalleryImage
	Categories []string
	Selected   string
	// Open is the image shown in the lightbox, if any.
	Open *models.GalleryImage
}

type ContactData struct {
	Info models.ContactInfo
	Form models.ContactMessageRequest
}

type InquiryData struct {
	Form      models.RegistrationRequest
	Submitted bool
	Classes   []string
	Subjects  []string
}

// Login modes of the admin page.
const (
	ModeSignIn = "signin"
	ModeSignUp = "signup"
)

type LoginData struct {
	Mode     string
	Email    string
	FullName string
}

// Dashboard tabs.
const (
	TabRegistrations = "registrations"
	TabGallery       = "gallery"
	TabAchievements  = "achievements"
	TabMessages      = "messages"
	TabSettings      = "settings"
)

// DashboardTabs in display order. The first one is the default.
var DashboardTabs = []string{TabRegistrations, TabGallery, TabAchievements, TabMessages, TabSettings}

// IsDashboardTab reports whether tab names a dashboard tab.
func IsDashboardTab(tab string) bool {
	for _, t := range DashboardTabs {
		if t == tab {
			return true
		}
	}
	return false
}

type DashboardData struct {
	Tab   string
	Tabs  []string
	Admin models.User

	Registrations     []models.Registration
	RegistrationCount int

	Gallery       []models.GalleryImage
	GalleryForm   models.GalleryImageRequest
	Categories    []string
	UploadEnabled bool

	Achievements    []models.Achievement
	AchievementForm models.AchievementRequest

	Messages []models.ContactMessage

	Settings models.ContactInfoRequest
}
