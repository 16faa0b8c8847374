package web

// Stat is a figure in a stats strip.
type Stat struct {
	Value string
	Label string
}

// Feature is a selling point on the home page.
type Feature struct {
	Title       string
	Description string
}

// Course is a programme card on the home page.
type Course struct {
	Name     string
	Students string
	Icon     string
}

// Milestone is one step of the about page timeline.
type Milestone struct {
	Year        string
	Event       string
	Description string
}

// TeamMember is a faculty card on the about page.
type TeamMember struct {
	Name    string
	Role    string
	Subject string
}

// NavLink is a navigation entry.
type NavLink struct {
	Href  string
	Label string
}

var NavLinks = []NavLink{
	{Href: "/", Label: "Home"},
	{Href: "/about", Label: "About"},
	{Href: "/achievements", Label: "Achievements"},
	{Href: "/gallery", Label: "Gallery"},
	{Href: "/contact", Label: "Contact"},
}

var FooterLinks = []NavLink{
	{Href: "/about", Label: "About Us"},
	{Href: "/achievements", Label: "Our Achievements"},
	{Href: "/gallery", Label: "Photo Gallery"},
	{Href: "/contact", Label: "Contact Us"},
	{Href: "/inquiry", Label: "Admission Inquiry"},
}

var HomeStats = []Stat{
	{Value: "5000+", Label: "Students Taught"},
	{Value: "98%", Label: "Success Rate"},
	{Value: "15+", Label: "Years Experience"},
	{Value: "4.9", Label: "Rating"},
}

var Features = []Feature{
	{
		Title:       "Expert Faculty",
		Description: "Learn from experienced teachers with proven track records in board examinations.",
	},
	{
		Title:       "Personalized Attention",
		Description: "Small batch sizes ensure every student receives individual guidance and support.",
	},
	{
		Title:       "Proven Results",
		Description: "Consistently producing top rankers in board exams and competitive examinations.",
	},
}

var Courses = []Course{
	{Name: "Class 6-8 Foundation", Students: "500+", Icon: "📚"},
	{Name: "Class 9-10 Board Prep", Students: "800+", Icon: "📖"},
	{Name: "Class 11-12 Science", Students: "600+", Icon: "🔬"},
	{Name: "Class 11-12 Commerce", Students: "400+", Icon: "📊"},
}

var Values = []Feature{
	{Title: "Excellence", Description: "We strive for excellence in everything we do, from curriculum design to student support."},
	{Title: "Care", Description: "Every student is unique, and we provide the individual attention they deserve."},
	{Title: "Innovation", Description: "We continuously evolve our teaching methods to stay relevant and effective."},
	{Title: "Community", Description: "We build a supportive learning community where students thrive together."},
}

var Timeline = []Milestone{
	{Year: "2010", Event: "TutorzIndia Founded", Description: "Started with a vision to transform education"},
	{Year: "2013", Event: "First 100 Students", Description: "Reached our first milestone of 100 students"},
	{Year: "2016", Event: "Expansion", Description: "Opened new branches and expanded course offerings"},
	{Year: "2019", Event: "Digital Integration", Description: "Launched online learning platform"},
	{Year: "2023", Event: "5000+ Alumni", Description: "Celebrating our growing community of successful students"},
}

var Team = []TeamMember{
	{Name: "Dr. Rajesh Kumar", Role: "Founder & Director", Subject: "Physics"},
	{Name: "Mrs. Priya Sharma", Role: "Academic Head", Subject: "Mathematics"},
	{Name: "Mr. Amit Verma", Role: "Senior Faculty", Subject: "Chemistry"},
	{Name: "Mrs. Sunita Patel", Role: "Senior Faculty", Subject: "Biology"},
}

var AchievementStats = []Stat{
	{Value: "500+", Label: "90%+ Scorers"},
	{Value: "50+", Label: "Board Toppers"},
	{Value: "200+", Label: "Competitive Exam Selections"},
	{Value: "15+", Label: "Years of Excellence"},
}
