// ABOUTME: Demo accounts and hackathons for the local mock backend
// ABOUTME: Gives `hackctl mock-server` something to list, toggle and edit

package mockapi

import (
	"time"

	"github.com/saarthix/hackctl/internal/client"
)

// Demo account credentials created by Seed
const (
	DemoIndustryEmail    = "industry@acme.test"
	DemoIndustryPassword = "acme-demo"
	DemoApplicantEmail   = "student@campus.test"
)

// Seed fills the server with demo users, hackathons, applicants and
// notifications
func (s *Server) Seed() {
	industry := s.AddUser(User{
		Name:        "Acme Labs",
		CompanyName: "Acme Labs",
		Email:       DemoIndustryEmail,
		Password:    DemoIndustryPassword,
		UserType:    client.RoleIndustry,
	})
	s.AddUser(User{
		Name:     "Sam Student",
		Email:    DemoApplicantEmail,
		UserType: client.RoleApplicant,
	})

	limit := 200
	live := s.AddHackathon(client.Hackathon{
		Title:               "Green Grid Hack",
		Company:             "Acme Labs",
		Description:         "Build tools that cut campus energy use.",
		ProblemStatement:    "Predict building load from sensor data and suggest savings.",
		SkillsRequired:      "Python, Machine Learning, Data Science",
		Phases:              `[{"id":1,"name":"Idea","description":"One-page pitch","deadline":"2026-11-10","formats":["PDF"]},{"id":2,"name":"Prototype","description":"","deadline":"2026-11-24","formats":["Repository Link","Video"]}]`,
		ParticipationType:   "Both",
		Year:                "Any",
		StartDate:           "2026-11-01",
		EndDate:             "2026-11-30",
		Mode:                "Online",
		SubmissionProcedure: "Submit through the portal before each deadline.",
		ParticipantLimit:    &limit,
		TeamSize:            4,
		Prize:               "$5,000",
		Enabled:             true,
		CreatedByIndustryID: industry.ID,
		Views:               312,
	})
	s.AddHackathon(client.Hackathon{
		Title:               "Campus Mobility Sprint",
		Company:             "Acme Labs",
		Description:         "Draft posting for a weekend mobility challenge.",
		Phases:              `[{"id":1,"name":"Phase 1","description":"","deadline":"","formats":[]}]`,
		ParticipationType:   "TeamsOnly",
		Mode:                "Hybrid",
		CreatedByIndustryID: industry.ID,
	})
	s.AddHackathon(client.Hackathon{
		Title:             "Open Data Challenge",
		Company:           "City Council",
		Description:       "Make the city's open datasets useful to residents.",
		ProblemStatement:  "Visualise transit reliability.",
		ParticipationType: "IndividualsOnly",
		StartDate:         "2026-12-01",
		EndDate:           "2026-12-15",
		Mode:              "Offline",
		VenueLocation:     "City Hall, Room 4",
		Enabled:           true,
	})

	now := time.Now().UTC()
	s.AddApplicant(live.ID, client.Applicant{
		AsTeam:   true,
		TeamName: "Watt Wizards",
		TeamSize: 3,
		TeamMembers: []client.TeamMember{
			{Name: "Priya", Email: "priya@campus.test"},
			{Name: "Leo", Email: "leo@campus.test"},
			{Name: "Mina", Email: "mina@campus.test"},
		},
		AppliedAt: now.Add(-50 * time.Hour),
	})
	s.AddApplicant(live.ID, client.Applicant{AppliedAt: now.Add(-3 * time.Hour)})

	s.AddNotification(DemoIndustryEmail, client.Notification{
		Title:     "New application",
		Message:   "Watt Wizards applied to Green Grid Hack",
		Type:      "APPLICATION",
		CreatedAt: now.Add(-50 * time.Hour),
	})
	s.AddNotification(DemoIndustryEmail, client.Notification{
		Title:     "New application",
		Message:   "An individual applied to Green Grid Hack",
		Type:      "APPLICATION",
		CreatedAt: now.Add(-3 * time.Hour),
	})
}
