// ABOUTME: Wire types exchanged with the jobs backend
// ABOUTME: Hackathon records, serialized drafts, applicants, notifications and auth payloads

package client

import "time"

// Role values reported by /auth/me
const (
	RoleIndustry  = "INDUSTRY"
	RoleApplicant = "APPLICANT"
)

// AuthMe is the /auth/me response. Authenticated is a pointer because
// only an explicit false means "not authenticated".
type AuthMe struct {
	Authenticated *bool  `json:"authenticated"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Picture       string `json:"picture"`
	UserType      string `json:"userType"`
}

// IsAuthenticated reports whether the body affirms authentication
func (m AuthMe) IsAuthenticated() bool {
	return m.Authenticated == nil || *m.Authenticated
}

// IndustryUser is the user record returned by industry login
type IndustryUser struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName,omitempty"`
	UserType    string `json:"userType"`
}

// LoginResponse is the industry login result. Token is set only by
// backends that issue a JWT on password login.
type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    IndustryUser `json:"user"`
	Token   string       `json:"token,omitempty"`
}

// Hackathon is a hackathon record as the backend stores it
type Hackathon struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Company             string `json:"company"`
	Prize               string `json:"prize"`
	TeamSize            int    `json:"teamSize"`
	SubmissionURL       string `json:"submissionUrl"`
	CreatedByIndustryID string `json:"createdByIndustryId"`
	Views               int    `json:"views"`
	StartDate           string `json:"startDate"`
	EndDate             string `json:"endDate"`
	Mode                string `json:"mode"`
	Requirements        string `json:"requirements"`
	Instructions        string `json:"instructions"`
	Enabled             bool   `json:"enabled"`
	ProblemStatement    string `json:"problemStatement"`
	SkillsRequired      string `json:"skillsRequired"`
	EligibilityCriteria string `json:"eligibilityCriteria"`
	ParticipationType   string `json:"participationType"`
	CourseBranch        string `json:"courseBranch"`
	Year                string `json:"year"`
	VenueLocation       string `json:"venueLocation"`
	VenueTime           string `json:"venueTime"`
	SubmissionProcedure string `json:"submissionProcedure"`
	ParticipantLimit    *int   `json:"participantLimit"`
	Phases              string `json:"phases"`
}

// HackathonInput is the POST/PUT body for a hackathon. Optional fields are
// pointers so a strict payload can send null while a lenient one sends "".
type HackathonInput struct {
	Title               string  `json:"title"`
	Company             string  `json:"company"`
	Description         string  `json:"description"`
	ProblemStatement    string  `json:"problemStatement"`
	SkillsRequired      *string `json:"skillsRequired"`
	Phases              string  `json:"phases"`
	EligibilityCriteria *string `json:"eligibilityCriteria"`
	ParticipationType   string  `json:"participationType"`
	CourseBranch        *string `json:"courseBranch"`
	Year                *string `json:"year"`
	StartDate           string  `json:"startDate"`
	EndDate             string  `json:"endDate"`
	Mode                string  `json:"mode"`
	VenueLocation       *string `json:"venueLocation"`
	VenueTime           *string `json:"venueTime"`
	SubmissionProcedure *string `json:"submissionProcedure"`
	Requirements        *string `json:"requirements"`
	SubmissionURL       *string `json:"submissionUrl"`
	ParticipantLimit    *int    `json:"participantLimit"`
	TeamSize            int     `json:"teamSize"`
	Prize               *string `json:"prize"`
	Enabled             bool    `json:"enabled"`
}

// TeamMember is one member of a team application
type TeamMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Applicant is one application to a hackathon
type Applicant struct {
	ID          string       `json:"id"`
	AsTeam      bool         `json:"asTeam"`
	TeamName    string       `json:"teamName,omitempty"`
	TeamSize    int          `json:"teamSize,omitempty"`
	TeamMembers []TeamMember `json:"teamMembers,omitempty"`
	AppliedAt   time.Time    `json:"appliedAt"`
}

// Notification is an in-app notification for the current user
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
