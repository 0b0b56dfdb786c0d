// ABOUTME: Editable hackathon draft with ordered skills and phases
// ABOUTME: Scalar fields are addressed by their wire names for generic form binding

package hackathon

import (
	"fmt"
	"slices"
	"strings"
)

// Participation types
const (
	ParticipationBoth        = "Both"
	ParticipationTeamsOnly   = "TeamsOnly"
	ParticipationIndividuals = "IndividualsOnly"
)

// Modes
const (
	ModeOnline  = "Online"
	ModeOffline = "Offline"
	ModeHybrid  = "Hybrid"
)

// ParticipationTypes lists the participation options in display order
var ParticipationTypes = []string{ParticipationBoth, ParticipationTeamsOnly, ParticipationIndividuals}

// Modes lists the hackathon modes in display order
var Modes = []string{ModeOnline, ModeOffline, ModeHybrid}

// YearOptions lists the eligible study years offered by the form
var YearOptions = []string{"1st Year", "2nd Year", "3rd Year", "4th Year", "Any", "Professionals"}

// SubmissionFormat is an accepted deliverable type for a phase
type SubmissionFormat string

// SubmissionFormats lists every format in display order
var SubmissionFormats = []SubmissionFormat{
	"PDF", "PPT", "DOC", "Video", "Repository Link", "Website Link", "ZIP File", "Google Drive Link",
}

// IsSubmissionFormat reports whether f is a known format
func IsSubmissionFormat(f SubmissionFormat) bool {
	return slices.Contains(SubmissionFormats, f)
}

// Field names accepted by Draft.Set and Draft.Get
const (
	FieldTitle               = "title"
	FieldCompany             = "company"
	FieldDescription         = "description"
	FieldProblemStatement    = "problemStatement"
	FieldEligibilityCriteria = "eligibilityCriteria"
	FieldParticipationType   = "participationType"
	FieldCourseBranch        = "courseBranch"
	FieldYear                = "year"
	FieldStartDate           = "startDate"
	FieldEndDate             = "endDate"
	FieldMode                = "mode"
	FieldVenueLocation       = "venueLocation"
	FieldVenueTime           = "venueTime"
	FieldSubmissionProcedure = "submissionProcedure"
	FieldRequirements        = "requirements"
	FieldSubmissionURL       = "submissionUrl"
	FieldParticipantLimit    = "participantLimit"
	FieldTeamSize            = "teamSize"
	FieldPrize               = "prize"
)

// Draft is a hackathon posting being edited. The zero value is not usable;
// start from NewDraft or FromRecord.
type Draft struct {
	ID string

	Title               string
	Company             string
	Description         string
	ProblemStatement    string
	EligibilityCriteria string
	ParticipationType   string
	CourseBranch        string
	Year                string
	StartDate           string
	EndDate             string
	Mode                string
	VenueLocation       string
	VenueTime           string
	SubmissionProcedure string
	Requirements        string
	SubmissionURL       string
	// ParticipantLimit and TeamSize hold raw text input, parsed on serialization
	ParticipantLimit string
	TeamSize         string
	Prize            string
	Enabled          bool

	Skills SkillSet
	Phases PhaseList
}

// NewDraft returns an empty draft with defaults and one seeded phase
func NewDraft() *Draft {
	return &Draft{
		ParticipationType: ParticipationBoth,
		Mode:              ModeOnline,
		Phases:            NewPhaseList(),
	}
}

func (d *Draft) field(name string) (*string, bool) {
	switch name {
	case FieldTitle:
		return &d.Title, true
	case FieldCompany:
		return &d.Company, true
	case FieldDescription:
		return &d.Description, true
	case FieldProblemStatement:
		return &d.ProblemStatement, true
	case FieldEligibilityCriteria:
		return &d.EligibilityCriteria, true
	case FieldParticipationType:
		return &d.ParticipationType, true
	case FieldCourseBranch:
		return &d.CourseBranch, true
	case FieldYear:
		return &d.Year, true
	case FieldStartDate:
		return &d.StartDate, true
	case FieldEndDate:
		return &d.EndDate, true
	case FieldMode:
		return &d.Mode, true
	case FieldVenueLocation:
		return &d.VenueLocation, true
	case FieldVenueTime:
		return &d.VenueTime, true
	case FieldSubmissionProcedure:
		return &d.SubmissionProcedure, true
	case FieldRequirements:
		return &d.Requirements, true
	case FieldSubmissionURL:
		return &d.SubmissionURL, true
	case FieldParticipantLimit:
		return &d.ParticipantLimit, true
	case FieldTeamSize:
		return &d.TeamSize, true
	case FieldPrize:
		return &d.Prize, true
	}
	return nil, false
}

// Set assigns a scalar field by wire name
func (d *Draft) Set(name, value string) error {
	p, ok := d.field(name)
	if !ok {
		return fmt.Errorf("unknown field %q", name)
	}
	*p = value
	return nil
}

// Get reads a scalar field by wire name
func (d *Draft) Get(name string) (string, error) {
	p, ok := d.field(name)
	if !ok {
		return "", fmt.Errorf("unknown field %q", name)
	}
	return *p, nil
}

// Clone returns a deep copy of d
func (d *Draft) Clone() *Draft {
	c := *d
	c.Skills = d.Skills.clone()
	c.Phases = d.Phases.clone()
	return &c
}

// SkillSet is an ordered set of trimmed, non-blank skill names
type SkillSet struct {
	items []string
}

// Add appends skill unless it is blank or already present
func (s *SkillSet) Add(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" || s.Contains(skill) {
		return false
	}
	s.items = append(s.items, skill)
	return true
}

// Remove deletes skill, reporting whether it was present
func (s *SkillSet) Remove(skill string) bool {
	i := slices.Index(s.items, skill)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// Contains reports whether skill is in the set
func (s *SkillSet) Contains(skill string) bool {
	return slices.Contains(s.items, skill)
}

// Items returns the skills in insertion order
func (s *SkillSet) Items() []string {
	return slices.Clone(s.items)
}

// Len returns the number of skills
func (s *SkillSet) Len() int {
	return len(s.items)
}

func (s SkillSet) clone() SkillSet {
	return SkillSet{items: slices.Clone(s.items)}
}

// Phase is a milestone with its own deadline and accepted formats
type Phase struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Deadline    string             `json:"deadline"`
	Formats     []SubmissionFormat `json:"formats"`
}

// HasFormat reports whether f is accepted by the phase
func (p Phase) HasFormat(f SubmissionFormat) bool {
	return slices.Contains(p.Formats, f)
}

func (p Phase) clone() Phase {
	p.Formats = slices.Clone(p.Formats)
	return p
}

// PhaseList is an ordered list of phases with unique, monotonically
// assigned ids. It never becomes empty.
type PhaseList struct {
	items  []Phase
	nextID int
}

// NewPhaseList returns a list seeded with "Phase 1"
func NewPhaseList() PhaseList {
	return PhaseList{
		items:  []Phase{{ID: 1, Name: "Phase 1", Formats: []SubmissionFormat{}}},
		nextID: 2,
	}
}

// phaseListFrom builds a list from decoded phases, reassigning duplicate or
// non-positive ids. An empty input yields the seeded list.
func phaseListFrom(phases []Phase) PhaseList {
	if len(phases) == 0 {
		return NewPhaseList()
	}
	maxID := 0
	for _, p := range phases {
		maxID = max(maxID, p.ID)
	}
	l := PhaseList{nextID: maxID + 1}
	seen := make(map[int]bool, len(phases))
	for _, p := range phases {
		p = p.clone()
		if p.Formats == nil {
			p.Formats = []SubmissionFormat{}
		}
		if p.ID <= 0 || seen[p.ID] {
			p.ID = l.nextID
			l.nextID++
		}
		seen[p.ID] = true
		l.items = append(l.items, p)
	}
	return l
}

// Add appends an empty phase with the next id and returns it
func (l *PhaseList) Add() Phase {
	if l.nextID == 0 {
		*l = NewPhaseList()
		return l.items[0]
	}
	p := Phase{ID: l.nextID, Formats: []SubmissionFormat{}}
	l.nextID++
	l.items = append(l.items, p)
	return p
}

// Remove deletes phase id. Removing the last remaining phase is a no-op.
func (l *PhaseList) Remove(id int) bool {
	if len(l.items) <= 1 {
		return false
	}
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// Update applies fn to phase id. The id itself cannot be changed.
func (l *PhaseList) Update(id int, fn func(*Phase)) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	p := l.items[i]
	fn(&p)
	p.ID = id
	l.items[i] = p
	return true
}

// ToggleFormat adds f to phase id or removes it when already present
func (l *PhaseList) ToggleFormat(id int, f SubmissionFormat) bool {
	return l.Update(id, func(p *Phase) {
		if i := slices.Index(p.Formats, f); i >= 0 {
			p.Formats = slices.Delete(slices.Clone(p.Formats), i, i+1)
			return
		}
		p.Formats = append(slices.Clone(p.Formats), f)
	})
}

// Get returns phase id
func (l *PhaseList) Get(id int) (Phase, bool) {
	i := l.index(id)
	if i < 0 {
		return Phase{}, false
	}
	return l.items[i].clone(), true
}

// Items returns a copy of the phases in order
func (l *PhaseList) Items() []Phase {
	out := make([]Phase, len(l.items))
	for i, p := range l.items {
		out[i] = p.clone()
	}
	return out
}

// Len returns the number of phases
func (l *PhaseList) Len() int {
	return len(l.items)
}

// NextID is the id the next added phase will get
func (l *PhaseList) NextID() int {
	return l.nextID
}

func (l *PhaseList) index(id int) int {
	return slices.IndexFunc(l.items, func(p Phase) bool { return p.ID == id })
}

func (l PhaseList) clone() PhaseList {
	return PhaseList{items: l.Items(), nextID: l.nextID}
}
