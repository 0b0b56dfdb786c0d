// ABOUTME: Conversion between drafts and backend hackathon records
// ABOUTME: Draft saves send empty strings for blank optional fields, publishes send null

package hackathon

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/saarthix/hackctl/internal/client"
)

// SkillsSeparator joins skills into the backend's single string field
const SkillsSeparator = ", "

// EncodePhases renders phases as the JSON array string the backend stores
func EncodePhases(phases []Phase) string {
	out := make([]Phase, len(phases))
	for i, p := range phases {
		if p.Formats == nil {
			p.Formats = []SubmissionFormat{}
		}
		out[i] = p
	}
	// strings and ints only, Marshal cannot fail
	data, _ := json.Marshal(out)
	return string(data)
}

// DecodePhases parses a phases blob produced by EncodePhases
func DecodePhases(blob string) ([]Phase, error) {
	var phases []Phase
	if err := json.Unmarshal([]byte(blob), &phases); err != nil {
		return nil, err
	}
	return phases, nil
}

// SplitSkills splits the backend skills string, trimming entries and dropping blanks
func SplitSkills(s string) []string {
	var skills []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

// ParseParticipantLimit returns nil for empty, invalid or non-positive input
func ParseParticipantLimit(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

// ParseTeamSize returns 0 for empty, invalid or negative input
func ParseTeamSize(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// DraftPayload is the lenient body used for draft saves: blank optional
// fields are sent as empty strings and enabled is false
func (d *Draft) DraftPayload() client.HackathonInput {
	in := d.basePayload()
	str := func(v string) *string { return &v }
	in.SkillsRequired = str(strings.Join(d.Skills.Items(), SkillsSeparator))
	in.EligibilityCriteria = str(d.EligibilityCriteria)
	in.CourseBranch = str(d.CourseBranch)
	in.Year = str(d.Year)
	in.VenueLocation = str(d.VenueLocation)
	in.VenueTime = str(d.VenueTime)
	in.SubmissionProcedure = str(d.SubmissionProcedure)
	in.Requirements = str(d.Requirements)
	in.SubmissionURL = str(d.SubmissionURL)
	in.Prize = str(d.Prize)
	in.Enabled = false
	return in
}

// PublishPayload is the strict body used for publishing: blank optional
// fields are sent as null and enabled is true
func (d *Draft) PublishPayload() client.HackathonInput {
	in := d.basePayload()
	in.SkillsRequired = orNull(strings.Join(d.Skills.Items(), SkillsSeparator))
	in.EligibilityCriteria = orNull(d.EligibilityCriteria)
	in.CourseBranch = orNull(d.CourseBranch)
	in.Year = orNull(d.Year)
	in.VenueLocation = orNull(d.VenueLocation)
	in.VenueTime = orNull(d.VenueTime)
	in.SubmissionProcedure = orNull(d.SubmissionProcedure)
	in.Requirements = orNull(d.Requirements)
	in.SubmissionURL = orNull(d.SubmissionURL)
	in.Prize = orNull(d.Prize)
	in.Enabled = true
	return in
}

func (d *Draft) basePayload() client.HackathonInput {
	return client.HackathonInput{
		Title:             d.Title,
		Company:           d.Company,
		Description:       d.Description,
		ProblemStatement:  d.ProblemStatement,
		Phases:            EncodePhases(d.Phases.Items()),
		ParticipationType: d.ParticipationType,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		Mode:              d.Mode,
		ParticipantLimit:  ParseParticipantLimit(d.ParticipantLimit),
		TeamSize:          ParseTeamSize(d.TeamSize),
	}
}

func orNull(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// FromRecord hydrates a draft from a fetched hackathon
func FromRecord(h *client.Hackathon) *Draft {
	d := &Draft{
		ID:                  h.ID,
		Title:               h.Title,
		Company:             h.Company,
		Description:         h.Description,
		ProblemStatement:    h.ProblemStatement,
		EligibilityCriteria: h.EligibilityCriteria,
		ParticipationType:   defaultString(h.ParticipationType, ParticipationBoth),
		CourseBranch:        h.CourseBranch,
		Year:                h.Year,
		StartDate:           h.StartDate,
		EndDate:             h.EndDate,
		Mode:                defaultString(h.Mode, ModeOnline),
		VenueLocation:       h.VenueLocation,
		VenueTime:           h.VenueTime,
		SubmissionProcedure: h.SubmissionProcedure,
		Requirements:        h.Requirements,
		SubmissionURL:       h.SubmissionURL,
		Prize:               h.Prize,
		Enabled:             h.Enabled,
	}
	if h.ParticipantLimit != nil && *h.ParticipantLimit != 0 {
		d.ParticipantLimit = strconv.Itoa(*h.ParticipantLimit)
	}
	if h.TeamSize != 0 {
		d.TeamSize = strconv.Itoa(h.TeamSize)
	}
	for _, s := range SplitSkills(h.SkillsRequired) {
		d.Skills.Add(s)
	}

	var phases []Phase
	if strings.TrimSpace(h.Phases) != "" {
		parsed, err := DecodePhases(h.Phases)
		if err != nil {
			slog.Warn("Unreadable phases on hackathon, starting from one phase", "id", h.ID, "error", err)
		} else {
			phases = parsed
		}
	}
	d.Phases = phaseListFrom(phases)
	return d
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
