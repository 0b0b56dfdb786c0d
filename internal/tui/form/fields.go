// ABOUTME: Per-section huh field groups bound to plain strings
// ABOUTME: Bound values are pushed into the editor after every update

package form

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/saarthix/hackctl/internal/hackathon"
	"github.com/saarthix/hackctl/internal/tui/styles"
)

// dateLayout is the wire format of every date field
const dateLayout = "2006-01-02"

// phaseBinding holds the edited values of one phase
type phaseBinding struct {
	id          int
	name        string
	description string
	deadline    string
	formats     []string
}

// bindings are the string slots huh writes into for the active section
type bindings struct {
	scalars map[string]*string
	skills  *string
	phases  []*phaseBinding
}

func (b *bindings) scalar(d *hackathon.Draft, name string) *string {
	v, _ := d.Get(name)
	p := &v
	b.scalars[name] = p
	return p
}

// buildSection returns the huh form for section id, seeded from d
func buildSection(id string, d *hackathon.Draft, suggestions []string) (*huh.Form, *bindings) {
	b := &bindings{scalars: make(map[string]*string)}

	var groups []*huh.Group
	switch id {
	case hackathon.SectionBasic:
		groups = append(groups, huh.NewGroup(
			huh.NewInput().Title("Hackathon Title").Value(b.scalar(d, hackathon.FieldTitle)),
			huh.NewInput().Title("Company Name").Value(b.scalar(d, hackathon.FieldCompany)),
			huh.NewText().Title("Hackathon Description").Lines(4).Value(b.scalar(d, hackathon.FieldDescription)),
		).Title("Basic Info"))

	case hackathon.SectionProblem:
		skills := strings.Join(d.Skills.Items(), hackathon.SkillsSeparator)
		b.skills = &skills
		groups = append(groups, huh.NewGroup(
			huh.NewText().Title("Problem Statement").Lines(5).Value(b.scalar(d, hackathon.FieldProblemStatement)),
			huh.NewInput().
				Title("Skills Required").
				Description("Comma separated").
				Placeholder(strings.Join(first(suggestions, 3), ", ")).
				Suggestions(suggestions).
				Value(b.skills),
		).Title("Problem & Skills"))

	case hackathon.SectionPhases:
		for _, p := range d.Phases.Items() {
			pb := &phaseBinding{
				id:          p.ID,
				name:        p.Name,
				description: p.Description,
				deadline:    p.Deadline,
			}
			for _, f := range p.Formats {
				pb.formats = append(pb.formats, string(f))
			}
			b.phases = append(b.phases, pb)
			groups = append(groups, huh.NewGroup(
				huh.NewInput().Title("Phase Name").Value(&pb.name),
				huh.NewText().Title("Description").Lines(2).Value(&pb.description),
				huh.NewInput().Title("Deadline").Placeholder(dateLayout).Validate(optionalDate).Value(&pb.deadline),
				huh.NewMultiSelect[string]().
					Title("Submission Formats").
					Options(formatOptions()...).
					Value(&pb.formats),
			).Title("Phase "+strconv.Itoa(p.ID)).Description("ctrl+a adds a phase, ctrl+x removes the last one"))
		}

	case hackathon.SectionEligibility:
		groups = append(groups, huh.NewGroup(
			huh.NewText().Title("Eligibility Criteria").Lines(3).Value(b.scalar(d, hackathon.FieldEligibilityCriteria)),
			huh.NewSelect[string]().
				Title("Participation Type").
				Options(huh.NewOptions(hackathon.ParticipationTypes...)...).
				Value(b.scalar(d, hackathon.FieldParticipationType)),
			huh.NewInput().Title("Course / Branch").Value(b.scalar(d, hackathon.FieldCourseBranch)),
			huh.NewSelect[string]().
				Title("Year").
				Options(append([]huh.Option[string]{huh.NewOption("Not specified", "")}, huh.NewOptions(hackathon.YearOptions...)...)...).
				Value(b.scalar(d, hackathon.FieldYear)),
		).Title("Eligibility"))

	case hackathon.SectionDates:
		groups = append(groups, huh.NewGroup(
			huh.NewInput().Title("Start Date").Placeholder(dateLayout).Validate(optionalDate).Value(b.scalar(d, hackathon.FieldStartDate)),
			huh.NewInput().Title("End Date").Placeholder(dateLayout).Validate(optionalDate).Value(b.scalar(d, hackathon.FieldEndDate)),
			huh.NewSelect[string]().
				Title("Hackathon Mode").
				Options(huh.NewOptions(hackathon.Modes...)...).
				Value(b.scalar(d, hackathon.FieldMode)),
			huh.NewInput().Title("Venue Location").Value(b.scalar(d, hackathon.FieldVenueLocation)),
			huh.NewInput().Title("Venue Time").Placeholder("10:00 AM").Value(b.scalar(d, hackathon.FieldVenueTime)),
		).Title("Dates & Mode"))

	case hackathon.SectionSubmission:
		groups = append(groups, huh.NewGroup(
			huh.NewText().Title("Submission Procedure").Lines(3).Value(b.scalar(d, hackathon.FieldSubmissionProcedure)),
			huh.NewText().Title("Requirements").Lines(3).Value(b.scalar(d, hackathon.FieldRequirements)),
			huh.NewInput().Title("Submission URL").Value(b.scalar(d, hackathon.FieldSubmissionURL)),
		).Title("Submission"))

	case hackathon.SectionCapacity:
		groups = append(groups, huh.NewGroup(
			huh.NewInput().Title("Participant Limit").Description("Leave empty for no limit").Validate(optionalCount).Value(b.scalar(d, hackathon.FieldParticipantLimit)),
			huh.NewInput().Title("Team Size").Validate(optionalCount).Value(b.scalar(d, hackathon.FieldTeamSize)),
			huh.NewInput().Title("Prize").Value(b.scalar(d, hackathon.FieldPrize)),
		).Title("Capacity & Prizes"))
	}

	f := huh.NewForm(groups...).
		WithTheme(styles.FormTheme()).
		WithShowHelp(false)
	return f, b
}

func formatOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(hackathon.SubmissionFormats))
	for i, f := range hackathon.SubmissionFormats {
		opts[i] = huh.NewOption(string(f), string(f))
	}
	return opts
}

func first(s []string, n int) []string {
	return s[:min(n, len(s))]
}

func optionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func optionalCount(s string) error {
	if s == "" {
		return nil
	}
	if v, err := strconv.Atoi(s); err != nil || v < 0 {
		return errors.New("must be a whole number")
	}
	return nil
}

// push copies every bound value that differs from the editor's draft into
// the editor
func (b *bindings) push(e *hackathon.Editor) {
	d := e.Draft()

	for name, v := range b.scalars {
		if cur, _ := d.Get(name); cur != *v {
			_ = e.SetField(name, *v)
		}
	}

	if b.skills != nil {
		wanted := hackathon.SplitSkills(*b.skills)
		for _, s := range d.Skills.Items() {
			if !slices.Contains(wanted, s) {
				e.RemoveSkill(s)
			}
		}
		for _, s := range wanted {
			if !d.Skills.Contains(s) {
				e.AddSkill(s)
			}
		}
	}

	for _, pb := range b.phases {
		p, ok := d.Phases.Get(pb.id)
		if !ok {
			continue
		}
		if p.Name != pb.name || p.Description != pb.description || p.Deadline != pb.deadline {
			e.UpdatePhase(pb.id, pb.name, pb.description, pb.deadline)
		}
		for _, f := range hackathon.SubmissionFormats {
			if p.HasFormat(f) != slices.Contains(pb.formats, string(f)) {
				_ = e.TogglePhaseFormat(pb.id, f)
			}
		}
	}
}
