// ABOUTME: Form sections of the hackathon editor and their completeness rules
// ABOUTME: Publish validation maps missing required fields back to a section

package hackathon

import (
	"fmt"
	"strings"

	"github.com/saarthix/hackctl/internal/tabs"
)

// Section ids
const (
	SectionBasic       = "basic"
	SectionProblem     = "problem"
	SectionPhases      = "phases"
	SectionEligibility = "eligibility"
	SectionDates       = "dates"
	SectionSubmission  = "submission"
	SectionCapacity    = "capacity"
)

// Sections is the editor's tab order
var Sections = []tabs.Section{
	{ID: SectionBasic, Label: "Basic Info", Required: true},
	{ID: SectionProblem, Label: "Problem & Skills", Required: true},
	{ID: SectionPhases, Label: "Phases", Required: true},
	{ID: SectionEligibility, Label: "Eligibility"},
	{ID: SectionDates, Label: "Dates & Mode", Required: true},
	{ID: SectionSubmission, Label: "Submission"},
	{ID: SectionCapacity, Label: "Capacity & Prizes"},
}

func filled(values ...string) (all, anyFilled bool) {
	all = true
	for _, v := range values {
		if v == "" {
			all = false
		} else {
			anyFilled = true
		}
	}
	return all, anyFilled
}

func allOf(values ...string) bool {
	all, _ := filled(values...)
	return all
}

func anyOf(values ...string) bool {
	_, a := filled(values...)
	return a
}

// sectionRules decide completeness. Optional sections count as complete
// once any meaningful field is filled; defaults like participationType
// do not count.
var sectionRules = map[string]func(*Draft) bool{
	SectionBasic: func(d *Draft) bool {
		return allOf(d.Title, d.Company, d.Description)
	},
	SectionProblem: func(d *Draft) bool {
		return d.ProblemStatement != ""
	},
	SectionPhases: func(d *Draft) bool {
		for _, p := range d.Phases.items {
			if p.Name != "" && len(p.Formats) > 0 {
				return true
			}
		}
		return false
	},
	SectionEligibility: func(d *Draft) bool {
		return anyOf(d.CourseBranch, d.Year, d.EligibilityCriteria)
	},
	SectionDates: func(d *Draft) bool {
		return allOf(d.StartDate, d.EndDate, d.Mode)
	},
	SectionSubmission: func(d *Draft) bool {
		return anyOf(d.SubmissionProcedure, d.Requirements, d.SubmissionURL)
	},
	SectionCapacity: func(d *Draft) bool {
		return anyOf(d.ParticipantLimit, d.TeamSize, d.Prize)
	},
}

// NewNavigator creates a tab navigator over the hackathon sections
func NewNavigator() *tabs.Navigator[*Draft] {
	n, err := tabs.New(Sections, sectionRules)
	if err != nil {
		// the section table is static
		panic(err)
	}
	return n
}

// requiredField is one field checked before publishing
type requiredField struct {
	label   string
	section string
	value   func(*Draft) string
}

// publishRequired is ordered so the first missing field names the section
// to activate: basic, then problem, then dates
var publishRequired = []requiredField{
	{"Hackathon Title", SectionBasic, func(d *Draft) string { return d.Title }},
	{"Company Name", SectionBasic, func(d *Draft) string { return d.Company }},
	{"Hackathon Description", SectionBasic, func(d *Draft) string { return d.Description }},
	{"Problem Statement", SectionProblem, func(d *Draft) string { return d.ProblemStatement }},
	{"Start Date", SectionDates, func(d *Draft) string { return d.StartDate }},
	{"End Date", SectionDates, func(d *Draft) string { return d.EndDate }},
	{"Hackathon Mode", SectionDates, func(d *Draft) string { return d.Mode }},
}

// ValidationError lists required fields missing at publish time
type ValidationError struct {
	Missing []string
	// Section is the first section holding a missing field
	Section string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("please fill in all required fields: %s", strings.Join(e.Missing, ", "))
}

// ValidateForPublish returns a ValidationError when a required field is empty
func ValidateForPublish(d *Draft) error {
	var verr *ValidationError
	for _, f := range publishRequired {
		if f.value(d) != "" {
			continue
		}
		if verr == nil {
			verr = &ValidationError{Section: f.section}
		}
		verr.Missing = append(verr.Missing, f.label)
	}
	if verr == nil {
		return nil
	}
	return verr
}
