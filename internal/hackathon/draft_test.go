// ABOUTME: Tests for drafts, skill sets, phase lists and section rules
// ABOUTME: Covers the never-empty phase invariant and progress calculation

package hackathon

import (
	"reflect"
	"testing"
)

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft()
	if d.ParticipationType != ParticipationBoth || d.Mode != ModeOnline {
		t.Errorf("unexpected defaults %q %q", d.ParticipationType, d.Mode)
	}
	phases := d.Phases.Items()
	if len(phases) != 1 || phases[0].ID != 1 || phases[0].Name != "Phase 1" {
		t.Errorf("expected seeded Phase 1, got %+v", phases)
	}
	if d.Phases.NextID() != 2 {
		t.Errorf("expected next id 2, got %d", d.Phases.NextID())
	}
}

func TestDraftSetGet(t *testing.T) {
	d := NewDraft()
	if err := d.Set(FieldTitle, "Hack"); err != nil {
		t.Fatal(err)
	}
	if got, _ := d.Get(FieldTitle); got != "Hack" {
		t.Errorf("expected Hack, got %q", got)
	}
	if err := d.Set("bogus", "x"); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestSkillSet(t *testing.T) {
	var s SkillSet
	s.Add("  Go ")
	s.Add("Python")
	if s.Add("Go") {
		t.Error("duplicate skill should not be added")
	}
	if s.Add("   ") {
		t.Error("blank skill should not be added")
	}
	if got := s.Items(); !reflect.DeepEqual(got, []string{"Go", "Python"}) {
		t.Errorf("unexpected items %v", got)
	}
	if !s.Remove("Go") || s.Remove("Go") {
		t.Error("expected remove to succeed once")
	}
}

func TestPhaseList_NeverEmpty(t *testing.T) {
	l := NewPhaseList()
	if l.Remove(1) {
		t.Error("removing the only phase should be a no-op")
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 phase, got %d", l.Len())
	}

	p := l.Add()
	if p.ID != 2 {
		t.Errorf("expected id 2, got %d", p.ID)
	}
	if !l.Remove(1) {
		t.Error("expected remove with two phases to succeed")
	}
	if l.Remove(2) {
		t.Error("removing the last remaining phase should be a no-op")
	}
	if q := l.Add(); q.ID != 3 {
		t.Errorf("ids must never be reused, got %d", q.ID)
	}
}

func TestPhaseList_ToggleFormat(t *testing.T) {
	l := NewPhaseList()
	l.ToggleFormat(1, "PDF")
	l.ToggleFormat(1, "Video")
	l.ToggleFormat(1, "PDF")
	p, _ := l.Get(1)
	if !reflect.DeepEqual(p.Formats, []SubmissionFormat{"Video"}) {
		t.Errorf("unexpected formats %v", p.Formats)
	}
	if l.ToggleFormat(99, "PDF") {
		t.Error("unknown phase should not toggle")
	}
}

func TestPhaseListFrom_RepairsIDs(t *testing.T) {
	l := phaseListFrom([]Phase{{ID: 3, Name: "a"}, {ID: 3, Name: "b"}, {ID: 0, Name: "c"}})
	var ids []int
	for _, p := range l.Items() {
		ids = append(ids, p.ID)
	}
	if !reflect.DeepEqual(ids, []int{3, 4, 5}) {
		t.Errorf("unexpected ids %v", ids)
	}
	if l.NextID() != 6 {
		t.Errorf("expected next id 6, got %d", l.NextID())
	}
}

func TestClone_IsDeep(t *testing.T) {
	d := NewDraft()
	d.Skills.Add("Go")
	c := d.Clone()
	c.Skills.Add("Rust")
	c.Phases.ToggleFormat(1, "PDF")
	if d.Skills.Len() != 1 {
		t.Error("clone shares skills")
	}
	if p, _ := d.Phases.Get(1); len(p.Formats) != 0 {
		t.Error("clone shares phases")
	}
}

func completeRequired(d *Draft) {
	d.Title, d.Company, d.Description = "Hack", "Acme", "Build things"
	d.ProblemStatement = "Solve it"
	d.Phases.Update(1, func(p *Phase) { p.Name = "Round 1" })
	d.Phases.ToggleFormat(1, "PDF")
	d.StartDate, d.EndDate = "2026-11-01", "2026-11-03"
}

func TestProgress(t *testing.T) {
	nav := NewNavigator()
	d := NewDraft()
	// mode defaults to Online, so only a third of dates' fields are present
	if got := nav.Progress(d); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}

	d.Title, d.Company, d.Description = "Hack", "Acme", "Build"
	if got := nav.Progress(d); got != 25 {
		t.Errorf("expected 25, got %d", got)
	}

	completeRequired(d)
	if got := nav.Progress(d); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
}

func TestProgress_OptionalSectionsDoNotCount(t *testing.T) {
	nav := NewNavigator()
	d := NewDraft()
	d.Title = "Hack"
	before := nav.Progress(d)
	d.CourseBranch = "CSE"
	d.Prize = "$1000"
	d.Requirements = "Laptop"
	if after := nav.Progress(d); after != before {
		t.Errorf("optional sections changed progress %d -> %d", before, after)
	}
	want := []string{SectionEligibility, SectionSubmission, SectionCapacity}
	if got := nav.Completed(d); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSectionRules_DefaultsDoNotComplete(t *testing.T) {
	d := NewDraft()
	if sectionRules[SectionEligibility](d) {
		t.Error("default participation type should not complete eligibility")
	}
	if sectionRules[SectionPhases](d) {
		t.Error("seeded phase without formats should not complete phases")
	}
}

func TestValidateForPublish(t *testing.T) {
	tests := []struct {
		name    string
		clear   func(d *Draft)
		section string
	}{
		{"title", func(d *Draft) { d.Title = "" }, SectionBasic},
		{"company", func(d *Draft) { d.Company = "" }, SectionBasic},
		{"description", func(d *Draft) { d.Description = "" }, SectionBasic},
		{"problem", func(d *Draft) { d.ProblemStatement = "" }, SectionProblem},
		{"start", func(d *Draft) { d.StartDate = "" }, SectionDates},
		{"end", func(d *Draft) { d.EndDate = "" }, SectionDates},
		{"mode", func(d *Draft) { d.Mode = "" }, SectionDates},
		{"problem and dates", func(d *Draft) { d.ProblemStatement, d.EndDate = "", "" }, SectionProblem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()
			completeRequired(d)
			tt.clear(d)
			err := ValidateForPublish(d)
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Section != tt.section {
				t.Errorf("expected section %s, got %s", tt.section, verr.Section)
			}
		})
	}

	d := NewDraft()
	completeRequired(d)
	if err := ValidateForPublish(d); err != nil {
		t.Errorf("expected valid draft, got %v", err)
	}
}

func TestSuggestSkills(t *testing.T) {
	var chosen SkillSet
	chosen.Add("JavaScript")
	got := SuggestSkills("java", &chosen)
	if !reflect.DeepEqual(got, []string{"Java"}) {
		t.Errorf("expected [Java], got %v", got)
	}
	if got := SuggestSkills("", nil); len(got) != len(CommonSkills) {
		t.Errorf("expected full catalogue, got %d", len(got))
	}
}
