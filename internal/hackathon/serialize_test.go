// ABOUTME: Tests for draft serialization and hydration
// ABOUTME: Checks lenient versus strict payloads and phase blob round trips

package hackathon

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/saarthix/hackctl/internal/client"
)

func TestSkillsJoined(t *testing.T) {
	d := NewDraft()
	d.Skills.Add("Python")
	d.Skills.Add("Go")
	if got := *d.DraftPayload().SkillsRequired; got != "Python, Go" {
		t.Errorf("expected %q, got %q", "Python, Go", got)
	}
	if got := *d.PublishPayload().SkillsRequired; got != "Python, Go" {
		t.Errorf("expected %q, got %q", "Python, Go", got)
	}
}

func TestPhasesRoundTrip(t *testing.T) {
	in := []Phase{{ID: 1, Name: "P1", Formats: []SubmissionFormat{"PDF"}}}
	blob := EncodePhases(in)
	out, err := DecodePhases(blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("expected %+v, got %+v", in, out)
	}
}

func TestEncodePhases_EmptyFormatsIsArray(t *testing.T) {
	blob := EncodePhases([]Phase{{ID: 1, Name: "P"}})
	var raw []map[string]any
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw[0]["formats"].([]any); !ok {
		t.Errorf("expected formats to be an array, got %v", raw[0]["formats"])
	}
}

func TestParseParticipantLimit(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"", nil},
		{"abc", nil},
		{"0", nil},
		{"-4", nil},
		{" 50 ", intPtr(50)},
	}
	for _, tt := range tests {
		got := ParseParticipantLimit(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseParticipantLimit(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseTeamSize(t *testing.T) {
	tests := map[string]int{"": 0, "x": 0, "-1": 0, "4": 4}
	for in, want := range tests {
		if got := ParseTeamSize(in); got != want {
			t.Errorf("ParseTeamSize(%q) = %d, want %d", in, got, want)
		}
	}
}

func intPtr(n int) *int { return &n }

func TestDraftPayload_Lenient(t *testing.T) {
	d := NewDraft()
	d.Title = "Hack"
	in := d.DraftPayload()

	data, _ := json.Marshal(in)
	var body map[string]any
	json.Unmarshal(data, &body)

	for _, key := range []string{"prize", "courseBranch", "venueLocation", "submissionUrl", "requirements"} {
		if body[key] != "" {
			t.Errorf("expected %s to be an empty string, got %#v", key, body[key])
		}
	}
	if body["participantLimit"] != nil {
		t.Errorf("expected participantLimit null, got %v", body["participantLimit"])
	}
	if body["teamSize"] != float64(0) {
		t.Errorf("expected teamSize 0, got %v", body["teamSize"])
	}
	if body["enabled"] != false {
		t.Error("expected enabled false for a draft save")
	}
}

func TestPublishPayload_Strict(t *testing.T) {
	d := NewDraft()
	d.Title = "Hack"
	d.Prize = "$500"
	d.TeamSize = "4"
	d.ParticipantLimit = "100"

	data, _ := json.Marshal(d.PublishPayload())
	var body map[string]any
	json.Unmarshal(data, &body)

	for _, key := range []string{"courseBranch", "year", "venueLocation", "venueTime", "submissionUrl", "skillsRequired"} {
		v, ok := body[key]
		if !ok || v != nil {
			t.Errorf("expected %s to be an explicit null, got %#v (present=%v)", key, v, ok)
		}
	}
	if body["prize"] != "$500" || body["teamSize"] != float64(4) || body["participantLimit"] != float64(100) {
		t.Errorf("unexpected capacity fields %v %v %v", body["prize"], body["teamSize"], body["participantLimit"])
	}
	if body["enabled"] != true {
		t.Error("expected enabled true for publish")
	}
}

func TestFromRecord(t *testing.T) {
	limit := 0
	rec := &client.Hackathon{
		ID:               "h1",
		Title:            "Hack",
		SkillsRequired:   "Python, Go,, Python ",
		Phases:           `[{"id":2,"name":"Idea","formats":["PDF"]},{"id":5,"name":"Build","formats":[]}]`,
		ParticipantLimit: &limit,
		TeamSize:         3,
		Enabled:          true,
	}
	d := FromRecord(rec)

	if got := d.Skills.Items(); !reflect.DeepEqual(got, []string{"Python", "Go"}) {
		t.Errorf("unexpected skills %v", got)
	}
	if d.ParticipantLimit != "" {
		t.Errorf("zero participant limit should hydrate as empty, got %q", d.ParticipantLimit)
	}
	if d.TeamSize != "3" {
		t.Errorf("expected team size 3, got %q", d.TeamSize)
	}
	if d.Mode != ModeOnline || d.ParticipationType != ParticipationBoth {
		t.Errorf("expected defaults for blank mode and participation, got %q %q", d.Mode, d.ParticipationType)
	}
	if d.Phases.Len() != 2 || d.Phases.NextID() != 6 {
		t.Errorf("expected 2 phases and next id 6, got %d and %d", d.Phases.Len(), d.Phases.NextID())
	}
}

func TestFromRecord_BadPhasesFallsBackToSeed(t *testing.T) {
	for _, blob := range []string{"", "not json", "[]"} {
		d := FromRecord(&client.Hackathon{ID: "h1", Phases: blob})
		phases := d.Phases.Items()
		if len(phases) != 1 || phases[0].Name != "Phase 1" {
			t.Errorf("blob %q: expected seeded phase, got %+v", blob, phases)
		}
	}
}
