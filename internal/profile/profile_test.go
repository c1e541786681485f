package profile

import (
	"errors"
	"testing"
)

func TestParseDirectProfile(t *testing.T) {
	p, err := Parse([]byte(`{"name":"A","email":"b@c.d","experience":"3 years","skills":["X","Y"]}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if name, ok := p.Name.Value(); !ok || name != "A" {
		t.Errorf("name = %q, %v; want %q, true", name, ok, "A")
	}
	if email, ok := p.Email.Value(); !ok || email != "b@c.d" {
		t.Errorf("email = %q, %v; want %q, true", email, ok, "b@c.d")
	}
	if p.Experience.IsList || p.Experience.Text != "3 years" {
		t.Errorf("experience = %+v; want legacy string", p.Experience)
	}
	if len(p.Skills) != 2 || p.Skills[0].Label() != "X" || p.Skills[1].Label() != "Y" {
		t.Errorf("skills = %+v", p.Skills)
	}
}

func TestParseMissingAndFalsyFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"nulls", `{"name":null,"email":null,"experience":null,"skills":null}`},
		{"empty strings", `{"name":"","email":"","experience":"","skills":""}`},
		{"falsy scalars", `{"name":false,"email":0,"experience":false,"skills":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.body))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if _, ok := p.Name.Value(); ok {
				t.Error("name should be absent")
			}
			if _, ok := p.Email.Value(); ok {
				t.Error("email should be absent")
			}
			if len(p.Skills) != 0 {
				t.Errorf("skills = %+v; want none", p.Skills)
			}
			if p.Experience.IsList || p.Experience.Text != "" {
				t.Errorf("experience = %+v; want empty", p.Experience)
			}
		})
	}
}

func TestParseRejectsNonObjects(t *testing.T) {
	for _, body := range []string{`not json`, `[1,2]`, `"text"`, ``} {
		if _, err := Parse([]byte(body)); !errors.Is(err, ErrDecode) {
			t.Errorf("Parse(%q) error = %v; want ErrDecode", body, err)
		}
	}
}

func TestEntryProjection(t *testing.T) {
	p, err := Parse([]byte(`{
		"skills": [{"name":"X"}, "Y", {}, {"name":""}, 42, null, {"name":5}, {"name":true}],
		"experience": [{"position":"Dev"}, {"title":"Lead"}, {"company":"Acme", "years": 2}, "Intern", {"position":true}, {"position":0, "title":"Staff"}, {"position":3}]
	}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantSkills := []struct {
		kind  EntryKind
		label string
	}{
		{LabeledEntry, "X"},
		{StringEntry, "Y"},
		{OtherEntry, "{}"},
		{OtherEntry, `{"name":""}`},
		{OtherEntry, "42"},
		{OtherEntry, "null"},
		{LabeledEntry, "5"},
		{LabeledEntry, "true"},
	}
	if len(p.Skills) != len(wantSkills) {
		t.Fatalf("got %d skills, want %d", len(p.Skills), len(wantSkills))
	}
	for i, want := range wantSkills {
		got := p.Skills[i]
		if got.Kind != want.kind || got.Label() != want.label {
			t.Errorf("skills[%d] = %s %q; want %s %q", i, got.Kind, got.Label(), want.kind, want.label)
		}
	}

	wantExperience := []string{"Dev", "Lead", `{"company":"Acme","years":2}`, "Intern", "true", "Staff", "3"}
	if !p.Experience.IsList || len(p.Experience.Entries) != len(wantExperience) {
		t.Fatalf("experience = %+v", p.Experience)
	}
	for i, want := range wantExperience {
		if got := p.Experience.Entries[i].Label(); got != want {
			t.Errorf("experience[%d] = %q; want %q", i, got, want)
		}
	}
}

func TestExperiencePositionBeatsTitle(t *testing.T) {
	p, err := Parse([]byte(`{"experience":[{"title":"T","position":"P"}]}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := p.Experience.Entries[0].Label(); got != "P" {
		t.Errorf("label = %q; want %q", got, "P")
	}
}

func TestSample(t *testing.T) {
	p := Sample()
	if name, _ := p.Name.Value(); name != "Ivan Ivanov" {
		t.Errorf("name = %q", name)
	}
	if p.Experience.Text != "3 years" {
		t.Errorf("experience = %q", p.Experience.Text)
	}
	if len(p.Skills) != 3 {
		t.Errorf("skills = %+v", p.Skills)
	}
}

func TestNumericTextUsesShortestForm(t *testing.T) {
	p, err := Parse([]byte(`{"name":1.50,"email":2e3}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if name, _ := p.Name.Value(); name != "1.5" {
		t.Errorf("name = %q; want 1.5", name)
	}
	if email, _ := p.Email.Value(); email != "2000" {
		t.Errorf("email = %q; want 2000", email)
	}
}

func TestOtherEntryDumpKeepsSourceText(t *testing.T) {
	p, err := Parse([]byte(`{"skills":[ { "b" : 1, "a" : "x\/y" } ]}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(p.Skills) != 1 {
		t.Fatalf("skills = %+v", p.Skills)
	}
	if got, want := p.Skills[0].Label(), `{"b":1,"a":"x\/y"}`; got != want {
		t.Errorf("dump = %q; want %q", got, want)
	}
}
