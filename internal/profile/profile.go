package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var ErrDecode = errors.New("failed to decode profile")

// Profile is the record extracted from an uploaded CV. No field is required;
// the renderer supplies a fallback for each one.
type Profile struct {
	Name       Text
	Email      Text
	Experience Experience
	Skills     []Entry
}

// Text is an optional scalar field. Empty strings, null, false and 0 count as
// absent, the same way the upload page treats them.
type Text struct {
	value string
	ok    bool
}

func NewText(value string) Text {
	return Text{value: value, ok: value != ""}
}

func (t Text) Value() (string, bool) {
	return t.value, t.ok
}

// Experience is either a single legacy string or a list of entries.
type Experience struct {
	Text    string
	Entries []Entry
	IsList  bool
}

// Parse decodes a profile object. Values of unexpected shape are kept as raw
// JSON so the renderer can still show them.
func Parse(data []byte) (*Profile, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrDecode)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected a JSON object, got %s", ErrDecode, root.Type)
	}

	p := &Profile{
		Name:       textFrom(root.Get("name")),
		Email:      textFrom(root.Get("email")),
		Experience: experienceFrom(root.Get("experience")),
	}

	if skills := root.Get("skills"); truthy(skills) {
		for _, skill := range skills.Array() {
			p.Skills = append(p.Skills, SkillEntry(skill))
		}
	}

	return p, nil
}

const sampleJSON = `{
  "name": "Ivan Ivanov",
  "email": "ivan@example.com",
  "experience": "3 years",
  "skills": ["Python", "Django", "REST"]
}`

// Sample returns the fixed profile shown in simulation mode.
func Sample() *Profile {
	p, err := Parse([]byte(sampleJSON))
	if err != nil {
		panic(err)
	}
	return p
}

func textFrom(r gjson.Result) Text {
	switch r.Type {
	case gjson.String:
		return NewText(r.Str)
	case gjson.Number:
		if r.Num == 0 {
			return Text{}
		}
		return Text{value: strconv.FormatFloat(r.Num, 'f', -1, 64), ok: true}
	case gjson.True:
		return Text{value: "true", ok: true}
	case gjson.JSON:
		return Text{value: compact(r.Raw), ok: true}
	default:
		return Text{}
	}
}

func experienceFrom(r gjson.Result) Experience {
	switch {
	case !truthy(r):
		return Experience{}
	case r.Type == gjson.String:
		return Experience{Text: r.Str}
	case r.IsArray():
		exp := Experience{IsList: true}
		for _, item := range r.Array() {
			exp.Entries = append(exp.Entries, ExperienceEntry(item))
		}
		return exp
	default:
		// a lone object or scalar is shown as a one-element list
		return Experience{IsList: true, Entries: []Entry{ExperienceEntry(r)}}
	}
}

func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return r.Exists()
	}
}

// compact drops insignificant whitespace and keeps key order. String escapes
// are left exactly as the source wrote them.
func compact(raw string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		return strings.TrimSpace(raw)
	}
	return buf.String()
}
