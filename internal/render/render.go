package render

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"alfredoptarigan/cv-uploader/internal/profile"
)

const (
	NoNameFallback  = "No name found"
	NoEmailFallback = "null"
	listSeparator   = ", "
)

// EscapePolicy decides how extracted values reach the markup. Values come
// from the uploaded document, so RawHTML lets that document inject markup.
type EscapePolicy int

const (
	EscapeHTML EscapePolicy = iota
	RawHTML
)

func ParseEscapePolicy(s string) (EscapePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "escape", "escaped":
		return EscapeHTML, nil
	case "raw":
		return RawHTML, nil
	default:
		return EscapeHTML, fmt.Errorf("unknown escape policy: %q", s)
	}
}

// Container receives the rendered fragment, replacing whatever it held.
type Container interface {
	SetHTML(fragment string)
}

// Fields are the four display strings computed from a profile.
type Fields struct {
	Name       string
	Email      string
	Experience string
	Skills     string
}

var fragment = template.Must(template.New("profile").Parse(`
    <h2>{{.Name}}</h2>
    <p>Email: {{.Email}}</p>
    <p>Experience: {{.Experience}}</p>
    <p>Skills: {{.Skills}}</p>
`))

type Renderer struct {
	policy EscapePolicy
}

func NewRenderer(policy EscapePolicy) *Renderer {
	return &Renderer{policy: policy}
}

// Project computes the display strings with their fallbacks.
func Project(p *profile.Profile) Fields {
	if p == nil {
		p = &profile.Profile{}
	}

	f := Fields{
		Name:   NoNameFallback,
		Email:  NoEmailFallback,
		Skills: JoinLabels(p.Skills),
	}
	if name, ok := p.Name.Value(); ok {
		f.Name = name
	}
	if email, ok := p.Email.Value(); ok {
		f.Email = email
	}
	if p.Experience.IsList {
		f.Experience = JoinLabels(p.Experience.Entries)
	} else {
		f.Experience = p.Experience.Text
	}

	return f
}

func JoinLabels(entries []profile.Entry) string {
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.Label())
	}
	return strings.Join(labels, listSeparator)
}

// Render builds the result fragment for p.
func (r *Renderer) Render(p *profile.Profile) string {
	f := Project(p)

	var sb strings.Builder
	// writes to a strings.Builder cannot fail
	_ = fragment.Execute(&sb, struct {
		Name, Email, Experience, Skills template.HTML
	}{
		Name:       r.markup(f.Name),
		Email:      r.markup(f.Email),
		Experience: r.markup(f.Experience),
		Skills:     r.markup(f.Skills),
	})

	return sb.String()
}

func (r *Renderer) RenderInto(c Container, p *profile.Profile) {
	c.SetHTML(r.Render(p))
}

func (r *Renderer) markup(s string) template.HTML {
	if r.policy == RawHTML {
		return template.HTML(s)
	}
	return template.HTML(html.EscapeString(s))
}
