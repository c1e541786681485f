package profile

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

// EnvelopePath locates the fenced profile inside an enveloped response.
const EnvelopePath = "extracted_data.response"

const (
	fenceOpen  = "```json"
	fenceClose = "```"
)

// ResponseShape turns a decoded response body into a Profile.
type ResponseShape interface {
	Decode(body []byte) (*Profile, error)
	Name() string
}

// Direct is the contract where the body is the profile itself.
type Direct struct{}

func (Direct) Name() string { return "direct" }

func (Direct) Decode(body []byte) (*Profile, error) {
	return Parse(body)
}

// Enveloped is the contract where the profile arrives as a fenced JSON
// string under extracted_data.response.
type Enveloped struct{}

func (Enveloped) Name() string { return "enveloped" }

func (Enveloped) Decode(body []byte) (*Profile, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid envelope JSON", ErrDecode)
	}

	inner := gjson.GetBytes(body, EnvelopePath)
	if inner.Type != gjson.String {
		return nil, fmt.Errorf("%w: %s is missing or not a string", ErrDecode, EnvelopePath)
	}

	p, err := Parse([]byte(StripFence(inner.Str)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse enveloped response: %w", err)
	}
	return p, nil
}

// ShapeFor resolves a configured shape name.
func ShapeFor(name string) (ResponseShape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "direct", "":
		return Direct{}, nil
	case "enveloped", "envelope":
		return Enveloped{}, nil
	default:
		return nil, fmt.Errorf("unknown response shape: %q", name)
	}
}

// StripFence removes a leading ```json marker with the whitespace after it
// and a trailing ``` marker with the whitespace before it. Only the edges of
// the string are touched.
func StripFence(s string) string {
	if strings.HasPrefix(s, fenceOpen) {
		s = strings.TrimLeftFunc(strings.TrimPrefix(s, fenceOpen), unicode.IsSpace)
	}
	if strings.HasSuffix(s, fenceClose) {
		s = strings.TrimRightFunc(strings.TrimSuffix(s, fenceClose), unicode.IsSpace)
	}
	return s
}
