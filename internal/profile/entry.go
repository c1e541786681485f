package profile

import "github.com/tidwall/gjson"

type EntryKind int

const (
	// StringEntry is a plain string.
	StringEntry EntryKind = iota
	// LabeledEntry is an object whose label field holds any truthy value.
	LabeledEntry
	// OtherEntry is anything else, shown as its raw JSON.
	OtherEntry
)

func (k EntryKind) String() string {
	switch k {
	case StringEntry:
		return "string"
	case LabeledEntry:
		return "labeled"
	default:
		return "other"
	}
}

// Entry is one skills or experience item.
type Entry struct {
	Kind EntryKind
	Text string
	Raw  string
}

var (
	skillLabels      = []string{"name"}
	experienceLabels = []string{"position", "title"}
)

func SkillEntry(r gjson.Result) Entry {
	return entryFrom(r, skillLabels)
}

func ExperienceEntry(r gjson.Result) Entry {
	return entryFrom(r, experienceLabels)
}

func entryFrom(r gjson.Result, labels []string) Entry {
	if r.Type == gjson.String {
		return Entry{Kind: StringEntry, Text: r.Str, Raw: r.Raw}
	}

	raw := compact(r.Raw)
	if r.IsObject() {
		for _, key := range labels {
			if text, ok := textFrom(r.Get(key)).Value(); ok {
				return Entry{Kind: LabeledEntry, Text: text, Raw: raw}
			}
		}
	}

	return Entry{Kind: OtherEntry, Raw: raw}
}

// Label is the display text: the string itself, the label field, or the raw
// dump, in that order.
func (e Entry) Label() string {
	switch e.Kind {
	case StringEntry, LabeledEntry:
		return e.Text
	case OtherEntry:
		return e.Raw
	default:
		return e.Raw
	}
}
