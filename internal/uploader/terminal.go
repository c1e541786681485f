package uploader

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// PathSource selects the file at Path. An empty path or an unreadable file
// counts as no selection.
type PathSource struct {
	Path string
}

func (s PathSource) Selected() (File, bool) {
	if strings.TrimSpace(s.Path) == "" {
		return File{}, false
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		log.Printf("⚠️  Cannot read %s: %v\n", s.Path, err)
		return File{}, false
	}

	return File{Name: filepath.Base(s.Path), Content: data}, true
}

// ConsoleTrigger is a Trigger that reports its state changes to a writer.
type ConsoleTrigger struct {
	mu      sync.Mutex
	enabled bool
	label   string
	out     io.Writer
}

func NewConsoleTrigger(out io.Writer, label string) *ConsoleTrigger {
	return &ConsoleTrigger{enabled: true, label: label, out: out}
}

func (t *ConsoleTrigger) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

func (t *ConsoleTrigger) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}

func (t *ConsoleTrigger) Label() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.label
}

func (t *ConsoleTrigger) SetLabel(label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.label = label
	fmt.Fprintf(t.out, "[%s]\n", label)
}

type ConsoleNotifier struct {
	Out io.Writer
}

func (n ConsoleNotifier) Alert(message string) {
	fmt.Fprintf(n.Out, "⚠️  %s\n", message)
}

// FileContainer writes each fragment to Path and prints its text to Out.
type FileContainer struct {
	Path string
	Out  io.Writer
}

func (c FileContainer) SetHTML(fragment string) {
	if c.Path != "" {
		if err := os.WriteFile(c.Path, []byte(fragment), 0644); err != nil {
			log.Printf("❌ Failed to write result to %s: %v\n", c.Path, err)
		}
	}

	if c.Out == nil {
		return
	}

	summary, err := Summarize(fragment)
	if err != nil {
		log.Printf("⚠️  Failed to summarize result: %v\n", err)
		fmt.Fprintln(c.Out, fragment)
		return
	}
	fmt.Fprintln(c.Out, summary)
}

// Summarize flattens a rendered fragment to one line per heading or paragraph.
func Summarize(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse fragment: %w", err)
	}

	var lines []string
	doc.Find("h2, p").Each(func(_ int, s *goquery.Selection) {
		lines = append(lines, strings.TrimSpace(s.Text()))
	})

	return strings.Join(lines, "\n"), nil
}
