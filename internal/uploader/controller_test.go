package uploader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"alfredoptarigan/cv-uploader/internal/profile"
	"alfredoptarigan/cv-uploader/internal/render"
)

type fakeSource struct {
	file File
	ok   bool
}

func (s fakeSource) Selected() (File, bool) { return s.file, s.ok }

type fakeTrigger struct {
	mu      sync.Mutex
	enabled bool
	label   string
}

func (t *fakeTrigger) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

func (t *fakeTrigger) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}

func (t *fakeTrigger) Label() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.label
}

func (t *fakeTrigger) SetLabel(label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.label = label
}

type fakeNotifier struct {
	mu     sync.Mutex
	alerts []string
}

func (n *fakeNotifier) Alert(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, message)
}

func (n *fakeNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.alerts...)
}

type fakeContainer struct {
	mu    sync.Mutex
	html  string
	calls int
}

func (c *fakeContainer) SetHTML(fragment string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.html = fragment
	c.calls++
}

type fakeTransport struct {
	status int
	body   string
	err    error
	panics bool

	calls         int
	endpoint      string
	file          File
	enabledDuring bool
	labelDuring   string
	trigger       *fakeTrigger
	entered       chan struct{}
	release       chan struct{}
}

func (f *fakeTransport) Post(ctx context.Context, endpoint string, file File) (int, []byte, error) {
	f.calls++
	f.endpoint = endpoint
	f.file = file
	if f.trigger != nil {
		f.enabledDuring = f.trigger.Enabled()
		f.labelDuring = f.trigger.Label()
	}
	if f.entered != nil {
		close(f.entered)
		<-f.release
	}
	if f.panics {
		panic("transport exploded")
	}
	return f.status, []byte(f.body), f.err
}

type harness struct {
	trigger   *fakeTrigger
	notifier  *fakeNotifier
	container *fakeContainer
	transport *fakeTransport
	logs      *bytes.Buffer
	ctrl      *Controller
}

func newHarness(source FileSource, transport *fakeTransport, shape profile.ResponseShape, simulate bool) *harness {
	h := &harness{
		trigger:   &fakeTrigger{enabled: true, label: "Upload"},
		notifier:  &fakeNotifier{},
		container: &fakeContainer{},
		transport: transport,
		logs:      &bytes.Buffer{},
	}
	transport.trigger = h.trigger

	h.ctrl = NewController(source, h.trigger, h.notifier, h.container, render.NewRenderer(render.EscapeHTML), Options{
		Endpoint:        "http://backend.test/upload",
		Shape:           shape,
		Transport:       transport,
		Simulate:        simulate,
		SimulationDelay: 10 * time.Millisecond,
		Logger:          log.New(h.logs, "", 0),
	})
	return h
}

var selected = fakeSource{file: File{Name: "cv.pdf", Content: []byte("%PDF")}, ok: true}

func (h *harness) assertRestored(t *testing.T) {
	t.Helper()
	if !h.trigger.Enabled() || h.trigger.Label() != "Upload" {
		t.Errorf("trigger = enabled:%v label:%q; want enabled:true label:%q", h.trigger.Enabled(), h.trigger.Label(), "Upload")
	}
}

func TestSubmitWithoutFile(t *testing.T) {
	h := newHarness(fakeSource{}, &fakeTransport{status: 200, body: `{}`}, profile.Direct{}, false)
	h.trigger.SetEnabled(false)
	h.trigger.SetLabel("Untouched")

	err := h.ctrl.Submit(context.Background())
	if !errors.Is(err, ErrNoFileSelected) {
		t.Fatalf("Submit() error = %v; want ErrNoFileSelected", err)
	}
	if h.transport.calls != 0 {
		t.Errorf("transport called %d times; want 0", h.transport.calls)
	}
	if h.trigger.Enabled() || h.trigger.Label() != "Untouched" {
		t.Errorf("trigger state changed: enabled:%v label:%q", h.trigger.Enabled(), h.trigger.Label())
	}
	if got := h.notifier.all(); len(got) != 1 || got[0] != NoFileMessage {
		t.Errorf("alerts = %q; want [%q]", got, NoFileMessage)
	}
	if h.container.calls != 0 {
		t.Error("container should not be written")
	}
}

func TestSubmitDirectShape(t *testing.T) {
	h := newHarness(selected, &fakeTransport{
		status: 200,
		body:   `{"name":"A","email":"b@c.d","experience":"3 years","skills":["X","Y"]}`,
	}, profile.Direct{}, false)

	if err := h.ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if h.transport.endpoint != "http://backend.test/upload" || h.transport.file.Name != "cv.pdf" {
		t.Errorf("transport got endpoint %q file %q", h.transport.endpoint, h.transport.file.Name)
	}
	if h.transport.enabledDuring || h.transport.labelDuring != LoadingLabel {
		t.Errorf("trigger during call = enabled:%v label:%q; want busy", h.transport.enabledDuring, h.transport.labelDuring)
	}
	for _, want := range []string{"<h2>A</h2>", "b@c.d", "3 years", "X, Y"} {
		if !strings.Contains(h.container.html, want) {
			t.Errorf("fragment missing %q: %s", want, h.container.html)
		}
	}
	if len(h.notifier.all()) != 0 {
		t.Errorf("unexpected alerts: %q", h.notifier.all())
	}
	h.assertRestored(t)
}

func TestSubmitEnvelopedShape(t *testing.T) {
	h := newHarness(selected, &fakeTransport{
		status: 200,
		body:   `{"content":"...","extracted_data":{"response":"` + "```json\\n{\\\"name\\\":\\\"A\\\"}\\n```" + `"},"status":"success"}`,
	}, profile.Enveloped{}, false)

	if err := h.ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	for _, want := range []string{"<h2>A</h2>", "Email: null", "Experience: </p>", "Skills: </p>"} {
		if !strings.Contains(h.container.html, want) {
			t.Errorf("fragment missing %q: %s", want, h.container.html)
		}
	}
	h.assertRestored(t)
}

func TestSubmitFailures(t *testing.T) {
	tests := []struct {
		name      string
		transport *fakeTransport
		shape     profile.ResponseShape
		wantErr   error
	}{
		{"non-success status", &fakeTransport{status: 500, body: `{"name":"A"}`}, profile.Direct{}, ErrUploadFailed},
		{"not found", &fakeTransport{status: 404}, profile.Direct{}, ErrUploadFailed},
		{"network error", &fakeTransport{err: errors.New("connection refused")}, profile.Direct{}, ErrTransport},
		{"invalid json", &fakeTransport{status: 200, body: `oops`}, profile.Direct{}, ErrDecode},
		{"missing envelope", &fakeTransport{status: 200, body: `{"name":"A"}`}, profile.Enveloped{}, ErrDecode},
		{"bad fenced body", &fakeTransport{status: 200, body: `{"extracted_data":{"response":"nope"}}`}, profile.Enveloped{}, ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(selected, tt.transport, tt.shape, false)

			err := h.ctrl.Submit(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Submit() error = %v; want %v", err, tt.wantErr)
			}
			if h.container.calls != 0 {
				t.Error("renderer should not run on failure")
			}
			if got := h.notifier.all(); len(got) != 1 || got[0] != FailureMessage {
				t.Errorf("alerts = %q; want [%q]", got, FailureMessage)
			}
			if !strings.Contains(h.logs.String(), "cv.pdf") {
				t.Errorf("failure not logged: %q", h.logs.String())
			}
			h.assertRestored(t)
		})
	}
}

func TestSubmitRestoresPreviousState(t *testing.T) {
	h := newHarness(selected, &fakeTransport{status: 200, body: `{}`}, profile.Direct{}, false)
	h.trigger.SetLabel("Parse CV")

	if err := h.ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !h.trigger.Enabled() || h.trigger.Label() != "Parse CV" {
		t.Errorf("trigger = enabled:%v label:%q", h.trigger.Enabled(), h.trigger.Label())
	}
}

func TestSimulationMode(t *testing.T) {
	h := newHarness(selected, &fakeTransport{status: 500}, profile.Enveloped{}, true)

	if err := h.ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if h.transport.calls != 0 {
		t.Errorf("transport called %d times in simulation", h.transport.calls)
	}
	for _, want := range []string{"Ivan Ivanov", "ivan@example.com", "3 years", "Python, Django, REST"} {
		if !strings.Contains(h.container.html, want) {
			t.Errorf("fragment missing %q: %s", want, h.container.html)
		}
	}
	h.assertRestored(t)
}

func TestSimulationCancelled(t *testing.T) {
	h := newHarness(selected, &fakeTransport{}, profile.Direct{}, true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.ctrl.Submit(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Submit() error = %v; want context.Canceled", err)
	}
	if got := h.notifier.all(); len(got) != 1 || got[0] != FailureMessage {
		t.Errorf("alerts = %q", got)
	}
	h.assertRestored(t)
}

func TestHandleClickRecoversPanics(t *testing.T) {
	h := newHarness(selected, &fakeTransport{panics: true}, profile.Direct{}, false)

	err := <-h.ctrl.HandleClick(context.Background())
	if err == nil || !strings.Contains(err.Error(), "panicked") {
		t.Fatalf("HandleClick() error = %v; want panic error", err)
	}
	if got := h.notifier.all(); len(got) != 1 || got[0] != FailureMessage {
		t.Errorf("alerts = %q", got)
	}
	h.assertRestored(t)
}

func TestHandleClickRejectsConcurrentSubmission(t *testing.T) {
	transport := &fakeTransport{
		status:  200,
		body:    `{"name":"A"}`,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	h := newHarness(selected, transport, profile.Direct{}, false)

	first := h.ctrl.HandleClick(context.Background())
	<-transport.entered

	if err := h.ctrl.Submit(context.Background()); !errors.Is(err, ErrSubmissionInFlight) {
		t.Errorf("second Submit() error = %v; want ErrSubmissionInFlight", err)
	}
	if h.trigger.Enabled() || h.trigger.Label() != LoadingLabel {
		t.Error("rejected submission should not touch the busy trigger")
	}

	close(transport.release)
	if err := <-first; err != nil {
		t.Fatalf("first submission error = %v", err)
	}
	if _, open := <-first; open {
		t.Error("outcome channel should be closed after delivery")
	}
	h.assertRestored(t)
}

func TestHTTPTransportSendsMultipartFile(t *testing.T) {
	var (
		gotField   string
		gotName    string
		gotContent string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for field, headers := range r.MultipartForm.File {
			gotField = field
			gotName = headers[0].Filename
			f, _ := headers[0].Open()
			data, _ := io.ReadAll(f)
			f.Close()
			gotContent = string(data)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"name":"A"}`)
	}))
	defer srv.Close()

	status, body, err := NewHTTPTransport().Post(context.Background(), srv.URL, File{Name: "cv.txt", Content: []byte("hello")})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if status != http.StatusOK || string(body) != `{"name":"A"}` {
		t.Errorf("Post() = %d %s", status, body)
	}
	if gotField != FieldName || gotName != "cv.txt" || gotContent != "hello" {
		t.Errorf("server saw field %q name %q content %q", gotField, gotName, gotContent)
	}
}

func TestHTTPTransportHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := NewHTTPTransport().Post(ctx, "http://127.0.0.1:1", File{Name: "x"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Post() error = %v; want context.Canceled", err)
	}
}
