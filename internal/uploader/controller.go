package uploader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"alfredoptarigan/cv-uploader/internal/profile"
	"alfredoptarigan/cv-uploader/internal/render"
)

const (
	FieldName      = "file"
	LoadingLabel   = "Loading..."
	NoFileMessage  = "Please select a file"
	FailureMessage = "An error occurred while uploading the file"

	DefaultSimulationDelay = time.Second
)

var (
	ErrNoFileSelected     = errors.New("no file selected")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrUploadFailed       = errors.New("file upload failed")
	ErrTransport          = errors.New("upload request failed")
	ErrDecode             = profile.ErrDecode
)

// File is the content picked by the user.
type File struct {
	Name    string
	Content []byte
}

// FileSource reports the current selection, if any.
type FileSource interface {
	Selected() (File, bool)
}

// Trigger is the control that starts a submission.
type Trigger interface {
	Enabled() bool
	SetEnabled(enabled bool)
	Label() string
	SetLabel(label string)
}

// Notifier shows a blocking notice to the user.
type Notifier interface {
	Alert(message string)
}

type Options struct {
	Endpoint        string
	Shape           profile.ResponseShape
	Transport       Transport
	Simulate        bool
	SimulationDelay time.Duration
	Logger          *log.Logger
}

// Controller runs the upload-and-render flow for one trigger.
type Controller struct {
	files     FileSource
	trigger   Trigger
	notifier  Notifier
	container render.Container
	renderer  *render.Renderer
	opts      Options
	inFlight  atomic.Bool
}

func NewController(
	files FileSource,
	trigger Trigger,
	notifier Notifier,
	container render.Container,
	renderer *render.Renderer,
	opts Options,
) *Controller {
	if opts.Shape == nil {
		opts.Shape = profile.Direct{}
	}
	if opts.Transport == nil {
		opts.Transport = NewHTTPTransport()
	}
	if opts.SimulationDelay <= 0 {
		opts.SimulationDelay = DefaultSimulationDelay
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Controller{
		files:     files,
		trigger:   trigger,
		notifier:  notifier,
		container: container,
		renderer:  renderer,
		opts:      opts,
	}
}

// Submit uploads the selected file and renders the extracted profile. Every
// failure after validation is reported to the user with the same generic
// notice; the returned error carries the detail.
func (c *Controller) Submit(ctx context.Context) error {
	file, ok := c.files.Selected()
	if !ok {
		c.notifier.Alert(NoFileMessage)
		return ErrNoFileSelected
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	release := c.acquireBusy()
	defer release()

	p, err := c.fetch(ctx, file)
	if err != nil {
		c.opts.Logger.Printf("❌ Upload of %q failed: %v", file.Name, err)
		c.notifier.Alert(FailureMessage)
		return err
	}

	c.renderer.RenderInto(c.container, p)
	return nil
}

// HandleClick runs Submit on its own goroutine. The returned channel yields
// the outcome once and is then closed.
func (c *Controller) HandleClick(ctx context.Context) <-chan error {
	done := make(chan error, 1)

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				c.opts.Logger.Printf("❌ Upload handler panicked: %v", r)
				c.notifier.Alert(FailureMessage)
				done <- fmt.Errorf("upload handler panicked: %v", r)
			}
		}()

		done <- c.Submit(ctx)
	}()

	return done
}

// acquireBusy disables the trigger and returns the func that restores it.
func (c *Controller) acquireBusy() func() {
	wasEnabled := c.trigger.Enabled()
	originalLabel := c.trigger.Label()

	c.trigger.SetEnabled(false)
	c.trigger.SetLabel(LoadingLabel)

	return func() {
		c.trigger.SetEnabled(wasEnabled)
		c.trigger.SetLabel(originalLabel)
	}
}

func (c *Controller) fetch(ctx context.Context, file File) (*profile.Profile, error) {
	if c.opts.Simulate {
		return c.simulate(ctx)
	}

	status, body, err := c.opts.Transport.Post(ctx, c.opts.Endpoint, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if status < 200 || status > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUploadFailed, status)
	}

	p, err := c.opts.Shape.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", c.opts.Shape.Name(), err)
	}

	return p, nil
}

func (c *Controller) simulate(ctx context.Context) (*profile.Profile, error) {
	timer := time.NewTimer(c.opts.SimulationDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("simulation cancelled: %w", ctx.Err())
	case <-timer.C:
		return profile.Sample(), nil
	}
}
