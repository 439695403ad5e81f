// Package submit runs the community form: live validation, draft keeping and
// the simulated asynchronous submission cycle.
package submit

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/pokefans/draft"
	"github.com/eringen/pokefans/eventloop"
	"github.com/eringen/pokefans/feed"
	"github.com/eringen/pokefans/ui"
	"github.com/eringen/pokefans/validate"
)

const (
	DefaultSubmitDelay     = 1500 * time.Millisecond
	DefaultSuccessDuration = 5 * time.Second
)

// Banner and control text.
const (
	MsgInvalid    = "Please fix the highlighted fields and try again."
	MsgSaveFailed = "We could not save your submission. Please try again."
	MsgSuccess    = "Thanks for joining, trainer! Your submission is now in the community feed."
	LabelIdle     = "Join the Community"
	LabelBusy     = "Submitting..."
)

// State is a step of the submission cycle.
type State int

const (
	Idle State = iota
	Validating
	Invalid
	Submitting
	Success
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Invalid:
		return "invalid"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Config holds the controller's timings.
type Config struct {
	SubmitDelay     time.Duration
	SuccessDuration time.Duration
}

func (c *Config) setDefaults() {
	if c.SubmitDelay <= 0 {
		c.SubmitDelay = DefaultSubmitDelay
	}
	if c.SuccessDuration <= 0 {
		c.SuccessDuration = DefaultSuccessDuration
	}
}

// Deps are the collaborators a Controller works with.
type Deps struct {
	Loop    *eventloop.Loop
	Surface *ui.Surface
	Form    *Form
	Drafts  *draft.Store
	Feed    *feed.Store
	Logger  echo.Logger
	Config  Config

	// NewID generates submission IDs. Defaults to random UUIDs.
	NewID func() string
	// OnSubmitted runs after a submission has been stored.
	OnSubmitted func(feed.Submission)
}

// Controller owns the form's state machine. All methods must run on the
// loop.
type Controller struct {
	loop    *eventloop.Loop
	surface *ui.Surface
	form    *Form
	drafts  *draft.Store
	feed    *feed.Store
	logger  echo.Logger
	cfg     Config
	newID   func() string
	done    func(feed.Submission)

	state    State
	inflight *eventloop.Handle
	hide     *eventloop.Handle
}

// NewController returns an idle controller.
func NewController(d Deps) *Controller {
	d.Config.setDefaults()
	if d.Logger == nil {
		d.Logger = log.New("submit")
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	if d.Form == nil {
		d.Form = NewForm(DefaultFields())
	}
	return &Controller{
		loop:    d.Loop,
		surface: d.Surface,
		form:    d.Form,
		drafts:  d.Drafts,
		feed:    d.Feed,
		logger:  d.Logger,
		cfg:     d.Config,
		newID:   d.NewID,
		done:    d.OnSubmitted,
	}
}

// Bind wires the form's events.
func (c *Controller) Bind(d *eventloop.Dispatcher) {
	d.On(eventloop.EventInput, func(ev eventloop.Event) {
		c.Input(ev.Target, ev.Value)
	})
	d.On(eventloop.EventBlur, func(ev eventloop.Event) {
		c.Blur(ev.Target)
	})
	d.On(eventloop.EventSubmit, func(ev eventloop.Event) {
		if ev.Target == "" || ev.Target == ui.CommunityForm || ev.Target == ui.SubmitButton {
			c.Submit()
		}
	})
}

// State returns the current step.
func (c *Controller) State() State {
	return c.state
}

// Form returns the form model.
func (c *Controller) Form() *Form {
	return c.form
}

// Stamp sets the hidden timestamp field to the loop's current time.
func (c *Controller) Stamp() {
	v := c.loop.Now().UTC().Format(time.RFC3339)
	if c.form.Set(FieldTimestamp, v) {
		c.surface.Get(FieldTimestamp).SetValue(v)
	}
}

// Input records a new value for field, keeps it as a draft and validates it.
func (c *Controller) Input(field, value string) {
	f, ok := c.form.Field(field)
	if !ok {
		return
	}
	if field == FieldMessage && utf8.RuneCountInString(value) > MessageLimit {
		value = string([]rune(value)[:MessageLimit])
	}
	c.form.Set(field, value)
	c.surface.Get(field).SetValue(value)
	if field != FieldTimestamp {
		if err := c.drafts.Save(field, value); err != nil {
			c.logger.Errorf("keeping draft of %s: %v", field, err)
		}
	}
	if field == FieldMessage {
		c.surface.Get(ui.MessageCounter).SetText(strconv.Itoa(utf8.RuneCountInString(value)))
	}
	if f.Kind != validate.Plain {
		f.Value = value
		validate.Check(c.surface, f)
	}
}

// Blur validates field once the visitor leaves it.
func (c *Controller) Blur(field string) {
	f, ok := c.form.Field(field)
	if !ok || f.Kind == validate.Plain {
		return
	}
	validate.Check(c.surface, f)
}

// Submit starts a submission cycle. It is ignored while one is in flight.
func (c *Controller) Submit() {
	if c.state == Validating || c.state == Submitting {
		c.logger.Debugf("submit ignored while %s", c.state)
		return
	}
	c.setState(Validating)

	banner := c.surface.Get(ui.FormError)
	if !validate.All(c.surface, c.form.Fields()) {
		c.setState(Invalid)
		banner.SetText(MsgInvalid)
		banner.Show()
		c.setState(Idle)
		return
	}
	banner.SetText("")
	banner.Hide()

	c.setState(Submitting)
	c.setBusy(true)
	values := c.form.Snapshot()
	c.inflight = c.loop.After(c.cfg.SubmitDelay, func() {
		c.complete(values)
	})
}

// Pending reports whether a submission or success banner timer is waiting.
func (c *Controller) Pending() bool {
	return c.inflight.Pending() || c.hide.Pending()
}

func (c *Controller) complete(values map[string]string) {
	c.inflight = nil
	sub := feed.Submission{
		ID:           c.newID(),
		TrainerName:  strings.TrimSpace(values[FieldTrainerName]),
		Email:        strings.TrimSpace(values[FieldEmail]),
		FavoriteType: values[FieldFavoriteType],
		Message:      values[FieldMessage],
		Timestamp:    values[FieldTimestamp],
		SubmittedAt:  c.loop.Now().UTC(),
	}
	if err := c.feed.Append(sub); err != nil {
		c.logger.Errorf("storing submission: %v", err)
		banner := c.surface.Get(ui.FormError)
		banner.SetText(MsgSaveFailed)
		banner.Show()
		c.setBusy(false)
		c.setState(Idle)
		return
	}
	if err := c.drafts.Clear(c.form.DraftIDs()...); err != nil {
		c.logger.Errorf("clearing draft after submission %s: %v", sub.ID, err)
	}

	c.reset()
	c.setBusy(false)
	c.setState(Success)

	ok := c.surface.Get(ui.FormSuccess)
	ok.SetText(MsgSuccess)
	ok.Show()
	c.hide.Cancel()
	c.hide = c.loop.After(c.cfg.SuccessDuration, func() {
		c.hide = nil
		c.surface.Get(ui.FormSuccess).Hide()
		if c.state == Success {
			c.setState(Idle)
		}
	})

	c.logger.Infof("submission %s stored for %q", sub.ID, sub.TrainerName)
	if c.done != nil {
		c.done(sub)
	}
}

func (c *Controller) reset() {
	fields := c.form.Fields()
	c.form.Reset()
	for _, f := range fields {
		c.surface.Get(f.ID).SetValue("")
	}
	validate.Clear(c.surface, fields)
	c.surface.Get(ui.MessageCounter).SetText("0")
	c.Stamp()
}

func (c *Controller) setBusy(busy bool) {
	btn := c.surface.Get(ui.SubmitButton)
	btn.SetDisabled(busy)
	if busy {
		btn.SetAttr("aria-busy", "true")
		c.surface.Get(ui.SubmitLabel).Hide()
		c.surface.Get(ui.SubmitSpinner).SetText(LabelBusy)
		c.surface.Get(ui.SubmitSpinner).Show()
		return
	}
	btn.SetAttr("aria-busy", "false")
	c.surface.Get(ui.SubmitSpinner).Hide()
	c.surface.Get(ui.SubmitLabel).SetText(LabelIdle)
	c.surface.Get(ui.SubmitLabel).Show()
}

func (c *Controller) setState(s State) {
	c.logger.Debugf("submit: %s -> %s", c.state, s)
	c.state = s
}
