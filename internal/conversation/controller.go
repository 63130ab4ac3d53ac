package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/marty/internal/app"
	"github.com/alexanderramin/marty/internal/domain"
	"github.com/alexanderramin/marty/internal/scheduler"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Settings are the planner's tunables.
type Settings struct {
	Window     domain.WorkWindow
	BlockHours float64
	// DeadlinePhrase is stored on every new session. It is not extracted
	// from the user's message.
	DeadlinePhrase string
	EventTitle     string
}

// DefaultSettings returns a 17:00-21:00 window, 2h blocks and a one-week deadline.
func DefaultSettings() Settings {
	return Settings{
		Window:         domain.DefaultWorkWindow,
		BlockHours:     scheduler.DefaultBlockHours,
		DeadlinePhrase: "next week",
		EventTitle:     "Work session",
	}
}

// Controller drives one planning session through its phases, one line of
// input at a time. It is not safe for concurrent use.
type Controller struct {
	classifier app.ConfirmationClassifier
	calendar   app.CalendarGateway
	settings   Settings
	now        func() time.Time
	newID      func() string
	logger     *zap.Logger

	session PlanningSession
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger used for transitions and gateway failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithIDGenerator overrides the session id source.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// NewController creates an idle Controller.
func NewController(classifier app.ConfirmationClassifier, calendar app.CalendarGateway, settings Settings, opts ...Option) *Controller {
	c := &Controller{
		classifier: classifier,
		calendar:   calendar,
		settings:   settings,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns a copy of the current session.
func (c *Controller) Session() PlanningSession {
	return c.session.clone()
}

// Active reports whether a planning session is in progress.
func (c *Controller) Active() bool {
	return c.session.Active()
}

// Handle processes one line of input. handled is false only when no session
// is active and the input carries no planning intent; the caller should
// route such input elsewhere.
func (c *Controller) Handle(ctx context.Context, input string) (msgs []app.Message, handled bool) {
	text := strings.TrimSpace(input)
	sess := &c.session

	if !sess.Active() {
		if !HasPlanningIntent(text) {
			return nil, false
		}
		return c.start(sess, text), true
	}

	if isCancelCommand(text) {
		return c.cancel(sess, "Okay, I've dropped the plan."), true
	}

	switch sess.Phase {
	case PhaseAwaitingHours:
		return c.handleHours(ctx, sess, text), true
	case PhaseAwaitingScheduleConfirmation:
		return c.handleScheduleConfirmation(ctx, sess, text), true
	case PhaseAwaitingFinalConfirmation:
		return c.handleFinalConfirmation(ctx, sess, text), true
	default:
		c.logger.Error("planning session in unexpected phase", zap.Stringer("phase", sess.Phase))
		sess.reset()
		return []app.Message{app.Error("Something went wrong with the plan, so I've cancelled it.")}, true
	}
}

func (c *Controller) start(sess *PlanningSession, text string) []app.Message {
	*sess = PlanningSession{
		ID:              c.newID(),
		TaskDescription: text,
		DeadlinePhrase:  c.settings.DeadlinePhrase,
	}
	c.transition(sess, PhaseAwaitingHours)
	return []app.Message{
		app.Say("Sounds like something with a deadline. Let's find time for it."),
		app.Prompt("Roughly how many hours do you think it will take?"),
	}
}

func (c *Controller) handleHours(ctx context.Context, sess *PlanningSession, text string) []app.Message {
	hours, ok := ParseHours(text)
	if !ok {
		if c.classifier.Classify(ctx, text) == domain.Decline {
			return c.cancel(sess, "No problem, I'll leave it.")
		}
		return []app.Message{app.Prompt("I need a number, like 5. Roughly how many hours do you think it will take?")}
	}

	sess.RequiredHours = hours
	c.transition(sess, PhaseAwaitingScheduleConfirmation)

	n := scheduler.SessionCount(hours, c.settings.BlockHours)
	return []app.Message{
		app.Say("%sh of work is %s of up to %sh.", FormatHours(hours), plural(n, "session"), FormatHours(c.settings.BlockHours)),
		app.Prompt("Want me to look for free time before %s is out?", sess.DeadlinePhrase),
	}
}

func (c *Controller) handleScheduleConfirmation(ctx context.Context, sess *PlanningSession, text string) []app.Message {
	switch c.classifier.Classify(ctx, text) {
	case domain.Confirm:
		return c.propose(ctx, sess)
	case domain.Decline:
		return c.cancel(sess, "No problem, I won't schedule anything.")
	default:
		return []app.Message{app.Prompt("Sorry, was that a yes or a no?")}
	}
}

// propose reads the calendar, runs the scheduler and shows the result.
// Any failure ends the session.
func (c *Controller) propose(ctx context.Context, sess *PlanningSession) []app.Message {
	now := c.now()
	deadline := scheduler.ResolveDeadline(sess.DeadlinePhrase, now)

	busy, err := c.calendar.ListBusy(ctx, now, deadline)
	if err != nil {
		c.logger.Warn("listing busy intervals failed",
			zap.String("session", sess.ID), zap.Time("deadline", deadline), zap.Error(err))
		msgs := c.cancel(sess, "I've cancelled the plan.")
		return append([]app.Message{app.Error("I couldn't read your calendar: %v", err)}, msgs...)
	}

	blocks := scheduler.PlanBlocks(scheduler.PlanRequest{
		RequiredHours: sess.RequiredHours,
		Deadline:      deadline,
		Now:           now,
		Busy:          busy,
		Window:        c.settings.Window,
		BlockHours:    c.settings.BlockHours,
	})
	if len(blocks) == 0 {
		hours := sess.RequiredHours
		c.logger.Info("no feasible schedule",
			zap.String("session", sess.ID), zap.Float64("hours", hours), zap.Int("busy", len(busy)))
		sess.reset()
		return []app.Message{app.Warn("I couldn't fit %sh of work into the %s window before %s. Nothing was scheduled.",
			FormatHours(hours), c.settings.Window, deadline.Format("Mon Jan 2"))}
	}

	sess.ProposedBlocks = blocks
	c.transition(sess, PhaseAwaitingFinalConfirmation)
	return []app.Message{
		app.Say("Here's what I found:"),
		app.Say("%s", FormatPreview(blocks)),
		app.Prompt("Should I add these to your calendar?"),
	}
}

func (c *Controller) handleFinalConfirmation(ctx context.Context, sess *PlanningSession, text string) []app.Message {
	switch c.classifier.Classify(ctx, text) {
	case domain.Confirm:
		return c.commit(ctx, sess)
	case domain.Decline:
		return c.cancel(sess, "Okay, I won't add them.")
	default:
		return []app.Message{app.Prompt("Sorry, was that a yes or a no? Should I add these to your calendar?")}
	}
}

// commit inserts each proposed block exactly once. A failed insert is
// reported and does not stop the rest; nothing is rolled back.
func (c *Controller) commit(ctx context.Context, sess *PlanningSession) []app.Message {
	var msgs []app.Message
	added := 0
	for i, b := range sess.ProposedBlocks {
		_, err := c.calendar.InsertEvent(ctx, domain.NewEvent{
			Title:       c.settings.EventTitle,
			Description: sess.TaskDescription,
			Start:       b.Start,
			End:         b.End,
		})
		if err != nil {
			c.logger.Warn("inserting work session failed",
				zap.String("session", sess.ID), zap.Int("block", i+1), zap.Time("start", b.Start), zap.Error(err))
			msgs = append(msgs, app.Warn("Couldn't add session %d (%s): %v", i+1, FormatBlock(b), err))
			continue
		}
		added++
	}

	c.logger.Info("planning session committed",
		zap.String("session", sess.ID), zap.Int("added", added), zap.Int("proposed", len(sess.ProposedBlocks)))
	sess.reset()

	if added == 0 {
		return append(msgs, app.Error("I couldn't add any work sessions to your calendar."))
	}
	return append(msgs, app.Say("%d work session(s) added to your calendar.", added))
}

func (c *Controller) cancel(sess *PlanningSession, text string) []app.Message {
	c.logger.Info("planning session cancelled", zap.String("session", sess.ID), zap.Stringer("phase", sess.Phase))
	sess.reset()
	return []app.Message{app.Say("%s", text)}
}

func (c *Controller) transition(sess *PlanningSession, to Phase) {
	c.logger.Debug("planning phase change",
		zap.String("session", sess.ID), zap.Stringer("from", sess.Phase), zap.Stringer("to", to))
	sess.Phase = to
}
