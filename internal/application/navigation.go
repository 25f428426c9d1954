package application

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"kashbill/internal/domain"
	"kashbill/internal/domain/entities"
	"kashbill/internal/ports/input"
	"kashbill/internal/ports/output"
)

var _ input.NavigationUseCase = (*NavigationController)(nil)

// Phase is the transition state of the controller.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseExiting
	PhaseEntering
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseExiting:
		return "exiting"
	case PhaseEntering:
		return "entering"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Transitioning reports whether an exit or enter animation is running.
func (p Phase) Transitioning() bool {
	return p != PhaseIdle
}

// EventKind tags controller notifications.
type EventKind string

const (
	EventExitStarted    EventKind = "exit_started"
	EventExitCompleted  EventKind = "exit_completed"
	EventUnmounted      EventKind = "unmounted"
	EventMounted        EventKind = "mounted"
	EventEnterStarted   EventKind = "enter_started"
	EventEnterCompleted EventKind = "enter_completed"
	EventEnterCancelled EventKind = "enter_cancelled"
	EventSuperseded     EventKind = "superseded"
	EventNoOp           EventKind = "noop"
	EventRouteMismatch  EventKind = "route_mismatch"
)

// Event is emitted on every observable step of a transition.
type Event struct {
	Kind EventKind
	Page entities.PageID
	Path string
}

// Listener receives controller events synchronously.
type Listener func(Event)

// Durations bounds the exit and enter animations.
type Durations struct {
	Exit  time.Duration
	Enter time.Duration
}

// DefaultDurations mirrors a 300ms fade each way.
var DefaultDurations = Durations{Exit: 300 * time.Millisecond, Enter: 300 * time.Millisecond}

// NavigationSnapshot is a copy of the navigation state.
type NavigationSnapshot struct {
	Phase   Phase
	Mounted entities.PageID // empty before the first navigation
	Pending entities.PageID // set only while exiting
	Path    string          // path the mounted page was reached by
}

// NavigationController maps paths to pages and sequences exit then mount then
// enter, with the latest navigation winning over any in-flight one.
//
// It is not safe for concurrent use: Navigate and the scheduler callbacks must
// run on the same logical thread, which output.Scheduler guarantees.
type NavigationController struct {
	routes    *entities.RouteTable
	scheduler output.Scheduler
	durations Durations
	listener  Listener
	logger    *zap.Logger

	phase       Phase
	mounted     entities.PageID
	pending     entities.PageID
	pendingPath string
	path        string
	timer       output.Timer
	generation  uint64
}

// NewNavigationController builds an idle controller with nothing mounted.
func NewNavigationController(
	routes *entities.RouteTable,
	scheduler output.Scheduler,
	durations Durations,
	logger *zap.Logger,
) *NavigationController {
	if logger == nil {
		logger = zap.NewNop()
	}
	if durations.Exit <= 0 {
		durations.Exit = DefaultDurations.Exit
	}
	if durations.Enter <= 0 {
		durations.Enter = DefaultDurations.Enter
	}
	return &NavigationController{
		routes:    routes,
		scheduler: scheduler,
		durations: durations,
		logger:    logger,
	}
}

// OnEvent installs the listener; nil removes it.
func (c *NavigationController) OnEvent(l Listener) {
	c.listener = l
}

// Routes exposes the immutable route table.
func (c *NavigationController) Routes() *entities.RouteTable {
	return c.routes
}

// Navigate handles a route change. A path with no matching route leaves the
// mounted page in place and returns domain.ErrRouteNotFound.
func (c *NavigationController) Navigate(path string) error {
	page, ok := c.routes.Match(path)
	if !ok {
		c.logger.Warn("no route matches path", zap.String("path", path))
		c.emit(EventRouteMismatch, "", path)
		return fmt.Errorf("navigate %q: %w", path, domain.ErrRouteNotFound)
	}
	normalized := entities.NormalizePath(path)

	switch c.phase {
	case PhaseIdle:
		if c.mounted == "" {
			c.path = normalized
			c.mountAndEnter(page)
			return nil
		}
		if page == c.mounted {
			c.path = normalized
			c.emit(EventNoOp, page, normalized)
			return nil
		}
		c.pending = page
		c.pendingPath = normalized
		c.phase = PhaseExiting
		c.emit(EventExitStarted, c.mounted, c.path)
		c.schedule(c.durations.Exit, c.exitCompleted)

	case PhaseExiting:
		// The exit keeps running; only the destination changes.
		if page != c.pending {
			c.emit(EventSuperseded, c.pending, c.pendingPath)
		}
		c.pending = page
		c.pendingPath = normalized

	case PhaseEntering:
		if page == c.mounted {
			c.path = normalized
			c.emit(EventNoOp, page, normalized)
			return nil
		}
		c.stopTimer()
		c.emit(EventEnterCancelled, c.mounted, c.path)
		c.emit(EventUnmounted, c.mounted, c.path)
		c.path = normalized
		c.mountAndEnter(page)
	}
	return nil
}

func (c *NavigationController) exitCompleted() {
	if c.phase != PhaseExiting {
		return
	}
	c.emit(EventExitCompleted, c.mounted, c.path)
	c.emit(EventUnmounted, c.mounted, c.path)
	target := c.pending
	c.path = c.pendingPath
	c.pending, c.pendingPath = "", ""
	c.mountAndEnter(target)
}

func (c *NavigationController) mountAndEnter(page entities.PageID) {
	c.mounted = page
	c.phase = PhaseEntering
	c.emit(EventMounted, page, c.path)
	c.emit(EventEnterStarted, page, c.path)
	c.schedule(c.durations.Enter, c.enterCompleted)
}

func (c *NavigationController) enterCompleted() {
	if c.phase != PhaseEntering {
		return
	}
	c.phase = PhaseIdle
	c.timer = nil
	c.emit(EventEnterCompleted, c.mounted, c.path)
}

// schedule arms fn behind a generation check so a callback that was already
// dispatched when its timer got stopped cannot act on newer state.
func (c *NavigationController) schedule(d time.Duration, fn func()) {
	c.stopTimer()
	c.generation++
	gen := c.generation
	c.timer = c.scheduler.AfterFunc(d, func() {
		if gen != c.generation {
			return
		}
		fn()
	})
}

func (c *NavigationController) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
}

func (c *NavigationController) emit(kind EventKind, page entities.PageID, path string) {
	c.logger.Debug("navigation", zap.String("event", string(kind)), zap.String("page", string(page)), zap.String("path", path))
	if c.listener != nil {
		c.listener(Event{Kind: kind, Page: page, Path: path})
	}
}

// Current returns the mounted page (the outgoing one while exiting).
func (c *NavigationController) Current() entities.PageID {
	return c.mounted
}

// Snapshot copies the navigation state.
func (c *NavigationController) Snapshot() NavigationSnapshot {
	return NavigationSnapshot{
		Phase:   c.phase,
		Mounted: c.mounted,
		Pending: c.pending,
		Path:    c.path,
	}
}
