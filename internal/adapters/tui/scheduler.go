package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kashbill/internal/ports/output"
)

var _ output.Scheduler = (*ProgramScheduler)(nil)

// timerFiredMsg carries a due callback into Update, so timer work runs on the
// program's event loop like any other message.
type timerFiredMsg struct {
	timer *programTimer
	fn    func()
}

// ProgramScheduler implements output.Scheduler on top of a tea.Program.
type ProgramScheduler struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func NewProgramScheduler() *ProgramScheduler {
	return &ProgramScheduler{}
}

// Attach routes fired timers to p. It must be called before p.Run.
func (s *ProgramScheduler) Attach(p *tea.Program) {
	s.mu.Lock()
	s.send = p.Send
	s.mu.Unlock()
}

func (s *ProgramScheduler) AfterFunc(d time.Duration, fn func()) output.Timer {
	t := &programTimer{}
	t.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		send := s.send
		s.mu.Unlock()
		if send != nil {
			send(timerFiredMsg{timer: t, fn: fn})
		}
	})
	return t
}

type programTimer struct {
	timer *time.Timer

	mu   sync.Mutex
	dead bool
}

// Stop also cancels a callback whose message is already queued.
func (t *programTimer) Stop() bool {
	t.mu.Lock()
	wasDead := t.dead
	t.dead = true
	t.mu.Unlock()
	t.timer.Stop()
	return !wasDead
}

func (t *programTimer) claim() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dead {
		return false
	}
	t.dead = true
	return true
}
