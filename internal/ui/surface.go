package ui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Surface is the presentation target of a screen: one text area plus transient notifications.
type Surface interface {
	SetText(text string)
	Text() string
	ShowNotification(msg string, ttl time.Duration)
}

// TerminalSurface renders onto writers: text to out, notifications to notices.
type TerminalSurface struct {
	mu      sync.Mutex
	out     io.Writer
	notices io.Writer
	text    string

	notification string
	timer        *time.Timer
	generation   uint64
}

// NewTerminalSurface creates a surface; a nil notices writer falls back to out.
func NewTerminalSurface(out, notices io.Writer) *TerminalSurface {
	if out == nil {
		out = io.Discard
	}
	if notices == nil {
		notices = out
	}
	return &TerminalSurface{out: out, notices: notices}
}

// SetText replaces the displayed text.
func (s *TerminalSurface) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	fmt.Fprintln(s.out, text)
}

// Text returns the displayed text.
func (s *TerminalSurface) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// ShowNotification displays msg until ttl elapses or it is dismissed.
// A newer notification replaces the current one.
func (s *TerminalSurface) ShowNotification(msg string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.notification = msg
	fmt.Fprintf(s.notices, "[notice] %s\n", msg)

	s.generation++
	s.timer = nil
	if ttl > 0 {
		gen := s.generation
		s.timer = time.AfterFunc(ttl, func() { s.expire(gen) })
	}
}

// ActiveNotification returns the visible notification, or "" when none is shown.
func (s *TerminalSurface) ActiveNotification() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notification
}

// DismissNotification hides the current notification.
func (s *TerminalSurface) DismissNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
	s.notification = ""
}

func (s *TerminalSurface) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return
	}
	s.timer = nil
	s.notification = ""
}
