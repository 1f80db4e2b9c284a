package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/hprogress/internal/progress"
)

// programRef is a pointer to the tea.Program that survives model copies, so
// goroutines outside the event loop can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. Without a program it does nothing.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Renderer feeds root snapshots into the dashboard. Send waits for the event
// loop to accept the message; the coalescer in front of it turns that wait
// into dropped frames instead of blocked reporters.
type Renderer struct {
	ref *programRef
}

// Render implements progress.Renderer.
func (r *Renderer) Render(s progress.Snapshot) error {
	r.ref.Send(SnapshotMsg{Snapshot: s})
	return nil
}

var _ progress.Renderer = (*Renderer)(nil)
