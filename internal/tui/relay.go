package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg carries an engine tick onto the program goroutine.
type tickMsg struct {
	run func()
}

// Relay is a ticker.Dispatcher that runs tick callbacks inside Update.
// Before a program is attached callbacks run on the caller.
type Relay struct {
	mu      sync.Mutex
	program *tea.Program
}

// Attach routes later ticks through program.
func (relay *Relay) Attach(program *tea.Program) {
	relay.mu.Lock()
	defer relay.mu.Unlock()
	relay.program = program
}

// Dispatch delivers fn to the attached program.
func (relay *Relay) Dispatch(fn func()) {
	relay.mu.Lock()
	program := relay.program
	relay.mu.Unlock()

	if program == nil {
		fn()
		return
	}
	program.Send(tickMsg{run: fn})
}
