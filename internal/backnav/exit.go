package backnav

import (
	"log/slog"
	"os"

	"github.com/mmcdole/whatsleft/internal/appstate"
	"golang.org/x/term"
)

// Shell is the host process the app runs in
type Shell interface {
	// IsNative reports whether the app owns a real terminal and may end the process
	IsNative() bool
	// Exit asks the host to end the process
	Exit()
}

// TermShell is the terminal host. It records exit requests; the UI loop
// turns them into a quit.
type TermShell struct {
	native    bool
	requested bool
}

// NewTermShell detects whether stdin is a terminal
func NewTermShell() *TermShell {
	return &TermShell{native: term.IsTerminal(int(os.Stdin.Fd()))}
}

// IsNative implements Shell
func (s *TermShell) IsNative() bool { return s.native }

// Exit implements Shell
func (s *TermShell) Exit() { s.requested = true }

// ExitRequested reports whether Exit was called
func (s *TermShell) ExitRequested() bool { return s.requested }

// ExitPrompt is the two-outcome confirmation raised on back at home
type ExitPrompt struct {
	state  *appstate.State
	shell  Shell
	logger *slog.Logger
}

// NewExitPrompt wires the prompt to the shared state and host shell
func NewExitPrompt(state *appstate.State, shell Shell, logger *slog.Logger) *ExitPrompt {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExitPrompt{state: state, shell: shell, logger: logger}
}

// Visible reports whether the prompt is raised
func (p *ExitPrompt) Visible() bool {
	return p.state.IsOpen(appstate.ModalExitPrompt)
}

// Stay dismisses the prompt
func (p *ExitPrompt) Stay() {
	p.state.Close(appstate.ModalExitPrompt)
}

// Exit dismisses the prompt and, inside a native shell, ends the process.
// Reports whether an exit was requested.
func (p *ExitPrompt) Exit() bool {
	p.state.Close(appstate.ModalExitPrompt)
	if p.shell == nil || !p.shell.IsNative() {
		p.logger.Info("exit confirmed outside native shell; staying open")
		return false
	}
	p.logger.Info("exit confirmed")
	p.shell.Exit()
	return true
}
