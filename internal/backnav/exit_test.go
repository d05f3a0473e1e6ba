package backnav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmcdole/whatsleft/internal/appstate"
)

func TestExitPromptEndsNativeShell(t *testing.T) {
	s := appstate.New()
	shell := &TermShell{native: true}
	p := NewExitPrompt(s, shell, quietLogger())

	s.Open(appstate.ModalExitPrompt)
	require.True(t, p.Visible())

	require.True(t, p.Exit())
	require.False(t, p.Visible())
	require.True(t, shell.ExitRequested())
}

func TestExitPromptStaysOutsideTerminal(t *testing.T) {
	s := appstate.New()
	shell := &TermShell{}
	p := NewExitPrompt(s, shell, quietLogger())

	s.Open(appstate.ModalExitPrompt)
	require.False(t, p.Exit())
	require.False(t, p.Visible())
	require.False(t, shell.ExitRequested())

	s.Open(appstate.ModalExitPrompt)
	p.Stay()
	require.False(t, p.Visible())
}
