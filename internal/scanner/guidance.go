// Package scanner holds the barcode scanner's first-use guidance.
package scanner

import (
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/schedule"
)

// DefaultGuidanceTimeout is how long the guidance stays up on its own
const DefaultGuidanceTimeout = 5 * time.Second

// Flags reads and writes the guidance flag
type Flags interface {
	Flag(key domain.PreferenceKey) (bool, error)
	SetFlag(key domain.PreferenceKey) error
}

// Guidance shows the scanner hint the first time the scanner opens and
// remembers once the user has seen it.
type Guidance struct {
	flags   Flags
	timers  *schedule.Group
	timeout time.Duration
	logger  *slog.Logger

	open    bool
	visible bool
}

// NewGuidance creates guidance backed by flags. A non-positive timeout
// uses DefaultGuidanceTimeout.
func NewGuidance(flags Flags, sched schedule.Scheduler, timeout time.Duration, logger *slog.Logger) *Guidance {
	if timeout <= 0 {
		timeout = DefaultGuidanceTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guidance{
		flags:   flags,
		timers:  schedule.NewGroup(sched),
		timeout: timeout,
		logger:  logger.With("component", "scanner"),
	}
}

// Open is called when the scanner overlay opens
func (g *Guidance) Open() {
	if g.open {
		return
	}
	g.open = true

	seen, err := g.flags.Flag(domain.PrefScannerGuidanceShown)
	if err != nil {
		g.logger.Warn("failed to read scanner guidance flag", "error", err)
	}
	if seen {
		return
	}
	g.visible = true
	g.timers.After(g.timeout, g.Dismiss)
}

// Dismiss hides the guidance and records that it was seen
func (g *Guidance) Dismiss() {
	if !g.visible {
		return
	}
	g.visible = false
	g.timers.CancelAll()
	g.remember()
}

// Scanned records a successful scan and closes the scanner. Returns the
// cleaned code and false when nothing usable was read.
func (g *Guidance) Scanned(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	g.remember()
	g.Close()
	return code, true
}

// Close is called when the scanner overlay goes away
func (g *Guidance) Close() {
	g.timers.CancelAll()
	g.visible = false
	g.open = false
}

// Visible reports whether the guidance is shown
func (g *Guidance) Visible() bool { return g.visible }

// IsOpen reports whether the scanner overlay is up
func (g *Guidance) IsOpen() bool { return g.open }

func (g *Guidance) remember() {
	if err := g.flags.SetFlag(domain.PrefScannerGuidanceShown); err != nil {
		g.logger.Error("failed to persist scanner guidance flag", "error", err)
	}
}
