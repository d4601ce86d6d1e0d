// Package theme resolves the active display theme from a persisted
// user preference and the host's color-scheme hint, and fans out
// changes to subscribers.
package theme

import (
	"log/slog"
	"sync"
)

// Mode is the user-selected theme preference.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// Resolved is the theme actually applied.
type Resolved string

const (
	Light Resolved = "light"
	Dark  Resolved = "dark"
)

// cycleOrder is the sequence Cycle steps through.
var cycleOrder = []Mode{ModeSystem, ModeLight, ModeDark}

// Store persists the selected mode across processes.
type Store interface {
	Load() (Mode, error)
	Save(Mode) error
}

// Manager owns the theme mode and resolves it against the system
// preference probe.
type Manager struct {
	store      Store
	systemDark func() bool
	log        *slog.Logger

	mu   sync.Mutex
	mode Mode
	subs []func(Resolved)
}

// NewManager loads the saved mode from the store (defaulting to dark
// when nothing is saved or the store fails) and returns a manager.
// systemDark reports whether the host currently prefers a dark scheme.
func NewManager(store Store, systemDark func() bool, logger *slog.Logger) *Manager {
	mode := ModeDark
	if store != nil {
		saved, err := store.Load()
		if err != nil {
			logger.Debug("theme preference load failed", "error", err)
		} else if saved.valid() {
			mode = saved
		}
	}
	return &Manager{
		store:      store,
		systemDark: systemDark,
		log:        logger,
		mode:       mode,
	}
}

func (m Mode) valid() bool {
	return m == ModeLight || m == ModeDark || m == ModeSystem
}

// Mode returns the selected preference.
func (m *Manager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Resolved returns the theme to apply right now.
func (m *Manager) Resolved() Resolved {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolveLocked()
}

func (m *Manager) resolveLocked() Resolved {
	if m.mode == ModeSystem {
		if m.systemDark != nil && m.systemDark() {
			return Dark
		}
		return Light
	}
	if m.mode == ModeLight {
		return Light
	}
	return Dark
}

// SetMode selects and persists a preference and notifies subscribers.
func (m *Manager) SetMode(mode Mode) {
	if !mode.valid() {
		return
	}
	m.mu.Lock()
	m.mode = mode
	resolved := m.resolveLocked()
	subs := append([]func(Resolved){}, m.subs...)
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Save(mode); err != nil {
			m.log.Debug("theme preference save failed", "error", err)
		}
	}
	for _, fn := range subs {
		fn(resolved)
	}
}

// Cycle advances the preference through system, light, dark.
func (m *Manager) Cycle() Mode {
	m.mu.Lock()
	current := 0
	for i, mode := range cycleOrder {
		if mode == m.mode {
			current = i
			break
		}
	}
	next := cycleOrder[(current+1)%len(cycleOrder)]
	m.mu.Unlock()

	m.SetMode(next)
	return next
}

// Subscribe registers a callback for resolved-theme changes.
func (m *Manager) Subscribe(fn func(Resolved)) {
	m.mu.Lock()
	m.subs = append(m.subs, fn)
	m.mu.Unlock()
}

// SystemChanged re-resolves and notifies when the host color scheme
// flips while the mode is system.
func (m *Manager) SystemChanged() {
	m.mu.Lock()
	if m.mode != ModeSystem {
		m.mu.Unlock()
		return
	}
	resolved := m.resolveLocked()
	subs := append([]func(Resolved){}, m.subs...)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(resolved)
	}
}
