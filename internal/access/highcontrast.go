package access

import (
	"encoding/json"

	"github.com/charmbracelet/log"
)

// settingsKey is the storage key the high-contrast configuration lives
// under, as a single JSON blob.
const settingsKey = "accessibility"

// SettingsStore is the persistence surface the manager needs. The sqlite
// settings table satisfies it.
type SettingsStore interface {
	GetSetting(key string) (value string, ok bool, err error)
	PutSetting(key, value string) error
}

// HighContrastConfig is the persisted accessibility state.
type HighContrastConfig struct {
	Enabled              bool   `json:"enabled"`
	AutoDetect           bool   `json:"auto_detect"`
	ContrastLevel        Level  `json:"contrast_level"`
	BackgroundType       string `json:"background_type"`
	UseSystemPreferences bool   `json:"use_system_preferences"`
}

// DefaultHighContrastConfig returns the out-of-the-box configuration.
func DefaultHighContrastConfig() HighContrastConfig {
	return HighContrastConfig{
		Enabled:              false,
		AutoDetect:           true,
		ContrastLevel:        LevelAA,
		BackgroundType:       "dark",
		UseSystemPreferences: true,
	}
}

// PreferenceQuery asks the host whether it prefers high contrast. Injected
// so tests and headless runs can stub the answer.
type PreferenceQuery func() (bool, error)

// HighContrastManager owns the high-contrast mode state: it loads the
// persisted config on startup, writes back every change, and notifies
// subscribers. Persistence failures are logged and swallowed; the mode
// must keep working on a broken disk.
type HighContrastManager struct {
	store     SettingsStore
	query     PreferenceQuery
	cfg       HighContrastConfig
	listeners []func(HighContrastConfig)
}

// NewHighContrastManager loads persisted state from store, falling back
// to defaults when the store is empty or unreadable. A nil store keeps
// everything in memory; a nil query disables system-preference detection.
func NewHighContrastManager(store SettingsStore, query PreferenceQuery) *HighContrastManager {
	m := &HighContrastManager{
		store: store,
		query: query,
		cfg:   DefaultHighContrastConfig(),
	}
	m.load()

	if m.cfg.AutoDetect && m.cfg.UseSystemPreferences && m.SystemPrefersHighContrast() {
		m.cfg.Enabled = true
	}
	return m
}

// Config returns the current configuration snapshot.
func (m *HighContrastManager) Config() HighContrastConfig { return m.cfg }

// Enabled reports whether high-contrast mode is on.
func (m *HighContrastManager) Enabled() bool { return m.cfg.Enabled }

// SetEnabled switches the mode, persists, and notifies subscribers.
func (m *HighContrastManager) SetEnabled(enabled bool) {
	if m.cfg.Enabled == enabled {
		return
	}
	m.cfg.Enabled = enabled
	m.persist()
	m.notify()
}

// Toggle flips the mode and returns the new state.
func (m *HighContrastManager) Toggle() bool {
	m.SetEnabled(!m.cfg.Enabled)
	return m.cfg.Enabled
}

// Update replaces the whole configuration, persists, and notifies.
func (m *HighContrastManager) Update(cfg HighContrastConfig) {
	m.cfg = cfg
	m.persist()
	m.notify()
}

// Subscribe registers a listener called after every configuration change.
// A panicking listener is isolated; it never takes down the frame.
func (m *HighContrastManager) Subscribe(fn func(HighContrastConfig)) {
	m.listeners = append(m.listeners, fn)
}

// SystemPrefersHighContrast asks the injected query; any error reads as
// "no preference".
func (m *HighContrastManager) SystemPrefersHighContrast() bool {
	if m.query == nil {
		return false
	}
	prefers, err := m.query()
	if err != nil {
		return false
	}
	return prefers
}

// load merges persisted state over the defaults. Missing keys in the blob
// keep their default values; an unreadable blob keeps defaults entirely.
func (m *HighContrastManager) load() {
	if m.store == nil {
		return
	}
	raw, ok, err := m.store.GetSetting(settingsKey)
	if err != nil {
		log.Warn("accessibility settings unreadable, using defaults", "err", err)
		return
	}
	if !ok {
		return
	}

	cfg := DefaultHighContrastConfig()
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		log.Warn("accessibility settings corrupt, using defaults", "err", err)
		return
	}
	if cfg.ContrastLevel != LevelAA && cfg.ContrastLevel != LevelAAA {
		cfg.ContrastLevel = LevelAA
	}
	m.cfg = cfg
}

func (m *HighContrastManager) persist() {
	if m.store == nil {
		return
	}
	raw, err := json.Marshal(m.cfg)
	if err != nil {
		return
	}
	if err := m.store.PutSetting(settingsKey, string(raw)); err != nil {
		log.Warn("failed to persist accessibility settings", "err", err)
	}
}

func (m *HighContrastManager) notify() {
	for _, fn := range m.listeners {
		m.callListener(fn)
	}
}

func (m *HighContrastManager) callListener(fn func(HighContrastConfig)) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("accessibility listener panicked", "panic", r)
		}
	}()
	fn(m.cfg)
}
