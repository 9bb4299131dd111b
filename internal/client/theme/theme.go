// Package theme persists the user's display theme preference.
package theme

import (
	"context"

	"github.com/dverenev/priceadmin/internal/common"
)

// Theme is a display theme preference. System defers to the environment.
type Theme string

const (
	Light  Theme = "light"
	Dark   Theme = "dark"
	System Theme = "system"
)

// Parse maps an arbitrary stored value to a Theme, falling back to System for
// anything unrecognised.
func Parse(s string) Theme {
	switch Theme(s) {
	case Light, Dark, System:
		return Theme(s)
	default:
		return System
	}
}

// Settings is the slice of the settings repository the manager needs.
type Settings interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Manager reads and writes the persisted preference.
type Manager struct {
	settings Settings
}

func NewManager(settings Settings) *Manager {
	return &Manager{settings: settings}
}

// Current returns the stored preference, or System when nothing valid is
// stored.
func (m *Manager) Current(ctx context.Context) Theme {
	v, err := m.settings.Get(ctx, common.SettingTheme)
	if err != nil || v == nil {
		return System
	}
	return Parse(string(v))
}

// Set persists the preference.
func (m *Manager) Set(ctx context.Context, t Theme) error {
	return m.settings.Set(ctx, common.SettingTheme, []byte(t))
}
