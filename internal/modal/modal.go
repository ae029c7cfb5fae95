// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package modal tracks which overlay dialogs are open for one page render.
package modal

// Dialog ids
const (
	Activity = "activity-modal"
	Gallery  = "gallery-modal"
	View     = "view-modal"
	Confirm  = "confirm-modal"
)

// ShowClass is the class added to a visible dialog.
const ShowClass = "show"

// Trigger is a user action aimed at an open dialog.
type Trigger int

// Triggers
const (
	TriggerClose    Trigger = iota // close button
	TriggerCancel                  // cancel button
	TriggerBackdrop                // click on the overlay outside the dialog body
	TriggerInside                  // click inside the dialog body
)

var triggerNames = map[string]Trigger{
	"close":    TriggerClose,
	"cancel":   TriggerCancel,
	"backdrop": TriggerBackdrop,
	"inside":   TriggerInside,
}

// ParseTrigger maps a dismiss parameter such as "backdrop" to its Trigger.
func ParseTrigger(name string) (Trigger, bool) {
	t, ok := triggerNames[name]
	return t, ok
}

// String returns the parameter name of t.
func (t Trigger) String() string {
	for name, tt := range triggerNames {
		if tt == t {
			return name
		}
	}
	return "unknown"
}

var known = map[string]bool{
	Activity: true,
	Gallery:  true,
	View:     true,
	Confirm:  true,
}

// Manager shows and hides dialogs and locks page scroll while any is open.
// A Manager belongs to one request and is not safe for concurrent use.
type Manager struct {
	open map[string]bool
}

// NewManager returns a Manager with every dialog hidden.
func NewManager() *Manager {
	return &Manager{open: make(map[string]bool)}
}

// Show opens the dialog. It returns false and does nothing for an unknown id.
func (m *Manager) Show(id string) bool {
	if !known[id] {
		return false
	}
	m.open[id] = true
	return true
}

// Hide closes the dialog. Unknown or closed ids are a no-op.
func (m *Manager) Hide(id string) {
	delete(m.open, id)
}

// Dismiss hides the dialog for close, cancel and backdrop triggers and
// reports whether it did.
func (m *Manager) Dismiss(id string, t Trigger) bool {
	switch t {
	case TriggerClose, TriggerCancel, TriggerBackdrop:
		if !m.open[id] {
			return false
		}
		m.Hide(id)
		return true
	default:
		return false
	}
}

// IsOpen reports whether the dialog is shown.
func (m *Manager) IsOpen(id string) bool {
	return m.open[id]
}

// Class returns the dialog's visibility class.
func (m *Manager) Class(id string) string {
	if m.open[id] {
		return ShowClass
	}
	return ""
}

// ScrollLocked reports whether page scroll is locked, i.e. any dialog is open.
func (m *Manager) ScrollLocked() bool {
	return len(m.open) > 0
}
