package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"studytimer/internal/core/session"
)

const menuTitle = "Study Timer"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow          func()
	OnToggleSession func()
	OnTogglePause   func()
	OnSettings      func()
	OnQuit          func()
}

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Manager mirrors the session controls in the system tray.
type Manager struct {
	app         Host
	callbacks   Callbacks
	trayMenu    *fyne.Menu
	statusItem  *fyne.MenuItem
	sessionItem *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	icons       Icons
	icon        fyne.Resource
}

// Icons are swapped as the session pauses and resumes.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
}

// New installs the tray menu once; later updates refresh its items in place.
func New(app Host, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		icons:     icons,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.sessionItem = fyne.NewMenuItem("Start Session", invoke(&manager.callbacks.OnToggleSession))
	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(&manager.callbacks.OnTogglePause))
	manager.trayMenu = manager.menu()

	manager.applySnapshot(session.Snapshot{State: session.StateIdle})
	if app != nil {
		app.SetSystemTrayMenu(manager.trayMenu)
		manager.updateIcon(session.StateIdle)
	}
	return manager
}

// Update reflects a timer snapshot in the menu and icon.
// The menu is refreshed only when an item changed and the icon only when it differs.
func (manager *Manager) Update(snapshot session.Snapshot) {
	changed := manager.applySnapshot(snapshot)
	if manager.app == nil {
		return
	}
	manager.updateIcon(snapshot.State)
	if changed {
		manager.trayMenu.Refresh()
	}
}

func (manager *Manager) applySnapshot(snapshot session.Snapshot) bool {
	running := snapshot.State != session.StateIdle && snapshot.State != session.StateComplete
	sessionLabel := "Start Session"
	if running {
		sessionLabel = "Stop"
	}
	pauseLabel := "Pause"
	if snapshot.State == session.StatePaused {
		pauseLabel = "Resume"
	}
	status := statusLine(snapshot)

	changed := manager.statusItem.Label != status ||
		manager.sessionItem.Label != sessionLabel ||
		manager.pauseItem.Label != pauseLabel ||
		manager.pauseItem.Disabled == running

	manager.statusItem.Label = status
	manager.sessionItem.Label = sessionLabel
	manager.pauseItem.Label = pauseLabel
	manager.pauseItem.Disabled = !running
	return changed
}

func (manager *Manager) updateIcon(state session.State) {
	icon := manager.icons.Active
	if state == session.StatePaused && manager.icons.Paused != nil {
		icon = manager.icons.Paused
	}
	if icon == nil || icon == manager.icon {
		return
	}
	manager.icon = icon
	manager.app.SetSystemTrayIcon(icon)
}

func (manager *Manager) menu() *fyne.Menu {
	return fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show Timer", invoke(&manager.callbacks.OnShow)),
		manager.sessionItem,
		manager.pauseItem,
		fyne.NewMenuItem("Settings", invoke(&manager.callbacks.OnSettings)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)
}

func statusLine(snapshot session.Snapshot) string {
	switch snapshot.State {
	case session.StateStudying, session.StateOnBreak:
		return fmt.Sprintf("%s %s", session.StatusText(snapshot.State), session.FormatRemaining(snapshot.Remaining))
	case session.StatePaused:
		return fmt.Sprintf("Paused at %s", session.FormatRemaining(snapshot.Remaining))
	default:
		return session.StatusText(snapshot.State)
	}
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
