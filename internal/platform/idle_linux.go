package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"studytimer/internal/core/session"
)

const (
	mutterIdleService = "org.gnome.Mutter.IdleMonitor"
	mutterIdlePath    = "/org/gnome/Mutter/IdleMonitor/Core"
	mutterIdleMethod  = "org.gnome.Mutter.IdleMonitor.GetIdletime"
)

// xprintidleProvider covers X11 sessions.
type xprintidleProvider struct {
	path string
}

// mutterIdleProvider covers GNOME sessions, including Wayland, over the session bus.
// The connection lives as long as the process unless the monitor turns out to be missing.
type mutterIdleProvider struct {
	mu          sync.Mutex
	conn        *dbus.Conn
	unsupported bool
}

func newIdleProvider() IdleProvider {
	wayland := strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland")
	if !wayland {
		if path, err := exec.LookPath("xprintidle"); err == nil {
			return &xprintidleProvider{path: path}
		}
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return unsupportedIdleProvider{}
	}
	return &mutterIdleProvider{conn: conn}
}

func (provider *xprintidleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(string(output))
}

func (provider *mutterIdleProvider) IdleDuration() (time.Duration, error) {
	provider.mu.Lock()
	defer provider.mu.Unlock()
	if provider.unsupported {
		return 0, fmt.Errorf("mutter idle monitor: %w", session.ErrIdleUnsupported)
	}

	var idleMillis uint64
	call := provider.conn.Object(mutterIdleService, dbus.ObjectPath(mutterIdlePath)).Call(mutterIdleMethod, 0)
	if call.Err != nil {
		var dbusErr dbus.Error
		if errors.As(call.Err, &dbusErr) && dbusErr.Name == "org.freedesktop.DBus.Error.ServiceUnknown" {
			provider.closeLocked()
			return 0, fmt.Errorf("mutter idle monitor: %w", session.ErrIdleUnsupported)
		}
		return 0, fmt.Errorf("mutter idle monitor: %w", call.Err)
	}
	if err := call.Store(&idleMillis); err != nil {
		return 0, fmt.Errorf("mutter idle monitor: %w", err)
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

func (provider *mutterIdleProvider) closeLocked() {
	provider.unsupported = true
	if provider.conn != nil {
		_ = provider.conn.Close()
		provider.conn = nil
	}
}
