package main

import (
	"errors"
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"studytimer/internal/audio"
	"studytimer/internal/core/session"
	"studytimer/internal/platform"
	"studytimer/internal/storage"
	"studytimer/internal/ui/preferences"
	"studytimer/internal/ui/timerwindow"
	"studytimer/internal/ui/tray"
	"studytimer/resources"
)

const appName = "StudyTimer"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &sessionFlags{}
	rootCmd := &cobra.Command{
		Use:          "studytimer",
		Short:        "Study/break interval timer",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(cmd, flags)
		},
	}
	flags.register(rootCmd)
	rootCmd.AddCommand(newTonesCmd())
	return rootCmd
}

func runApp(cmd *cobra.Command, flags *sessionFlags) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("single instance: %v", err)
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	store, err := storage.NewSettingsStore(appName)
	if err != nil {
		return err
	}
	settings, err := loadRunSettings(store, cmd, flags)
	if err != nil {
		log.Printf("settings: %v; using defaults", err)
	}

	fyneApp := app.NewWithID("com.studytimer.app")
	fyneApp.SetIcon(resources.MustIcon(resources.IconActive))

	player := audio.NewPlayer()
	timer := session.New(session.Config{TickInterval: time.Second})
	defer timer.Close()
	timer.SetAlerter(player)

	idle := &idleBinding{timer: timer}
	applySettings(settings.Current(), timer, player, idle)

	sessionConfig := settings.Current().SessionConfig()
	mainWindow := timerwindow.New(fyneApp, timer, sessionConfig.StudySeconds, sessionConfig.BreakSeconds)
	mainWindow.Window().SetMaster()

	prefsWindow := preferences.New(fyneApp, settings.Current(), func(updated preferences.Settings) {
		applySettings(updated, timer, player, idle)
		if err := settings.Replace(updated); err != nil {
			log.Printf("save settings: %v", err)
		}
	})
	openSettings := func() {
		prefsWindow.UpdateSettings(settings.Current())
		prefsWindow.Show()
	}
	mainWindow.SetOnSettings(openSettings)
	mainWindow.SetOnStart(func(studySeconds, breakSeconds int) {
		if err := settings.RecordDurations(studySeconds, breakSeconds); err != nil {
			log.Printf("save settings: %v", err)
		}
	})

	go mainWindow.Listen(timer.Subscribe(16))

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Icons{
			Active: resources.MustIcon(resources.IconActive),
			Paused: resources.MustIcon(resources.IconPaused),
		}, tray.Callbacks{
			OnShow:          mainWindow.Show,
			OnToggleSession: mainWindow.ToggleSession,
			OnTogglePause:   mainWindow.TogglePause,
			OnSettings:      openSettings,
			OnQuit:          fyneApp.Quit,
		})
		trayEvents := timer.Subscribe(16)
		go func() {
			for range trayEvents {
				fyne.Do(func() {
					trayManager.Update(timer.Snapshot())
				})
			}
		}()
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	mainWindow.Show()
	fyneApp.Run()
	return nil
}

// idleBinding creates the platform idle provider only once idle pausing is enabled.
type idleBinding struct {
	timer    *session.Timer
	provider platform.IdleProvider
}

func (binding *idleBinding) apply(settings preferences.Settings) {
	if !settings.IdlePauseEnabled {
		binding.timer.SetIdleChecker(nil, settings.IdlePauseConfig())
		return
	}
	if binding.provider == nil {
		binding.provider = platform.NewIdleProvider()
	}
	binding.timer.SetIdleChecker(binding.provider, settings.IdlePauseConfig())
}

func applySettings(settings preferences.Settings, timer *session.Timer, player *audio.Player, idle *idleBinding) {
	timer.SetRepeat(settings.Repeat)
	player.SetMuted(settings.Muted)
	player.SetVolume(settings.Volume)
	idle.apply(settings)
}
