package main

import (
	"time"

	"github.com/spf13/cobra"

	"studytimer/internal/storage"
	"studytimer/internal/ui/preferences"
)

// runSettings keeps the persisted settings apart from this run's flag overrides.
type runSettings struct {
	store   *storage.SettingsStore
	stored  preferences.Settings
	current preferences.Settings
}

// loadRunSettings reads the settings file and layers changed flags on top.
// A load error is returned alongside usable defaults.
func loadRunSettings(store *storage.SettingsStore, cmd *cobra.Command, flags *sessionFlags) (*runSettings, error) {
	stored, err := store.Load()
	current := stored
	flags.apply(cmd, &current)
	return &runSettings{store: store, stored: stored, current: current}, err
}

// Current returns the settings in effect for this run.
func (run *runSettings) Current() preferences.Settings {
	return run.current
}

// RecordDurations remembers the durations a session started with.
// Flag overrides for sound and looping are not written back.
func (run *runSettings) RecordDurations(studySeconds, breakSeconds int) error {
	study := time.Duration(studySeconds) * time.Second
	brk := time.Duration(breakSeconds) * time.Second
	run.current.Study, run.current.Break = study, brk
	run.stored.Study, run.stored.Break = study, brk
	return run.store.Save(run.stored)
}

// Replace stores settings the user saved explicitly in the preferences window.
func (run *runSettings) Replace(updated preferences.Settings) error {
	run.current = updated
	run.stored = updated
	return run.store.Save(run.stored)
}
