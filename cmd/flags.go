package main

import (
	"time"

	"github.com/spf13/cobra"

	"studytimer/internal/ui/preferences"
)

// sessionFlags override stored settings for a single run.
type sessionFlags struct {
	study  time.Duration
	brk    time.Duration
	repeat bool
	mute   bool
	volume float64
}

func (flags *sessionFlags) register(cmd *cobra.Command) {
	defaults := preferences.DefaultSettings()
	cmd.Flags().DurationVar(&flags.study, "study", defaults.Study, "study phase length, e.g. 25m or 1h30m")
	cmd.Flags().DurationVar(&flags.brk, "break", defaults.Break, "break phase length, e.g. 5m")
	cmd.Flags().BoolVar(&flags.repeat, "repeat", defaults.Repeat, "loop study and break until stopped")
	cmd.Flags().BoolVar(&flags.mute, "mute", defaults.Muted, "silence alerts")
	cmd.Flags().Float64Var(&flags.volume, "volume", defaults.Volume, "alert gain on a base-2 scale (-4 to 1)")
}

// apply copies only the flags the user set, so stored settings win otherwise.
func (flags *sessionFlags) apply(cmd *cobra.Command, settings *preferences.Settings) {
	if cmd.Flags().Changed("study") {
		settings.Study = clampDuration(flags.study)
	}
	if cmd.Flags().Changed("break") {
		settings.Break = clampDuration(flags.brk)
	}
	if cmd.Flags().Changed("repeat") {
		settings.Repeat = flags.repeat
	}
	if cmd.Flags().Changed("mute") {
		settings.Muted = flags.mute
	}
	if cmd.Flags().Changed("volume") {
		settings.Volume = preferences.ClampVolume(flags.volume)
	}
}

func clampDuration(value time.Duration) time.Duration {
	if value < 0 {
		return 0
	}
	return value.Truncate(time.Second)
}
