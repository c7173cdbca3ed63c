package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"studytimer/internal/audio"
	"studytimer/internal/core/session"
)

var toneFiles = []struct {
	alert session.Alert
	name  string
}{
	{alert: session.AlertDingDong, name: "ding-dong.wav"},
	{alert: session.AlertTripleBeep, name: "triple-beep.wav"},
}

func newTonesCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "tones",
		Short: "Write the alert cues as WAV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := writeTones(outDir)
			if err != nil {
				return err
			}
			for _, path := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write into")
	return cmd
}

func writeTones(outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	var paths []string
	for _, tone := range toneFiles {
		path := filepath.Join(outDir, tone.name)
		if err := writeTone(path, tone.alert); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeTone(path string, alert session.Alert) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := audio.WriteWAV(file, alert); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
