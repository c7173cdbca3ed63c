package preferences

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
)

func TestWindowSaveCollectsValues(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved *Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = &settings
	})

	test.Tap(prefs.repeat)
	test.Tap(prefs.mute)
	prefs.idleCheck.SetChecked(true)
	prefs.idleAfter.SetText("12")
	prefs.volume.SetValue(-2)
	prefs.handleSave()

	if saved == nil {
		t.Fatalf("expected save callback")
	}
	if saved.Repeat || !saved.Muted || !saved.IdlePauseEnabled {
		t.Fatalf("unexpected toggles: %+v", *saved)
	}
	if saved.IdlePauseAfter != 12*time.Minute || saved.Volume != -2 {
		t.Fatalf("unexpected values: %+v", *saved)
	}
	if saved.Study != 25*time.Minute {
		t.Fatalf("durations must pass through unchanged, got %s", saved.Study)
	}
}

func TestWindowIgnoresInvalidIdleMinutes(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	prefs := New(app, DefaultSettings(), nil)
	prefs.idleAfter.SetText("soon")
	if got := prefs.collect().IdlePauseAfter; got != 5*time.Minute {
		t.Fatalf("expected previous idle threshold, got %s", got)
	}
}
