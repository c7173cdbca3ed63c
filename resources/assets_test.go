package resources

import (
	"strings"
	"testing"
)

func TestIconsEmbedded(t *testing.T) {
	for _, name := range []string{IconActive, IconPaused} {
		resource, err := Icon(name)
		if err != nil {
			t.Fatalf("icon %s: %v", name, err)
		}
		if !strings.Contains(string(resource.Content()), "<svg") {
			t.Fatalf("icon %s is not an svg", name)
		}
		again := MustIcon(name)
		if again != resource {
			t.Fatalf("icon %s not cached", name)
		}
	}
	if _, err := Icon("missing.svg"); err == nil {
		t.Fatalf("expected error for missing icon")
	}
}
