package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	tun, err := Load("")
	if err != nil {
		t.Fatalf("Load with empty path should not fail: %v", err)
	}

	if tun.Weights.TitleHit != 2 {
		t.Errorf("Expected default title hit weight 2, got %v", tun.Weights.TitleHit)
	}
	if tun.Weights.DescriptionHit != 1 {
		t.Errorf("Expected default description hit weight 1, got %v", tun.Weights.DescriptionHit)
	}
	if tun.Weights.Freshness != 0.5 {
		t.Errorf("Expected default freshness weight 0.5, got %v", tun.Weights.Freshness)
	}
	if len(tun.Uplifting.Positive) == 0 {
		t.Error("Default positive keyword list should not be empty")
	}
	if len(tun.Uplifting.Negative) == 0 {
		t.Error("Default negative keyword list should not be empty")
	}
	if len(tun.States) != 51 {
		t.Errorf("Expected 51 state entries, got %d", len(tun.States))
	}
}

func TestLoad_OverlaysFileOnDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yml")

	content := `
weights:
  title_hit: 3
uplifting:
  negative:
    - catastrophe
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write tuning file: %v", err)
	}

	tun, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if tun.Weights.TitleHit != 3 {
		t.Errorf("Expected overridden title hit weight 3, got %v", tun.Weights.TitleHit)
	}
	// Untouched values keep their defaults
	if tun.Weights.DescriptionHit != 1 {
		t.Errorf("Expected default description hit weight 1, got %v", tun.Weights.DescriptionHit)
	}
	if len(tun.Uplifting.Negative) != 1 || tun.Uplifting.Negative[0] != "catastrophe" {
		t.Errorf("Expected overridden negative list, got %v", tun.Uplifting.Negative)
	}
	if len(tun.Uplifting.Positive) == 0 {
		t.Error("Positive list should keep its default when not overridden")
	}
}

func TestLoad_RejectsNegativeWeights(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yml")

	content := `
weights:
  freshness: -1
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write tuning file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for negative weight, got nil")
	}
}

func TestStateTable(t *testing.T) {
	tun := Defaults()
	table := tun.StateTable()

	if table["california"] != "CA" {
		t.Errorf("Expected CA for california, got %s", table["california"])
	}
	if table["new york"] != "NY" {
		t.Errorf("Expected NY for new york, got %s", table["new york"])
	}
	if _, ok := table["atlantis"]; ok {
		t.Error("Unknown state should not be present in the table")
	}
}
