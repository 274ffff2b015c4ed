package plotter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRewards(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "rewards.png")

	if err := Rewards([]float64{-1, 0, 2.5, 3}, "test", filename); err != nil {
		t.Fatalf("rewards: %v", err)
	}

	info, err := os.Stat(filename)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("rewards: saved plot is empty")
	}
}

func TestRewardsEmpty(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "rewards.png")
	if err := Rewards(nil, "test", filename); err == nil {
		t.Error("rewards: expected error for empty rewards")
	}
}
