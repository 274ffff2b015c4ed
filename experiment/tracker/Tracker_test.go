package tracker

import (
	"bytes"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReturn(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "rewards.bin")
	r := NewReturn(filename)

	rewards := []float64{-1, 0.5, 3, 2}
	for i, reward := range rewards {
		r.Track(i, reward)
	}

	if diff := cmp.Diff(rewards, r.Data()); diff != "" {
		t.Errorf("data (-want +have):\n%v", diff)
	}
	if err := r.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadData(filename)
	if err != nil {
		t.Fatalf("loadData: %v", err)
	}
	if diff := cmp.Diff(rewards, loaded); diff != "" {
		t.Errorf("loadData (-want +have):\n%v", diff)
	}
}

func TestReturnNonSequential(t *testing.T) {
	r := NewReturn(filepath.Join(t.TempDir(), "rewards.bin"))
	r.Track(0, 1)

	defer func() {
		if recover() == nil {
			t.Error("track: expected panic for non-sequential iteration")
		}
	}()
	r.Track(2, 1)
}

func TestLoadDataMissing(t *testing.T) {
	if _, err := LoadData(filepath.Join(t.TempDir(), "none.bin")); err == nil {
		t.Error("loadData: expected error for missing file")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(log.New(&buf, "", 0))

	l.Track(0, 1.5)
	l.Track(1, -2)
	if err := l.Save(); err != nil {
		t.Errorf("save: %v", err)
	}

	want := []string{"Step: 0 Reward: 1.5", "Step: 1 Reward: -2"}
	have := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if diff := cmp.Diff(want, have); diff != "" {
		t.Errorf("log (-want +have):\n%v", diff)
	}
}
