package checkpointer

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// counter is a Serializable object for testing
type counter struct {
	Count int
}

func (c *counter) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(c.Count)
	return buf.Bytes(), err
}

func (c *counter) GobDecode(in []byte) error {
	return gob.NewDecoder(bytes.NewReader(in)).Decode(&c.Count)
}

func TestSaveLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "counter.bin")

	if err := Save(filename, &counter{7}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var c counter
	if err := Load(filename, &c); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Count != 7 {
		t.Errorf("load: want count 7 have %v", c.Count)
	}

	if err := Load(filepath.Join(t.TempDir(), "none.bin"), &c); err == nil {
		t.Error("load: expected error for missing file")
	}
}

func TestFilenameEnumerator(t *testing.T) {
	next := FilenameEnumerator(3, "dir/file", ".bin")

	want := []string{"dir/file3.bin", "dir/file4.bin", "dir/file5.bin"}
	have := []string{next(), next(), next()}
	if diff := cmp.Diff(want, have); diff != "" {
		t.Errorf("filenames (-want +have):\n%v", diff)
	}
}

func TestNStep(t *testing.T) {
	dir := t.TempDir()
	c := &counter{}
	check := NewNStep(3, c, FilenameEnumerator(0,
		filepath.Join(dir, "checkpoint"), ".bin"))

	for i := 0; i < 7; i++ {
		c.Count = i
		if err := check.Checkpoint(i); err != nil {
			t.Fatalf("checkpoint %v: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readDir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("checkpoint: want 3 checkpoints have %v", len(entries))
	}

	// Checkpoints at iterations 0, 3 and 6
	for i, want := range []int{0, 3, 6} {
		var saved counter
		filename := filepath.Join(dir, fmt.Sprintf("checkpoint%v.bin", i))
		if err := Load(filename, &saved); err != nil {
			t.Fatalf("load: %v", err)
		}
		if saved.Count != want {
			t.Errorf("checkpoint %v: want count %v have %v", i, want,
				saved.Count)
		}
	}
}

func TestNStepPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("newNStep: expected panic for zero interval")
		}
	}()
	NewNStep(0, &counter{}, FilenameEnumerator(0, "file", ".bin"))
}
