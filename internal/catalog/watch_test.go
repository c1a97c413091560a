package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestWatcherSignalsOnTargetWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	target := filepath.Join(dir, "gear.json")
	if err := os.WriteFile(target, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(zap.NewNop(), target)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.Start()
	defer w.Stop()

	if err := os.WriteFile(target, []byte(`{"Cat": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("no change signal after writing the watched file")
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	target := filepath.Join(dir, "gear.json")

	w, err := NewWatcher(zap.NewNop(), target)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.Start()
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changes():
		t.Fatal("signal fired for an unrelated file")
	case <-time.After(700 * time.Millisecond):
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(zap.NewNop(), filepath.Join(t.TempDir(), "gear.json"))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.Start()
	w.Stop()
	w.Stop()
}
