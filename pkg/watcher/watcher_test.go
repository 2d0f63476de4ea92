package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForKind(t *testing.T, ch <-chan Kind, want Kind) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("expected kind %v, got %v", want, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatchModelChange(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "house.stl")
	if err := os.WriteFile(modelPath, []byte("solid house\nendsolid house\n"), 0644); err != nil {
		t.Fatal(err)
	}

	mw, err := NewModelWatcher(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewModelWatcher failed: %v", err)
	}
	defer mw.Close()

	events := make(chan Kind, 4)
	if err := mw.WatchModel(modelPath, "", func(kind Kind, path string) {
		events <- kind
	}); err != nil {
		t.Fatalf("WatchModel failed: %v", err)
	}
	mw.Start()

	if err := os.WriteFile(modelPath, []byte("solid house2\nendsolid house2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	waitForKind(t, events, ModelChanged)
}

func TestWatchSidecarChange(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "house.stl")
	sidecarPath := filepath.Join(dir, "house.gobim.json")
	if err := os.WriteFile(modelPath, []byte("solid house\nendsolid house\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sidecarPath, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	mw, err := NewModelWatcher(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewModelWatcher failed: %v", err)
	}
	defer mw.Close()

	events := make(chan Kind, 4)
	if err := mw.WatchModel(modelPath, sidecarPath, func(kind Kind, path string) {
		events <- kind
	}); err != nil {
		t.Fatalf("WatchModel failed: %v", err)
	}
	mw.Start()

	if err := os.WriteFile(sidecarPath, []byte(`[{"name":"Section 1"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	waitForKind(t, events, ViewsChanged)
}

func TestWatchMissingSidecar(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "house.stl")
	if err := os.WriteFile(modelPath, []byte("solid house\nendsolid house\n"), 0644); err != nil {
		t.Fatal(err)
	}

	mw, err := NewModelWatcher(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewModelWatcher failed: %v", err)
	}
	defer mw.Close()

	// Missing sidecar is skipped, not an error
	err = mw.WatchModel(modelPath, filepath.Join(dir, "house.gobim.json"), func(Kind, string) {})
	if err != nil {
		t.Fatalf("WatchModel failed on missing sidecar: %v", err)
	}
}

func TestDebounceCollapsesBursts(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "house.stl")
	if err := os.WriteFile(modelPath, []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}

	mw, err := NewModelWatcher(200 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewModelWatcher failed: %v", err)
	}
	defer mw.Close()

	events := make(chan Kind, 16)
	if err := mw.WatchModel(modelPath, "", func(kind Kind, path string) {
		events <- kind
	}); err != nil {
		t.Fatalf("WatchModel failed: %v", err)
	}
	mw.Start()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(modelPath, []byte{byte('a' + i)}, 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	waitForKind(t, events, ModelChanged)

	// The burst settled inside one debounce window
	select {
	case <-events:
		t.Error("expected a single callback for the write burst")
	case <-time.After(500 * time.Millisecond):
	}
}
