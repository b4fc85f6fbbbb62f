package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(Config{OnChange: func(context.Context) error { return nil }}); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := New(Config{Path: "lic.ofx"}); err == nil {
		t.Error("expected error for missing callback")
	}
	if _, err := New(Config{Path: "lic.ofx", Debounce: -time.Second, OnChange: func(context.Context) error { return nil }}); err == nil {
		t.Error("expected error for negative debounce")
	}
}

func TestWatcherTinyDebounce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lic.ofx")

	var calls atomic.Int32
	w, err := New(Config{
		Path:     path,
		Debounce: time.Nanosecond,
		OnChange: func(context.Context) error {
			calls.Add(1)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls.Load() == 0 {
		t.Error("OnChange never ran with a 1ns debounce")
	}
}

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lic.ofx")
	if err := os.WriteFile(path, []byte("v0"), 0644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	w, err := New(Config{
		Path:     path,
		Debounce: 200 * time.Millisecond,
		OnChange: func(context.Context) error {
			calls.Add(1)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	// A burst of writes settles into one rebuild.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("v1"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	// Unrelated files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "lic.o"), []byte("obj"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	// Wait past another debounce window to catch a second, spurious run.
	time.Sleep(500 * time.Millisecond)

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("OnChange called %d times, want 1", got)
	}
	if w.Runs() != 1 {
		t.Errorf("Runs() = %d, want 1", w.Runs())
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Config{
		Path:     filepath.Join(dir, "lic.ofx"),
		OnChange: func(context.Context) error { return nil },
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Errorf("Run after cancel = %v, want nil", err)
	}
}
