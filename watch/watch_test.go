package watch

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"
)

// touchUntil rewrites path every 50ms until done is closed, so a watch that
// is still being set up does not miss the change.
func touchUntil(path string, done <-chan struct{}) {
	for {
		if err := ioutil.WriteFile(path, []byte("proměnná x = 1\n"), 0644); err != nil {
			return
		}
		select {
		case <-done:
			return
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestWatchDirectory(t *testing.T) {
	defer func(d time.Duration) { Delay = d }(Delay)
	Delay = 10 * time.Millisecond

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan []string, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(ctx, dir, func(changed []string) {
			select {
			case got <- changed:
			default:
			}
		})
	}()

	done := make(chan struct{})
	go touchUntil(filepath.Join(dir, "ignored.js"), done)
	go touchUntil(filepath.Join(dir, "main.cs"), done)

	select {
	case changed := <-got:
		close(done)
		if len(changed) == 0 {
			t.Fatal("empty change set")
		}
		for _, p := range changed {
			if filepath.Base(p) != "main.cs" {
				t.Errorf("reported %s", p)
			}
		}
	case err := <-errc:
		close(done)
		t.Fatalf("Watch returned early: %v", err)
	case <-time.After(10 * time.Second):
		close(done)
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Watch: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("Watch did not stop after cancel")
	}
}

func TestWatchMissing(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope"), func([]string) {})
	if err == nil {
		t.Error("watching a missing path succeeded")
	}
}
