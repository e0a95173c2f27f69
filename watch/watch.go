// Package watch reports changes to czechscript sources so the CLI can
// rebuild them.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pontaoski/czechscript/compiler"
	"github.com/syncthing/notify"
	"github.com/ztrue/tracerr"
)

// Delay is how long the watched tree has to stay quiet before the changes
// are reported. Editors often write a file in several steps.
var Delay = 100 * time.Millisecond

// Watch calls fn with the changed source files under path until ctx is
// done. path may be a single file or a directory, which is watched
// recursively. Only files with the compiler.SourceExt extension count, so
// writing generated code next to the sources does not trigger a rebuild.
func Watch(ctx context.Context, path string, fn func(changed []string)) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return tracerr.Wrap(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return tracerr.Wrap(err)
	}

	target := filepath.Join(path, "...")
	only := ""
	if !fi.IsDir() {
		// editors replace files on save, so watch the directory
		target = filepath.Dir(path)
		only = path
	}

	// Make the channel buffered to ensure no event is dropped. Notify will
	// drop an event if the receiver is not able to keep up the sending pace.
	c := make(chan notify.EventInfo, 16)
	if err := notify.Watch(target, c, notify.Create|notify.Write|notify.Rename|notify.Remove); err != nil {
		return tracerr.Wrap(err)
	}
	defer notify.Stop(c)

	delay := Delay
	pending := map[string]bool{}
	var timer *time.Timer
	timeout := func() <-chan time.Time {
		if timer != nil {
			return timer.C
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev := <-c:
			changed := ev.Path()
			if only != "" && changed != only {
				continue
			}
			if !strings.HasSuffix(changed, compiler.SourceExt) {
				continue
			}
			pending[changed] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(delay)
		case <-timeout():
			timer = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = map[string]bool{}
			fn(paths)
		}
	}
}
