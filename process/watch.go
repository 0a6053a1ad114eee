package process

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settle is how long watcher waits after last change before re-running, so
// editors saving in several steps cause single run.
const settle = 200 * time.Millisecond

// watch runs job and then runs it again after every change of its sources
// until context is canceled. Failed runs are logged, watching continues.
func (j *job) watch(ctx context.Context) error {
	files, err := discover(j.sources)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to start watcher: %w", err)
	}
	defer w.Close()

	// directories are watched rather than files, editors often replace
	// files on save
	dirs, err := watchedDirs(j.sources, files)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("unable to watch %s: %w", dir, err)
		}
	}
	j.log.Info("Watching for changes", zap.Strings("dirs", dirs))

	j.runLogged(ctx)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			j.log.Info("Watching stopped")
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if j.relevant(ev, files) {
				j.log.Debug("Source changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
				pending = time.After(settle)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			j.log.Warn("Watcher problem", zap.Error(err))
		case <-pending:
			pending = nil
			if updated, err := discover(j.sources); err == nil {
				files = updated
			}
			j.runLogged(ctx)
		}
	}
}

func (j *job) runLogged(ctx context.Context) {
	start := time.Now()
	if err := j.run(ctx); err != nil {
		j.log.Error("Extraction failed", zap.Error(err))
		return
	}
	j.log.Debug("Extraction completed", zap.Duration("elapsed", time.Since(start)))
}

// relevant reports whether event may change extraction result: any change to
// a known source or creation of new stylesheet in watched directory.
func (j *job) relevant(ev fsnotify.Event, files []string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	if j.cfg.Output != "" {
		if out, err := filepath.Abs(j.cfg.Output); err == nil && out == name {
			return false
		}
	}
	for _, f := range files {
		if f == name {
			return true
		}
	}
	return strings.EqualFold(filepath.Ext(name), ".css")
}

// watchedDirs returns directories to watch: every source directory with all
// its subdirectories and parent directories of explicitly named files.
func watchedDirs(sources, files []string) ([]string, error) {
	var (
		dirs []string
		seen = make(map[string]bool)
	)
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, src := range sources {
		abs, err := filepath.Abs(src)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(filepath.Dir(abs))
			continue
		}
		err = filepath.WalkDir(abs, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	for _, f := range files {
		add(filepath.Dir(f))
	}
	return dirs, nil
}
