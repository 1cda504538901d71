package classpath

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Event reports a classpath change. Class is empty when a jar changed and
// every cached class was dropped.
type Event struct {
	Path  string
	Class string
	Op    fsnotify.Op
}

// Watcher invalidates cached declarations of a Path when class files or
// jars on it change on disk.
type Watcher struct {
	path   *Path
	w      *fsnotify.Watcher
	events chan Event
	dirs   []*DirLoader
	jars   map[string]*JarLoader
}

func NewWatcher(p *Path) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	pw := &Watcher{
		path:   p,
		w:      w,
		events: make(chan Event, 128),
		jars:   make(map[string]*JarLoader),
	}

	for _, l := range p.Loaders() {
		switch l := l.(type) {
		case *DirLoader:
			pw.dirs = append(pw.dirs, l)
			if err := pw.addTree(l.Root); err != nil {
				w.Close()
				return nil, err
			}
		case *JarLoader:
			abs, err := filepath.Abs(l.Path)
			if err != nil {
				abs = l.Path
			}
			pw.jars[abs] = l
			// editors and build tools replace jars, so watch the directory
			if err := w.Add(filepath.Dir(abs)); err != nil {
				w.Close()
				return nil, err
			}
		}
	}
	return pw, nil
}

func (pw *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return pw.w.Add(p)
		}
		return nil
	})
}

// Events delivers changes after the Path has been invalidated. It must be
// drained while Run is active and is closed when Run returns.
func (pw *Watcher) Events() <-chan Event { return pw.events }

// Run processes file system notifications until ctx is done or the
// watcher is closed.
func (pw *Watcher) Run(ctx context.Context) error {
	defer close(pw.events)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-pw.w.Events:
			if !ok {
				return nil
			}
			pw.handle(ctx, ev)
		case err, ok := <-pw.w.Errors:
			if !ok {
				return nil
			}
			log.Warningf("watch: %v", err)
		}
	}
}

func (pw *Watcher) handle(ctx context.Context, ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod {
		return
	}

	if abs, err := filepath.Abs(ev.Name); err == nil {
		if jar, ok := pw.jars[abs]; ok {
			if err := jar.Reset(); err != nil {
				log.Warningf("reset %s: %v", jar.Path, err)
			}
			pw.path.Invalidate()
			pw.emit(ctx, Event{Path: ev.Name, Op: ev.Op})
			return
		}
	}

	if ev.Op.Has(fsnotify.Create) && isDir(ev.Name) {
		if err := pw.addTree(ev.Name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warningf("watch %s: %v", ev.Name, err)
		}
		return
	}

	for _, d := range pw.dirs {
		if name, ok := d.ClassName(ev.Name); ok {
			pw.path.Invalidate(name)
			log.Debugf("invalidated %s (%s)", name, ev.Op)
			pw.emit(ctx, Event{Path: ev.Name, Class: name, Op: ev.Op})
			return
		}
	}
}

func (pw *Watcher) emit(ctx context.Context, ev Event) {
	select {
	case pw.events <- ev:
	case <-ctx.Done():
	}
}

func (pw *Watcher) Close() error {
	return pw.w.Close()
}
