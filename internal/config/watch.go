package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const settleDelay = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk. Reloaded
// configs arrive on Updates; load and watch failures arrive on Errors.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	base    *Config
	Updates chan *Config
	Errors  chan error
	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// Watch starts watching path. Each reload reads the file over base, or
// over the defaults when base is nil. The parent directory is watched so
// that editors which replace the file on save are still picked up.
func Watch(path string, base *Config) (*Watcher, error) {
	if base == nil {
		base = DefaultConfig()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		base:    base.Clone(),
		Updates: make(chan *Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Path() string { return w.path }

// Poll returns the most recent reload without blocking.
func (w *Watcher) Poll() (*Config, error) {
	select {
	case cfg, ok := <-w.Updates:
		if ok {
			return cfg, nil
		}
	case err, ok := <-w.Errors:
		if ok {
			return nil, err
		}
	default:
	}
	return nil, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Updates)
		close(w.Errors)
		close(w.doneCh)
	}()

	// Reload once writes have settled, so a half-written file is not read.
	var settle <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			settle = time.After(settleDelay)
		case <-settle:
			settle = nil
			cfg, err := LoadInto(w.base, w.path)
			if err != nil {
				w.sendErr(err)
				continue
			}
			w.sendConfig(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			return
		}
	}
}

// sendConfig replaces any unread config so Poll always sees the newest one.
func (w *Watcher) sendConfig(cfg *Config) {
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- cfg:
	case <-w.closeCh:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
