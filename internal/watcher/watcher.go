// Package watcher reports changes to the open file so the reader can reload.
// It watches the file's directory (editors often replace files by rename)
// and debounces bursts of events into one notification.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/azario0/prototypes-txt-reader/internal/log"
	"github.com/azario0/prototypes-txt-reader/internal/pubsub"
)

// Event is the payload published for the watched file. The event type is
// pubsub.ChangedEvent, pubsub.RemovedEvent or pubsub.FailedEvent.
type Event struct {
	Path string
	Err  error // set for FailedEvent
}

// Watcher publishes Events for a single file.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	broker   *pubsub.Broker[Event]
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a watcher for path. Call Start to begin watching.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		path:     abs,
		debounce: debounce,
		broker:   pubsub.NewBroker[Event](),
		done:     make(chan struct{}),
	}, nil
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Subscribe implements pubsub.Subscriber.
func (w *Watcher) Subscribe(ctx context.Context) <-chan pubsub.Event[Event] {
	return w.broker.Subscribe(ctx)
}

// Start begins watching the file's directory.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "watching", "path", w.path)
	go w.loop()
	return nil
}

// Stop terminates the watcher and closes subscriber channels.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.broker.Close()
	})
	return err
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || event.Op == fsnotify.Chmod {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.notify()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "fsnotify error", err, "path", w.path)
			w.broker.Publish(pubsub.FailedEvent, Event{Path: w.path, Err: err})

		case <-w.done:
			return
		}
	}
}

// notify decides what the burst amounted to by looking at the file now.
func (w *Watcher) notify() {
	_, err := os.Stat(w.path)
	switch {
	case err == nil:
		log.Debug(log.CatWatcher, "file changed", "path", w.path)
		w.broker.Publish(pubsub.ChangedEvent, Event{Path: w.path})
	case errors.Is(err, os.ErrNotExist):
		log.Info(log.CatWatcher, "file removed", "path", w.path)
		w.broker.Publish(pubsub.RemovedEvent, Event{Path: w.path})
	default:
		w.broker.Publish(pubsub.FailedEvent, Event{Path: w.path, Err: err})
	}
}
